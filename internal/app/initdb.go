package app

import (
	"context"
	"fmt"

	"github.com/formlab/questionnaire/database/jsonfile"
	"github.com/formlab/questionnaire/database/postgres"
	"github.com/formlab/questionnaire/internal/infra/config"
)

// initStores открывает выбранный конфигурацией бэкенд хранилища
func (app *App) initStores() error {
	const op = "app.initStores"

	switch app.config.Storage.Backend {
	case config.BackendPostgres:
		pool, err := postgres.Connect(context.Background(),
			app.config.Database.Host, app.config.Database.Port,
			app.config.Database.User, app.config.Database.Password,
			app.config.Database.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		app.pool = pool
		app.stores = postgres.Stores(pool)
		app.logger.Info().Msg("database connected successfully")

	case config.BackendFile:
		db, err := jsonfile.Open(app.config.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("%s: failed to open file storage: %w", op, err)
		}
		app.stores = db.Stores()
		app.logger.Info().Str("path", app.config.Storage.FilePath).Msg("file storage opened")

	default:
		return fmt.Errorf("%s: unknown storage backend %q", op, app.config.Storage.Backend)
	}

	return nil
}
