package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/formlab/questionnaire/database"
	answersService "github.com/formlab/questionnaire/internal/domain/answers/service"
	"github.com/formlab/questionnaire/internal/domain/integrity"
	questionsService "github.com/formlab/questionnaire/internal/domain/questions/service"
	"github.com/formlab/questionnaire/internal/infra/config"
	"github.com/formlab/questionnaire/internal/infra/logger"
)

// Services сервисы доменного слоя
type Services struct {
	answerService   *answersService.AnswerService
	questionService *questionsService.QuestionService
}

// App корневой объект приложения: владеет конфигурацией, хранилищем,
// сервисами и HTTP-сервером. Глобального состояния нет - жизненный цикл
// всех зависимостей управляется отсюда.
type App struct {
	config *config.Config
	logger zerolog.Logger
	pool   *pgxpool.Pool // nil для файлового бэкенда
	stores database.Stores
	server *http.Server

	Services
}

// NewApp собирает приложение из конфигурации
func NewApp(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	app := &App{
		config: cfg,
		logger: logger.New(cfg.App.Env, cfg.App.LogLevel),
	}

	if err := app.initStores(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initServices()

	return app, nil
}

// initServices инициализирует движок целостности и сервисы
func (app *App) initServices() {
	engine := integrity.NewEngine(app.stores.Answers, app.stores.Questions)
	app.answerService = answersService.NewAnswerService(app.stores.Answers, engine)
	app.questionService = questionsService.NewQuestionService(app.stores.Questions, engine)
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: NewRouter(app.answerService, app.questionService, app.logger),
	}

	app.logger.Info().
		Str("addr", app.server.Addr).
		Str("backend", app.config.Storage.Backend).
		Msg("server starting")

	return app.server.ListenAndServe()
}

// Shutdown останавливает сервер и закрывает подключение к хранилищу
func (app *App) Shutdown(ctx context.Context) error {
	var err error
	if app.server != nil {
		err = app.server.Shutdown(ctx)
	}
	if app.pool != nil {
		app.pool.Close()
	}
	return err
}

// Logger возвращает логгер приложения
func (app *App) Logger() zerolog.Logger {
	return app.logger
}
