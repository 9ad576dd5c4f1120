// Package postgres реализует реляционный бэкенд хранилища: таблицы answers
// и questions плюс таблица связей question_answers с каскадными внешними
// ключами, закрывающими окно между чисткой связей и удалением ответа.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/formlab/questionnaire/database"
)

// schema создается при старте приложения; миграции вне рамок проекта
const schema = `
CREATE TABLE IF NOT EXISTS answers (
	id          UUID PRIMARY KEY,
	description TEXT NOT NULL,
	active      BOOLEAN NOT NULL DEFAULT TRUE,
	ord         INTEGER NOT NULL DEFAULT 0 CHECK (ord >= 0)
);

CREATE TABLE IF NOT EXISTS questions (
	id          UUID PRIMARY KEY,
	description TEXT NOT NULL,
	active      BOOLEAN NOT NULL DEFAULT TRUE,
	ord         INTEGER NOT NULL DEFAULT 0 CHECK (ord >= 0)
);

CREATE TABLE IF NOT EXISTS question_answers (
	question_id UUID NOT NULL REFERENCES questions (id) ON DELETE CASCADE,
	answer_id   UUID NOT NULL REFERENCES answers (id) ON DELETE CASCADE,
	PRIMARY KEY (question_id, answer_id)
);
`

// Connect устанавливает подключение к базе данных и создает схему
func Connect(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	const op = "postgres.Connect"

	connConfig, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		user, password, host, port, name))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to create schema: %w", op, err)
	}

	return pool, nil
}

// Stores возвращает хранилища сущностей поверх пула подключений
func Stores(pool *pgxpool.Pool) database.Stores {
	return database.Stores{
		Answers:   NewAnswerStore(pool),
		Questions: NewQuestionStore(pool),
	}
}
