// Package database определяет контракты хранилища сущностей.
// Реализации: database/jsonfile (один JSON-документ на диске) и
// database/postgres (две таблицы плюс таблица связей).
package database

import (
	"context"

	"github.com/formlab/questionnaire/internal/domain/model"
)

// AnswerStore определяет интерфейс для работы с ответами.
// GetByID возвращает (nil, nil), если ответ не найден; Update и Delete
// возвращают false, если записи с таким ID нет. Трансляцию отсутствия
// в доменную ошибку NotFound выполняет сервисный слой.
type AnswerStore interface {
	GetAll(ctx context.Context) ([]model.Answer, error)
	GetByID(ctx context.Context, id string) (*model.Answer, error)
	// GetByIDs возвращает найденные ответы; отсутствующие ID просто не
	// попадают в результат.
	GetByIDs(ctx context.Context, ids []string) ([]model.Answer, error)
	Create(ctx context.Context, answer model.Answer) error
	Update(ctx context.Context, answer model.Answer) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByOrder(ctx context.Context, order int) (bool, error)
}

// QuestionStore определяет интерфейс для работы с вопросами
type QuestionStore interface {
	GetAll(ctx context.Context) ([]model.Question, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	Create(ctx context.Context, question model.Question) error
	Update(ctx context.Context, question model.Question) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByOrder(ctx context.Context, order int) (bool, error)
	// FindByAnswerID возвращает все вопросы, в наборе которых есть данный ответ
	FindByAnswerID(ctx context.Context, answerID string) ([]model.Question, error)
	// SetAnswerIDs атомарно заменяет набор привязанных ответов одного вопроса
	SetAnswerIDs(ctx context.Context, questionID string, answerIDs []string) (bool, error)
}

// Stores объединяет хранилища обеих сущностей поверх одного бэкенда
type Stores struct {
	Answers   AnswerStore
	Questions QuestionStore
}
