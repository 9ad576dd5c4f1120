// Package integrity реализует межсущностные правила согласованности:
// проверку ссылок вопрос→ответ и каскадную чистку связей при удалении
// или деактивации ответа. Это единственное место в домене, где правила
// затрагивают обе сущности сразу.
package integrity

import (
	"context"
	"fmt"

	"github.com/formlab/questionnaire/database"
	"github.com/formlab/questionnaire/internal/domain/apperr"
	"github.com/formlab/questionnaire/internal/domain/model"
	"github.com/formlab/questionnaire/internal/domain/validate"
)

// Engine проверяет и поддерживает ссылочную целостность между вопросами и ответами
type Engine struct {
	answers   database.AnswerStore
	questions database.QuestionStore
}

// NewEngine создает новый экземпляр Engine
func NewEngine(answers database.AnswerStore, questions database.QuestionStore) *Engine {
	return &Engine{answers: answers, questions: questions}
}

// CheckAnswerRefs проверяет список кандидатов на привязку по текущему
// состоянию хранилища. Ошибка перечисляет каждый ненайденный ID и, при
// requireActive, каждый найденный, но неактивный. Отсутствие ошибки -
// признак успеха. Гонка между проверкой и последующей записью принята:
// снимок состояния нигде не кэшируется.
func (e *Engine) CheckAnswerRefs(ctx context.Context, answerIDs []string, requireActive bool) error {
	if len(answerIDs) == 0 {
		return nil
	}

	unique := dedupe(answerIDs)
	found, err := e.answers.GetByIDs(ctx, unique)
	if err != nil {
		return fmt.Errorf("failed to load candidate answers: %w", err)
	}

	byID := make(map[string]model.Answer, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	refErr := &apperr.ReferenceError{}
	for _, id := range unique {
		a, ok := byID[id]
		if !ok {
			refErr.MissingIDs = append(refErr.MissingIDs, id)
			continue
		}
		if requireActive && !a.Active {
			refErr.InactiveIDs = append(refErr.InactiveIDs, id)
		}
	}
	if len(refErr.MissingIDs) > 0 || len(refErr.InactiveIDs) > 0 {
		return refErr
	}
	return nil
}

// CascadeRemoveAnswer убирает ответ из набора каждого вопроса, где он
// встречается. Каждый вопрос переписывается атомарно; атомарность по всей
// коллекции относительно последующего удаления ответа не гарантируется.
func (e *Engine) CascadeRemoveAnswer(ctx context.Context, answerID string) error {
	affected, err := e.questions.FindByAnswerID(ctx, answerID)
	if err != nil {
		return fmt.Errorf("failed to find questions referencing answer %s: %w", answerID, err)
	}

	for _, q := range affected {
		remaining := make([]string, 0, len(q.AnswerIDs))
		for _, id := range q.AnswerIDs {
			if id != answerID {
				remaining = append(remaining, id)
			}
		}
		if _, err := e.questions.SetAnswerIDs(ctx, q.ID, remaining); err != nil {
			return fmt.Errorf("failed to detach answer %s from question %s: %w", answerID, q.ID, err)
		}
	}
	return nil
}

// GuardInactiveQuestion запрещает любые изменения неактивного вопроса,
// кроме его активации без сопутствующих полей и без замены набора ответов
func (e *Engine) GuardInactiveQuestion(current *model.Question, in *validate.UpdateQuestionInput) error {
	if current.Active {
		return nil
	}
	if !in.OnlyActivates() {
		return apperr.ErrQuestionLocked
	}
	return nil
}

// dedupe убирает дубликаты, сохраняя порядок первых вхождений
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
