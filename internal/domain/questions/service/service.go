package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/formlab/questionnaire/database"
	"github.com/formlab/questionnaire/internal/domain/apperr"
	"github.com/formlab/questionnaire/internal/domain/integrity"
	"github.com/formlab/questionnaire/internal/domain/model"
	"github.com/formlab/questionnaire/internal/domain/validate"
)

// QuestionService для работы с вопросами
type QuestionService struct {
	store     database.QuestionStore
	integrity *integrity.Engine
}

// NewQuestionService создает новый экземпляр QuestionService
func NewQuestionService(store database.QuestionStore, engine *integrity.Engine) *QuestionService {
	return &QuestionService{store: store, integrity: engine}
}

// GetAll возвращает все вопросы; activeFilter сужает выборку по флагу active
func (s *QuestionService) GetAll(ctx context.Context, activeFilter *bool) ([]model.Question, error) {
	questions, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	if activeFilter == nil {
		if questions == nil {
			questions = []model.Question{}
		}
		return questions, nil
	}
	filtered := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Active == *activeFilter {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

// GetByID возвращает вопрос по ID
func (s *QuestionService) GetByID(ctx context.Context, id string) (*model.Question, error) {
	question, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question == nil {
		return nil, apperr.ErrNotFound
	}
	return question, nil
}

// Create создает новый вопрос. Значение order должно быть свободно,
// каждый привязываемый ответ - существовать и быть активным; дубликаты
// в answerIds схлопываются. При любой неудачной проверке в хранилище
// ничего не пишется.
func (s *QuestionService) Create(ctx context.Context, in *validate.CreateQuestionInput) (*model.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.store.ExistsByOrder(ctx, in.OrderOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to check question order: %w", err)
	}
	if taken {
		return nil, apperr.ErrDuplicateOrder
	}

	answerIDs := dedupeIDs(in.AnswerIDs)
	if answerIDs == nil {
		answerIDs = []string{}
	}
	if err := s.integrity.CheckAnswerRefs(ctx, answerIDs, true); err != nil {
		return nil, err
	}

	question := model.Question{
		ID:          uuid.NewString(),
		Description: in.Description,
		Active:      in.ActiveOrDefault(),
		Order:       in.OrderOrDefault(),
		AnswerIDs:   answerIDs,
	}
	if err := s.store.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return &question, nil
}

// Update частично обновляет вопрос: меняются только переданные поля,
// непустой answerIds заменяет набор целиком (без дубликатов). Неактивный
// вопрос можно только активировать.
func (s *QuestionService) Update(ctx context.Context, id string, in *validate.UpdateQuestionInput) (*model.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if current == nil {
		return nil, apperr.ErrNotFound
	}

	if err := s.integrity.GuardInactiveQuestion(current, in); err != nil {
		return nil, err
	}

	var newAnswerIDs []string
	if in.AnswerIDs != nil {
		newAnswerIDs = dedupeIDs(in.AnswerIDs)
		if err := s.integrity.CheckAnswerRefs(ctx, newAnswerIDs, true); err != nil {
			return nil, err
		}
	}

	updated := *current
	if in.Description != nil {
		updated.Description = *in.Description
	}
	if in.Active != nil {
		updated.Active = *in.Active
	}
	if in.Order != nil {
		updated.Order = *in.Order
	}
	if in.AnswerIDs != nil {
		updated.AnswerIDs = newAnswerIDs
	}

	found, err := s.store.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	return &updated, nil
}

// AssociateAnswers добавляет ответы к набору вопроса: новые ID объединяются
// с существующими без дубликатов, набор никогда не заменяется целиком
func (s *QuestionService) AssociateAnswers(ctx context.Context, id string, in *validate.AssociateAnswersInput) (*model.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if current == nil {
		return nil, apperr.ErrNotFound
	}
	if !current.Active {
		return nil, apperr.ErrQuestionLocked
	}

	if err := s.integrity.CheckAnswerRefs(ctx, in.AnswerIDs, true); err != nil {
		return nil, err
	}

	merged := append([]string{}, current.AnswerIDs...)
	seen := make(map[string]bool, len(merged))
	for _, existing := range merged {
		seen[existing] = true
	}
	for _, candidate := range in.AnswerIDs {
		if !seen[candidate] {
			seen[candidate] = true
			merged = append(merged, candidate)
		}
	}

	found, err := s.store.SetAnswerIDs(ctx, id, merged)
	if err != nil {
		return nil, fmt.Errorf("failed to set question answers: %w", err)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}

	updated := *current
	updated.AnswerIDs = merged
	return &updated, nil
}

// dedupeIDs убирает дубликаты, сохраняя порядок первых вхождений.
// Набор ответов вопроса - множество: оба бэкенда должны хранить один
// экземпляр каждого ID независимо от формы входного списка.
func dedupeIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
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

// Delete удаляет вопрос вместе с его связями
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if !found {
		return apperr.ErrNotFound
	}
	return nil
}
