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

// AnswerService для работы с ответами
type AnswerService struct {
	store     database.AnswerStore
	integrity *integrity.Engine
}

// NewAnswerService создает новый экземпляр AnswerService
func NewAnswerService(store database.AnswerStore, engine *integrity.Engine) *AnswerService {
	return &AnswerService{store: store, integrity: engine}
}

// GetAll возвращает все ответы
func (s *AnswerService) GetAll(ctx context.Context) ([]model.Answer, error) {
	answers, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}
	if answers == nil {
		answers = []model.Answer{}
	}
	return answers, nil
}

// GetByID возвращает ответ по ID
func (s *AnswerService) GetByID(ctx context.Context, id string) (*model.Answer, error) {
	answer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	if answer == nil {
		return nil, apperr.ErrNotFound
	}
	return answer, nil
}

// Create создает новый ответ. Значение order должно быть свободно.
func (s *AnswerService) Create(ctx context.Context, in *validate.CreateAnswerInput) (*model.Answer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.store.ExistsByOrder(ctx, in.OrderOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to check answer order: %w", err)
	}
	if taken {
		return nil, apperr.ErrDuplicateOrder
	}

	answer := model.Answer{
		ID:          uuid.NewString(),
		Description: in.Description,
		Active:      in.ActiveOrDefault(),
		Order:       in.OrderOrDefault(),
	}
	if err := s.store.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return &answer, nil
}

// Update частично обновляет ответ: меняются только переданные поля.
// Запрос без полей - no-op, возвращается текущее состояние.
// Деактивация ответа снимает его со всех вопросов.
func (s *AnswerService) Update(ctx context.Context, id string, in *validate.UpdateAnswerInput) (*model.Answer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	if current == nil {
		return nil, apperr.ErrNotFound
	}

	if in.Empty() {
		return current, nil
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

	found, err := s.store.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update answer: %w", err)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}

	if current.Active && !updated.Active {
		if err := s.integrity.CascadeRemoveAnswer(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to detach deactivated answer: %w", err)
		}
	}
	return &updated, nil
}

// Delete удаляет ответ, предварительно убрав его из наборов всех вопросов
func (s *AnswerService) Delete(ctx context.Context, id string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get answer: %w", err)
	}
	if current == nil {
		return apperr.ErrNotFound
	}

	if err := s.integrity.CascadeRemoveAnswer(ctx, id); err != nil {
		return fmt.Errorf("failed to detach answer before delete: %w", err)
	}

	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	if !found {
		return apperr.ErrNotFound
	}
	return nil
}
