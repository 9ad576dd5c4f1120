// Package validate содержит схемы входных данных API и правила их проверки.
// Каждая схема возвращает *apperr.ValidationError со списком всех нарушений,
// а не только первого найденного.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/formlab/questionnaire/internal/domain/apperr"
)

// MaxDescriptionLen ограничивает длину описания вопроса и ответа
const MaxDescriptionLen = 500

// checkDescription проверяет обязательное описание (для create-схем)
func checkDescription(ve *apperr.ValidationError, description string) {
	if strings.TrimSpace(description) == "" {
		ve.Add("description", "description is required")
		return
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		ve.Add("description", "description must be at most 500 characters")
	}
}

// checkOrder проверяет неотрицательность order
func checkOrder(ve *apperr.ValidationError, order int) {
	if order < 0 {
		ve.Add("order", "order must be a non-negative integer")
	}
}

// checkAnswerIDs проверяет синтаксис каждого ID в списке
func checkAnswerIDs(ve *apperr.ValidationError, answerIDs []string) {
	for _, id := range answerIDs {
		if _, err := uuid.Parse(id); err != nil {
			ve.Add("answerIds", "invalid answer ID format: "+id)
		}
	}
}

// CheckID проверяет синтаксис идентификатора из пути запроса
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		ve := &apperr.ValidationError{}
		ve.Add("id", "invalid ID format: "+id)
		return ve
	}
	return nil
}
