package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Сигнальные ошибки доменного слоя. HTTP-слой сопоставляет их со статус-кодами,
// остальные слои только пробрасывают.
var (
	// ErrNotFound возвращается, когда сущность с указанным ID отсутствует в хранилище.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateOrder возвращается при попытке создать сущность с уже занятым order.
	ErrDuplicateOrder = errors.New("duplicate order value")

	// ErrQuestionLocked возвращается при попытке изменить неактивный вопрос.
	// Единственное допустимое изменение неактивного вопроса - его активация.
	ErrQuestionLocked = errors.New("inactive question can only be activated")
)

// FieldError описывает нарушение одного правила валидации для одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError агрегирует все нарушения валидации входных данных.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add добавляет нарушение в список
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors сообщает, было ли зафиксировано хотя бы одно нарушение
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ReferenceError описывает ссылки на несуществующие или неактивные ответы.
// Перечисляет каждый проблемный ID.
type ReferenceError struct {
	MissingIDs  []string
	InactiveIDs []string
}

func (e *ReferenceError) Error() string {
	var parts []string
	if len(e.MissingIDs) > 0 {
		parts = append(parts, "unknown answer ids: "+strings.Join(e.MissingIDs, ", "))
	}
	if len(e.InactiveIDs) > 0 {
		parts = append(parts, "inactive answer ids: "+strings.Join(e.InactiveIDs, ", "))
	}
	return strings.Join(parts, "; ")
}

// AsValidation извлекает *ValidationError из цепочки ошибок
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsReference извлекает *ReferenceError из цепочки ошибок
func AsReference(err error) (*ReferenceError, bool) {
	var re *ReferenceError
	ok := errors.As(err, &re)
	return re, ok
}
