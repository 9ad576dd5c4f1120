package validate

import "github.com/formlab/questionnaire/internal/domain/apperr"

// CreateAnswerInput структура для данных запроса создания ответа.
// Отсутствующие поля получают значения по умолчанию: active=true, order=0.
type CreateAnswerInput struct {
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	Order       *int   `json:"order"`
}

// Validate проверяет входные данные и возвращает все нарушения разом
func (in *CreateAnswerInput) Validate() error {
	ve := &apperr.ValidationError{}
	checkDescription(ve, in.Description)
	if in.Order != nil {
		checkOrder(ve, *in.Order)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ActiveOrDefault возвращает active с учетом значения по умолчанию
func (in *CreateAnswerInput) ActiveOrDefault() bool {
	if in.Active == nil {
		return true
	}
	return *in.Active
}

// OrderOrDefault возвращает order с учетом значения по умолчанию
func (in *CreateAnswerInput) OrderOrDefault() int {
	if in.Order == nil {
		return 0
	}
	return *in.Order
}

// UpdateAnswerInput структура для данных запроса частичного обновления ответа.
// nil означает "оставить без изменений".
type UpdateAnswerInput struct {
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	Order       *int    `json:"order"`
}

// Validate проверяет только переданные поля
func (in *UpdateAnswerInput) Validate() error {
	ve := &apperr.ValidationError{}
	if in.Description != nil {
		checkDescription(ve, *in.Description)
	}
	if in.Order != nil {
		checkOrder(ve, *in.Order)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Empty сообщает, что запрос не содержит ни одного поля
func (in *UpdateAnswerInput) Empty() bool {
	return in.Description == nil && in.Active == nil && in.Order == nil
}
