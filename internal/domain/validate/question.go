package validate

import "github.com/formlab/questionnaire/internal/domain/apperr"

// CreateQuestionInput структура для данных запроса создания вопроса.
// Отсутствующие поля получают значения по умолчанию: active=true, order=0,
// answerIds=[].
type CreateQuestionInput struct {
	Description string   `json:"description"`
	Active      *bool    `json:"active"`
	Order       *int     `json:"order"`
	AnswerIDs   []string `json:"answerIds"`
}

// Validate проверяет входные данные и возвращает все нарушения разом
func (in *CreateQuestionInput) Validate() error {
	ve := &apperr.ValidationError{}
	checkDescription(ve, in.Description)
	if in.Order != nil {
		checkOrder(ve, *in.Order)
	}
	checkAnswerIDs(ve, in.AnswerIDs)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ActiveOrDefault возвращает active с учетом значения по умолчанию
func (in *CreateQuestionInput) ActiveOrDefault() bool {
	if in.Active == nil {
		return true
	}
	return *in.Active
}

// OrderOrDefault возвращает order с учетом значения по умолчанию
func (in *CreateQuestionInput) OrderOrDefault() int {
	if in.Order == nil {
		return 0
	}
	return *in.Order
}

// UpdateQuestionInput структура для данных запроса частичного обновления вопроса.
// nil означает "оставить без изменений"; непустой AnswerIDs полностью заменяет
// набор привязанных ответов.
type UpdateQuestionInput struct {
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
	Order       *int     `json:"order"`
	AnswerIDs   []string `json:"answerIds"`
}

// Validate проверяет только переданные поля
func (in *UpdateQuestionInput) Validate() error {
	ve := &apperr.ValidationError{}
	if in.Description != nil {
		checkDescription(ve, *in.Description)
	}
	if in.Order != nil {
		checkOrder(ve, *in.Order)
	}
	checkAnswerIDs(ve, in.AnswerIDs)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// OnlyActivates сообщает, что запрос меняет ровно одно поле - active=true.
// Такое обновление разрешено и для неактивного вопроса.
func (in *UpdateQuestionInput) OnlyActivates() bool {
	return in.Description == nil && in.Order == nil && in.AnswerIDs == nil &&
		in.Active != nil && *in.Active
}

// AssociateAnswersInput структура для данных запроса привязки ответов к вопросу
type AssociateAnswersInput struct {
	AnswerIDs []string `json:"answerIds"`
}

// Validate требует непустой список синтаксически корректных ID
func (in *AssociateAnswersInput) Validate() error {
	ve := &apperr.ValidationError{}
	if len(in.AnswerIDs) == 0 {
		ve.Add("answerIds", "at least one answer ID is required")
	}
	checkAnswerIDs(ve, in.AnswerIDs)
	if ve.HasErrors() {
		return ve
	}
	return nil
}
