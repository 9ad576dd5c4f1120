package model

// Answer представляет вариант ответа, доступный для привязки к вопросам
type Answer struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Order       int    `json:"order"`
}
