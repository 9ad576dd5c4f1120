package model

// Question представляет вопрос с набором привязанных вариантов ответа
type Question struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Active      bool     `json:"active"`
	Order       int      `json:"order"`
	AnswerIDs   []string `json:"answerIds"`
}

// HasAnswer проверяет, привязан ли ответ с данным ID к вопросу
func (q *Question) HasAnswer(answerID string) bool {
	for _, id := range q.AnswerIDs {
		if id == answerID {
			return true
		}
	}
	return false
}
