package jsonfile

import (
	"context"

	"github.com/formlab/questionnaire/internal/domain/model"
)

// QuestionStore реализация database.QuestionStore поверх JSON-файла
type QuestionStore struct {
	db *DB
}

// GetAll возвращает все вопросы
func (s *QuestionStore) GetAll(_ context.Context) ([]model.Question, error) {
	var questions []model.Question
	err := s.db.view(func(doc *document) error {
		questions = append([]model.Question{}, doc.Questions...)
		return nil
	})
	return questions, err
}

// GetByID возвращает вопрос по ID или (nil, nil), если его нет
func (s *QuestionStore) GetByID(_ context.Context, id string) (*model.Question, error) {
	var found *model.Question
	err := s.db.view(func(doc *document) error {
		for i := range doc.Questions {
			if doc.Questions[i].ID == id {
				q := doc.Questions[i]
				found = &q
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Create добавляет новый вопрос
func (s *QuestionStore) Create(_ context.Context, question model.Question) error {
	return s.db.update(func(doc *document) (bool, error) {
		if question.AnswerIDs == nil {
			question.AnswerIDs = []string{}
		}
		doc.Questions = append(doc.Questions, question)
		return true, nil
	})
}

// Update заменяет вопрос с тем же ID; false, если записи нет
func (s *QuestionStore) Update(_ context.Context, question model.Question) (bool, error) {
	found := false
	err := s.db.update(func(doc *document) (bool, error) {
		for i := range doc.Questions {
			if doc.Questions[i].ID == question.ID {
				if question.AnswerIDs == nil {
					question.AnswerIDs = []string{}
				}
				doc.Questions[i] = question
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// Delete удаляет вопрос по ID; false, если записи нет
func (s *QuestionStore) Delete(_ context.Context, id string) (bool, error) {
	found := false
	err := s.db.update(func(doc *document) (bool, error) {
		for i := range doc.Questions {
			if doc.Questions[i].ID == id {
				doc.Questions = append(doc.Questions[:i], doc.Questions[i+1:]...)
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// ExistsByOrder проверяет, занято ли значение order другим вопросом
func (s *QuestionStore) ExistsByOrder(_ context.Context, order int) (bool, error) {
	exists := false
	err := s.db.view(func(doc *document) error {
		for _, q := range doc.Questions {
			if q.Order == order {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

// FindByAnswerID возвращает все вопросы, содержащие данный ответ в своем наборе
func (s *QuestionStore) FindByAnswerID(_ context.Context, answerID string) ([]model.Question, error) {
	var questions []model.Question
	err := s.db.view(func(doc *document) error {
		for _, q := range doc.Questions {
			if q.HasAnswer(answerID) {
				questions = append(questions, q)
			}
		}
		return nil
	})
	return questions, err
}

// SetAnswerIDs заменяет набор привязанных ответов одного вопроса.
// Замена видна целиком или не видна вовсе: документ перезаписывается одним save.
func (s *QuestionStore) SetAnswerIDs(_ context.Context, questionID string, answerIDs []string) (bool, error) {
	found := false
	err := s.db.update(func(doc *document) (bool, error) {
		for i := range doc.Questions {
			if doc.Questions[i].ID == questionID {
				if answerIDs == nil {
					answerIDs = []string{}
				}
				doc.Questions[i].AnswerIDs = answerIDs
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}
