package jsonfile

import (
	"context"

	"github.com/formlab/questionnaire/internal/domain/model"
)

// AnswerStore реализация database.AnswerStore поверх JSON-файла
type AnswerStore struct {
	db *DB
}

// GetAll возвращает все ответы
func (s *AnswerStore) GetAll(_ context.Context) ([]model.Answer, error) {
	var answers []model.Answer
	err := s.db.view(func(doc *document) error {
		answers = append([]model.Answer{}, doc.Answers...)
		return nil
	})
	return answers, err
}

// GetByID возвращает ответ по ID или (nil, nil), если его нет
func (s *AnswerStore) GetByID(_ context.Context, id string) (*model.Answer, error) {
	var found *model.Answer
	err := s.db.view(func(doc *document) error {
		for i := range doc.Answers {
			if doc.Answers[i].ID == id {
				a := doc.Answers[i]
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

// GetByIDs возвращает найденные ответы; отсутствующие ID пропускаются
func (s *AnswerStore) GetByIDs(_ context.Context, ids []string) ([]model.Answer, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var answers []model.Answer
	err := s.db.view(func(doc *document) error {
		for _, a := range doc.Answers {
			if want[a.ID] {
				answers = append(answers, a)
			}
		}
		return nil
	})
	return answers, err
}

// Create добавляет новый ответ
func (s *AnswerStore) Create(_ context.Context, answer model.Answer) error {
	return s.db.update(func(doc *document) (bool, error) {
		doc.Answers = append(doc.Answers, answer)
		return true, nil
	})
}

// Update заменяет ответ с тем же ID; false, если записи нет
func (s *AnswerStore) Update(_ context.Context, answer model.Answer) (bool, error) {
	found := false
	err := s.db.update(func(doc *document) (bool, error) {
		for i := range doc.Answers {
			if doc.Answers[i].ID == answer.ID {
				doc.Answers[i] = answer
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// Delete удаляет ответ по ID; false, если записи нет
func (s *AnswerStore) Delete(_ context.Context, id string) (bool, error) {
	found := false
	err := s.db.update(func(doc *document) (bool, error) {
		for i := range doc.Answers {
			if doc.Answers[i].ID == id {
				doc.Answers = append(doc.Answers[:i], doc.Answers[i+1:]...)
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}

// ExistsByOrder проверяет, занято ли значение order другим ответом
func (s *AnswerStore) ExistsByOrder(_ context.Context, order int) (bool, error) {
	exists := false
	err := s.db.view(func(doc *document) error {
		for _, a := range doc.Answers {
			if a.Order == order {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}
