package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/formlab/questionnaire/internal/domain/model"
)

// AnswerStore реализация database.AnswerStore с использованием PostgreSQL
type AnswerStore struct {
	db *pgxpool.Pool
}

// NewAnswerStore создает новый экземпляр AnswerStore
func NewAnswerStore(db *pgxpool.Pool) *AnswerStore {
	return &AnswerStore{db: db}
}

// GetAll возвращает все ответы, отсортированные по ord
func (s *AnswerStore) GetAll(ctx context.Context) ([]model.Answer, error) {
	rows, err := s.db.Query(ctx, "SELECT id, description, active, ord FROM answers ORDER BY ord")
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.Description, &a.Active, &a.Order); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return answers, nil
}

// GetByID возвращает ответ по ID или (nil, nil), если его нет
func (s *AnswerStore) GetByID(ctx context.Context, id string) (*model.Answer, error) {
	var a model.Answer
	err := s.db.QueryRow(ctx, "SELECT id, description, active, ord FROM answers WHERE id=$1", id).
		Scan(&a.ID, &a.Description, &a.Active, &a.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer by id: %w", err)
	}
	return &a, nil
}

// GetByIDs возвращает найденные ответы; отсутствующие ID пропускаются
func (s *AnswerStore) GetByIDs(ctx context.Context, ids []string) ([]model.Answer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, "SELECT id, description, active, ord FROM answers WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers by ids: %w", err)
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.Description, &a.Active, &a.Order); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return answers, nil
}

// Create добавляет новый ответ
func (s *AnswerStore) Create(ctx context.Context, answer model.Answer) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO answers (id, description, active, ord) VALUES ($1, $2, $3, $4)",
		answer.ID, answer.Description, answer.Active, answer.Order)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

// Update заменяет поля ответа; false, если записи нет
func (s *AnswerStore) Update(ctx context.Context, answer model.Answer) (bool, error) {
	result, err := s.db.Exec(ctx,
		"UPDATE answers SET description=$2, active=$3, ord=$4 WHERE id=$1",
		answer.ID, answer.Description, answer.Active, answer.Order)
	if err != nil {
		return false, fmt.Errorf("failed to update answer: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Delete удаляет ответ; связи в question_answers снимает каскадный внешний ключ
func (s *AnswerStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.Exec(ctx, "DELETE FROM answers WHERE id=$1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete answer: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ExistsByOrder проверяет, занято ли значение order другим ответом
func (s *AnswerStore) ExistsByOrder(ctx context.Context, order int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM answers WHERE ord=$1)", order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check answer order: %w", err)
	}
	return exists, nil
}
