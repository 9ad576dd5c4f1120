package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/formlab/questionnaire/internal/domain/model"
)

// QuestionStore реализация database.QuestionStore с использованием PostgreSQL.
// Набор привязанных ответов хранится в таблице связей question_answers;
// операции, затрагивающие вопрос вместе с его набором, выполняются в одной
// транзакции.
type QuestionStore struct {
	db *pgxpool.Pool
}

// NewQuestionStore создает новый экземпляр QuestionStore
func NewQuestionStore(db *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{db: db}
}

// GetAll возвращает все вопросы с наборами ответов, отсортированные по ord
func (s *QuestionStore) GetAll(ctx context.Context) ([]model.Question, error) {
	rows, err := s.db.Query(ctx, `
		SELECT q.id, q.description, q.active, q.ord,
		       COALESCE(array_agg(qa.answer_id::text) FILTER (WHERE qa.answer_id IS NOT NULL), '{}')
		FROM questions q
		LEFT JOIN question_answers qa ON qa.question_id = q.id
		GROUP BY q.id
		ORDER BY q.ord
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Description, &q.Active, &q.Order, &q.AnswerIDs); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return questions, nil
}

// GetByID возвращает вопрос по ID или (nil, nil), если его нет
func (s *QuestionStore) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	err := s.db.QueryRow(ctx, `
		SELECT q.id, q.description, q.active, q.ord,
		       COALESCE(array_agg(qa.answer_id::text) FILTER (WHERE qa.answer_id IS NOT NULL), '{}')
		FROM questions q
		LEFT JOIN question_answers qa ON qa.question_id = q.id
		WHERE q.id = $1
		GROUP BY q.id
	`, id).Scan(&q.ID, &q.Description, &q.Active, &q.Order, &q.AnswerIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return &q, nil
}

// Create добавляет новый вопрос вместе со связями в одной транзакции
func (s *QuestionStore) Create(ctx context.Context, question model.Question) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO questions (id, description, active, ord) VALUES ($1, $2, $3, $4)",
		question.ID, question.Description, question.Active, question.Order)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	if err := insertLinks(ctx, tx, question.ID, question.AnswerIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update заменяет поля вопроса и его набор ответов; false, если записи нет
func (s *QuestionStore) Update(ctx context.Context, question model.Question) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		"UPDATE questions SET description=$2, active=$3, ord=$4 WHERE id=$1",
		question.ID, question.Description, question.Active, question.Order)
	if err != nil {
		return false, fmt.Errorf("failed to update question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, "DELETE FROM question_answers WHERE question_id=$1", question.ID); err != nil {
		return false, fmt.Errorf("failed to clear question answers: %w", err)
	}
	if err := insertLinks(ctx, tx, question.ID, question.AnswerIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// Delete удаляет вопрос; связи снимает каскадный внешний ключ
func (s *QuestionStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.Exec(ctx, "DELETE FROM questions WHERE id=$1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ExistsByOrder проверяет, занято ли значение order другим вопросом
func (s *QuestionStore) ExistsByOrder(ctx context.Context, order int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM questions WHERE ord=$1)", order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check question order: %w", err)
	}
	return exists, nil
}

// FindByAnswerID возвращает все вопросы, содержащие данный ответ в своем наборе
func (s *QuestionStore) FindByAnswerID(ctx context.Context, answerID string) ([]model.Question, error) {
	rows, err := s.db.Query(ctx, `
		SELECT q.id, q.description, q.active, q.ord,
		       COALESCE(array_agg(qa2.answer_id::text) FILTER (WHERE qa2.answer_id IS NOT NULL), '{}')
		FROM questions q
		JOIN question_answers qa ON qa.question_id = q.id AND qa.answer_id = $1
		LEFT JOIN question_answers qa2 ON qa2.question_id = q.id
		GROUP BY q.id
	`, answerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions by answer id: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Description, &q.Active, &q.Order, &q.AnswerIDs); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return questions, nil
}

// SetAnswerIDs заменяет набор привязанных ответов вопроса в одной транзакции
func (s *QuestionStore) SetAnswerIDs(ctx context.Context, questionID string, answerIDs []string) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM questions WHERE id=$1)", questionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check question: %w", err)
	}
	if !exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, "DELETE FROM question_answers WHERE question_id=$1", questionID); err != nil {
		return false, fmt.Errorf("failed to clear question answers: %w", err)
	}
	if err := insertLinks(ctx, tx, questionID, answerIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// insertLinks вставляет связи вопрос-ответ в рамках открытой транзакции
func insertLinks(ctx context.Context, tx pgx.Tx, questionID string, answerIDs []string) error {
	for _, answerID := range answerIDs {
		_, err := tx.Exec(ctx,
			"INSERT INTO question_answers (question_id, answer_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			questionID, answerID)
		if err != nil {
			return fmt.Errorf("failed to link answer %s: %w", answerID, err)
		}
	}
	return nil
}
