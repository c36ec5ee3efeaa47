package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizset/internal/domain"
	"quizset/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const (
	updateQuestionSetQuery = `UPDATE question_sets SET instruction = :1, payload = :2, updated_at = :3 WHERE id = :4`
	insertQuestionSetQuery = `INSERT INTO question_sets (id, instruction, payload, created_at, updated_at) VALUES (:1, :2, :3, :4, :5)`
	selectQuestionSetQuery = `SELECT id "id", instruction "instruction", payload "payload", created_at "created_at", updated_at "updated_at" FROM question_sets WHERE id = :1`
	listQuestionSetIDs     = `SELECT id FROM question_sets ORDER BY id`
	deleteQuestionSetQuery = `DELETE FROM question_sets WHERE id = :1`
)

// payload is the stored JSON body of a set; id and instruction live in their own columns.
type payload struct {
	Example   domain.Question   `json:"example"`
	Questions []domain.Question `json:"questions"`
}

// QuestionSetDatabaseAdapter implements domain.QuestionSetRepository using sqlx.
type QuestionSetDatabaseAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewQuestionSetDatabaseAdapter(db *sqlx.DB) domain.QuestionSetRepository {
	return &QuestionSetDatabaseAdapter{db: db, now: time.Now}
}

// Save updates the row for set.ID and inserts it when no row was touched.
func (a *QuestionSetDatabaseAdapter) Save(ctx context.Context, set domain.QuestionSet) error {
	row, err := toModelQuestionSet(set)
	if err != nil {
		return err
	}
	now := a.now()
	exec := GetExecutor(ctx, a.db)

	res, err := exec.ExecContext(ctx, updateQuestionSetQuery, row.Instruction, row.Payload, now, row.ID)
	if err != nil {
		return fmt.Errorf("failed to update question set %s: %w", set.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	if _, err := exec.ExecContext(ctx, insertQuestionSetQuery, row.ID, row.Instruction, row.Payload, now, now); err != nil {
		return fmt.Errorf("failed to insert question set %s: %w", set.ID, err)
	}
	return nil
}

func (a *QuestionSetDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.QuestionSet, error) {
	var row models.QuestionSet
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &row, selectQuestionSetQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question set %s: %w", id, err)
	}
	return toDomainQuestionSet(&row)
}

func (a *QuestionSetDatabaseAdapter) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &ids, listQuestionSetIDs); err != nil {
		return nil, fmt.Errorf("failed to list question sets: %w", err)
	}
	return ids, nil
}

func (a *QuestionSetDatabaseAdapter) Delete(ctx context.Context, id string) (bool, error) {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, deleteQuestionSetQuery, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question set %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read deleted rows for question set %s: %w", id, err)
	}
	return affected > 0, nil
}

func toModelQuestionSet(set domain.QuestionSet) (*models.QuestionSet, error) {
	questions := set.Questions
	if questions == nil {
		questions = []domain.Question{}
	}
	body, err := json.Marshal(payload{Example: set.Example, Questions: questions})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question set %s: %w", set.ID, err)
	}
	return &models.QuestionSet{
		ID:          set.ID,
		Instruction: set.Instruction,
		Payload:     string(body),
	}, nil
}

func toDomainQuestionSet(row *models.QuestionSet) (*domain.QuestionSet, error) {
	var p payload
	if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload of question set %s: %w", row.ID, err)
	}
	if p.Questions == nil {
		p.Questions = []domain.Question{}
	}
	return &domain.QuestionSet{
		ID:          row.ID,
		Instruction: row.Instruction,
		Example:     p.Example,
		Questions:   p.Questions,
	}, nil
}
