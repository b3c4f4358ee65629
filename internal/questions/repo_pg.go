package questions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const setColumns = `id, user_id, resume_id, job_spec_id, questions, provider, model, created_at`

func (r *PGRepo) Create(ctx context.Context, set QuestionSet) error {
	const query = `
INSERT INTO question_sets (id, user_id, resume_id, job_spec_id, questions, provider, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	payload, err := json.Marshal(set.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		set.ID,
		set.UserID,
		set.ResumeID,
		set.JobSpecID,
		payload,
		nullableString(set.Provider),
		nullableString(set.Model),
		set.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (QuestionSet, error) {
	query := `SELECT ` + setColumns + `
FROM question_sets
WHERE user_id = $1 AND id = $2
LIMIT 1`
	set, err := scanSet(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionSet{}, ErrNotFound
		}
		return QuestionSet{}, err
	}
	return set, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]QuestionSet, error) {
	query := `SELECT ` + setColumns + `
FROM question_sets
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]QuestionSet, 0)
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSet(row scanner) (QuestionSet, error) {
	var set QuestionSet
	var payload []byte
	var provider, model sql.NullString
	if err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.ResumeID,
		&set.JobSpecID,
		&payload,
		&provider,
		&model,
		&set.CreatedAt,
	); err != nil {
		return QuestionSet{}, err
	}
	if err := json.Unmarshal(payload, &set.Questions); err != nil {
		return QuestionSet{}, fmt.Errorf("decode questions: %w", err)
	}
	set.Provider = provider.String
	set.Model = model.String
	return set, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
