package jobspecs

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

func (r *PGRepo) Create(ctx context.Context, spec JobSpec) error {
	const query = `
INSERT INTO job_specs (id, user_id, title, description, required_skills, responsibilities, additional_notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	skills, err := encodeList(spec.RequiredSkills)
	if err != nil {
		return err
	}
	responsibilities, err := encodeList(spec.Responsibilities)
	if err != nil {
		return err
	}
	var notes sql.NullString
	if spec.AdditionalNotes != "" {
		notes = sql.NullString{String: spec.AdditionalNotes, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		spec.ID,
		spec.UserID,
		spec.Title,
		spec.Description,
		skills,
		responsibilities,
		notes,
		spec.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (JobSpec, error) {
	const query = `
SELECT id, user_id, title, description, required_skills, responsibilities, additional_notes, created_at
FROM job_specs
WHERE user_id = $1 AND id = $2
LIMIT 1`
	spec, err := scanSpec(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobSpec{}, ErrNotFound
		}
		return JobSpec{}, err
	}
	return spec, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]JobSpec, error) {
	const query = `
SELECT id, user_id, title, description, required_skills, responsibilities, additional_notes, created_at
FROM job_specs
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSpec, 0)
	for rows.Next() {
		spec, err := scanSpec(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSpec(row scanner) (JobSpec, error) {
	var spec JobSpec
	var skills, responsibilities []byte
	var notes sql.NullString
	if err := row.Scan(
		&spec.ID,
		&spec.UserID,
		&spec.Title,
		&spec.Description,
		&skills,
		&responsibilities,
		&notes,
		&spec.CreatedAt,
	); err != nil {
		return JobSpec{}, err
	}
	if err := decodeList(skills, &spec.RequiredSkills); err != nil {
		return JobSpec{}, fmt.Errorf("decode required_skills: %w", err)
	}
	if err := decodeList(responsibilities, &spec.Responsibilities); err != nil {
		return JobSpec{}, fmt.Errorf("decode responsibilities: %w", err)
	}
	spec.AdditionalNotes = notes.String
	return spec, nil
}

func encodeList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

func decodeList(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
