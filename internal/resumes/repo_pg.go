package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, file_name, file_url, storage_key, mime_type, size_bytes, parsed, parsed_content, created_at, updated_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    file_url,
    storage_key,
    mime_type,
    size_bytes,
    parsed,
    parsed_content,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	parsed, content := profileColumns(doc.Profile)
	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.FileURL,
		doc.StorageKey,
		doc.MimeType,
		doc.SizeBytes,
		parsed,
		content,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Document, error) {
	query := `SELECT ` + documentColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	query := `SELECT ` + documentColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateProfile replaces the profile state of an owned document.
func (r *PGRepo) UpdateProfile(ctx context.Context, userID, id string, profile Profile, at time.Time) error {
	const query = `
UPDATE resumes
SET parsed = $3, parsed_content = $4, updated_at = $5
WHERE user_id = $1 AND id = $2`
	parsed, content := profileColumns(profile)
	res, err := r.DB.ExecContext(ctx, query, userID, id, parsed, content, at)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (Document, error) {
	var doc Document
	var parsed bool
	var content sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.FileURL,
		&doc.StorageKey,
		&doc.MimeType,
		&doc.SizeBytes,
		&parsed,
		&content,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return Document{}, err
	}
	if parsed && content.Valid {
		doc.Profile = Parsed(content.String)
	} else {
		doc.Profile = NotParsed()
	}
	return doc, nil
}

func profileColumns(p Profile) (bool, sql.NullString) {
	content, ok := p.Content()
	if !ok {
		return false, sql.NullString{}
	}
	return true, sql.NullString{String: content, Valid: true}
}
