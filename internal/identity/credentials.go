package identity

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"hireprompt-backend/internal/shared/storage/db"
)

var (
	errCredentialNotFound = errors.New("credential not found")
	errCredentialExists   = errors.New("credential exists")
)

// Credential is a locally managed password account.
type Credential struct {
	ExternalID   string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

// CredentialRepo stores local credentials keyed by lower-cased email.
type CredentialRepo interface {
	Create(ctx context.Context, cred Credential) error
	GetByEmail(ctx context.Context, email string) (Credential, error)
}

type MemoryCredentialRepo struct {
	mu      sync.RWMutex
	byEmail map[string]Credential
}

func NewMemoryCredentialRepo() *MemoryCredentialRepo {
	return &MemoryCredentialRepo{byEmail: make(map[string]Credential)}
}

func (r *MemoryCredentialRepo) Create(ctx context.Context, cred Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := normalizeEmail(cred.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return errCredentialExists
	}
	r.byEmail[key] = cred
	return nil
}

func (r *MemoryCredentialRepo) GetByEmail(ctx context.Context, email string) (Credential, error) {
	if err := ctx.Err(); err != nil {
		return Credential{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return Credential{}, errCredentialNotFound
	}
	return cred, nil
}

// PGCredentialRepo implements CredentialRepo using Postgres.
type PGCredentialRepo struct {
	DB *sql.DB
}

func (r *PGCredentialRepo) Create(ctx context.Context, cred Credential) error {
	const query = `
INSERT INTO credentials (external_id, email, password_hash, full_name, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		cred.ExternalID,
		normalizeEmail(cred.Email),
		cred.PasswordHash,
		cred.FullName,
		cred.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return errCredentialExists
	}
	return err
}

func (r *PGCredentialRepo) GetByEmail(ctx context.Context, email string) (Credential, error) {
	const query = `
SELECT external_id, email, password_hash, full_name, created_at
FROM credentials
WHERE email = $1
LIMIT 1`
	var cred Credential
	err := r.DB.QueryRowContext(ctx, query, normalizeEmail(email)).Scan(
		&cred.ExternalID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.FullName,
		&cred.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, errCredentialNotFound
	}
	return cred, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
