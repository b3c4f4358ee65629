package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hireprompt-backend/internal/shared/apperr"
)

// Local authenticates against bcrypt hashes in a CredentialRepo.
type Local struct {
	Repo CredentialRepo
	Cost int
	Now  func() time.Time
}

func NewLocal(repo CredentialRepo) *Local {
	return &Local{Repo: repo, Cost: bcrypt.DefaultCost, Now: func() time.Time { return time.Now().UTC() }}
}

func (l *Local) SignUp(ctx context.Context, email, password, fullName string) (Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.Cost)
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	cred := Credential{
		ExternalID:   "local:" + uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    l.Now(),
	}
	if err := l.Repo.Create(ctx, cred); err != nil {
		if errors.Is(err, errCredentialExists) {
			return Identity{}, ErrAlreadyRegistered
		}
		return Identity{}, apperr.Wrap(apperr.KindStorage, "failed to save credentials", err)
	}
	return Identity{ExternalID: cred.ExternalID, Email: cred.Email, FullName: cred.FullName}, nil
}

// Authenticate verifies the password. Local sessions carry no provider
// token; callers issue their own session.
func (l *Local) Authenticate(ctx context.Context, email, password string) (Session, error) {
	cred, err := l.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errCredentialNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, apperr.Wrap(apperr.KindStorage, "failed to load credentials", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Identity: Identity{ExternalID: cred.ExternalID, Email: cred.Email, FullName: cred.FullName}}, nil
}
