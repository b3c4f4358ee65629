// Package identity authenticates email/password accounts against an
// identity provider. The local user record is kept by the users package.
package identity

import (
	"context"
	"time"

	"hireprompt-backend/internal/shared/apperr"
)

// Identity is the provider's view of an account.
type Identity struct {
	ExternalID string
	Email      string
	FullName   string
}

// Session is the provider's result of a password login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Identity    Identity
}

type Authenticator interface {
	SignUp(ctx context.Context, email, password, fullName string) (Identity, error)
	Authenticate(ctx context.Context, email, password string) (Session, error)
}

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "Invalid login credentials")
	ErrAlreadyRegistered  = apperr.Validation("User with this email already exists", nil)
	// ErrUnavailable matches every provider transport or server failure.
	ErrUnavailable = apperr.ErrUpstream
)

func unavailable(cause error) error {
	return apperr.Wrap(apperr.KindUpstream, "identity provider unavailable", cause)
}
