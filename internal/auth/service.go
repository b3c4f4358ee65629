package auth

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hireprompt-backend/internal/identity"
	"hireprompt-backend/internal/shared/apperr"
	sharedauth "hireprompt-backend/internal/shared/auth"
	"hireprompt-backend/internal/shared/telemetry"
	"hireprompt-backend/internal/shared/util"
	"hireprompt-backend/internal/users"
)

// SignUpRequest is the body of POST /auth/signup.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"fullName" validate:"max=200"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionToken is the locally issued bearer token.
type SessionToken struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User    users.User   `json:"user"`
	Session SessionToken `json:"session"`
}

// UserProvisioner maps identities onto local users.
type UserProvisioner interface {
	EnsureFromIdentity(ctx context.Context, in users.IdentityInput) (users.User, error)
}

// Service runs password signup, login and logout.
type Service struct {
	Identity    identity.Authenticator
	Users       UserProvisioner
	Issuer      *sharedauth.Issuer
	Revocations *sharedauth.Revocations
	validate    *validator.Validate
}

func NewService(authn identity.Authenticator, provisioner UserProvisioner, issuer *sharedauth.Issuer, revocations *sharedauth.Revocations) *Service {
	return &Service{
		Identity:    authn,
		Users:       provisioner,
		Issuer:      issuer,
		Revocations: revocations,
		validate:    util.NewValidator(),
	}
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (users.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validate.Struct(req); err != nil {
		return users.User{}, err
	}

	id, err := s.Identity.SignUp(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return users.User{}, err
	}
	user, err := s.Users.EnsureFromIdentity(ctx, users.IdentityInput{
		ExternalID: id.ExternalID,
		Email:      id.Email,
		FullName:   id.FullName,
	})
	if err != nil {
		return users.User{}, err
	}
	telemetry.Info("auth.signup", map[string]any{"user_id": user.ID})
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return LoginResult{}, err
	}

	session, err := s.Identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResult{}, err
	}
	email := session.Identity.Email
	if email == "" {
		email = req.Email
	}
	user, err := s.Users.EnsureFromIdentity(ctx, users.IdentityInput{
		ExternalID: session.Identity.ExternalID,
		Email:      email,
		FullName:   session.Identity.FullName,
	})
	if err != nil {
		return LoginResult{}, err
	}
	return s.issue(user)
}

// Logout revokes the session token id until it would have expired.
func (s *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if strings.TrimSpace(tokenID) == "" {
		return apperr.New(apperr.KindUnauthorized, "missing or invalid token")
	}
	if s.Revocations == nil || s.Revocations.Store == nil {
		return nil
	}
	if err := s.Revocations.Revoke(ctx, tokenID, expiresAt); err != nil {
		return apperr.Wrap(apperr.KindStorage, "failed to revoke session", err)
	}
	return nil
}

func (s *Service) issue(user users.User) (LoginResult, error) {
	token, claims, err := s.Issuer.Sign(user.ID, user.Email, user.FullName)
	if err != nil {
		return LoginResult{}, apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}
	telemetry.Info("auth.session_issued", map[string]any{"user_id": user.ID, "token_id": claims.ID})
	return LoginResult{
		User: user,
		Session: SessionToken{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresAt:   claims.ExpiresAt.Time,
		},
	}, nil
}
