package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// EnsureFromIdentity maps an identity-provider account onto a local user,
// creating it on first sight with the email local-part as username.
func (s *Service) EnsureFromIdentity(ctx context.Context, in IdentityInput) (User, error) {
	in.ExternalID = strings.TrimSpace(in.ExternalID)
	in.Email = strings.TrimSpace(in.Email)
	if in.ExternalID == "" || in.Email == "" {
		return User{}, apperr.Validation("external id and email are required", nil)
	}

	user, err := s.Repo.GetByExternalID(ctx, in.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, apperr.Wrap(apperr.KindStorage, "failed to load user", err)
	}

	now := s.Now()
	user = User{
		ID:         uuid.NewString(),
		Username:   usernameFromEmail(in.Email),
		Email:      in.Email,
		FullName:   strings.TrimSpace(in.FullName),
		Plan:       PlanFree,
		ExternalID: in.ExternalID,
		PictureURL: in.PictureURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = s.Repo.Create(ctx, user)
	if errors.Is(err, ErrConflict) {
		// Same local-part from another domain; disambiguate once.
		user.Username = user.Username + "-" + user.ID[:8]
		err = s.Repo.Create(ctx, user)
	}
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return User{}, err
		}
		return User{}, apperr.Wrap(apperr.KindStorage, "failed to create user", err)
	}
	telemetry.Info("user.created", map[string]any{"user_id": user.ID, "external_id": user.ExternalID})
	return user, nil
}

func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, apperr.Validation("user id is required", nil)
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpdatePlan records the plan on the user row.
func (s *Service) UpdatePlan(ctx context.Context, userID, plan string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(plan) == "" {
		return apperr.Validation("user id and plan are required", nil)
	}
	return s.Repo.UpdatePlan(ctx, userID, plan, s.Now())
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.TrimSpace(local)
	if local == "" {
		return "user"
	}
	return local
}
