package subscriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/telemetry"
	"hireprompt-backend/internal/users"
)

// periodLength is the billing period of a newly created subscription.
const periodLength = 365 * 24 * time.Hour

type UserPlans interface {
	Get(ctx context.Context, userID string) (users.User, error)
	UpdatePlan(ctx context.Context, userID, plan string) error
}

type Service struct {
	Repo  Repo
	Users UserPlans
	Now   func() time.Time
}

func NewService(repo Repo, userPlans UserPlans) *Service {
	return &Service{Repo: repo, Users: userPlans, Now: func() time.Time { return time.Now().UTC() }}
}

// UpdatePlan moves the user to plan and records it on the subscription.
// An existing subscription keeps its billing period.
func (s *Service) UpdatePlan(ctx context.Context, userID, plan string) (UpdateResult, error) {
	plan = strings.ToLower(strings.TrimSpace(plan))
	if _, ok := LookupPlan(plan); !ok {
		return UpdateResult{}, apperr.Validation("unknown plan", map[string]string{"plan": plan})
	}
	if _, err := s.Users.Get(ctx, userID); err != nil {
		return UpdateResult{}, err
	}
	if err := s.Users.UpdatePlan(ctx, userID, plan); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return UpdateResult{}, err
		}
		return UpdateResult{}, apperr.Wrap(apperr.KindStorage, "failed to update plan", err)
	}

	now := s.Now()
	sub, err := s.Repo.UpdatePlan(ctx, userID, plan, StatusActive, now)
	if errors.Is(err, ErrNotFound) {
		sub = Subscription{
			ID:                 uuid.NewString(),
			UserID:             userID,
			Plan:               plan,
			Status:             StatusActive,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.Add(periodLength),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		err = s.Repo.Create(ctx, sub)
	}
	if err != nil {
		return UpdateResult{}, apperr.Wrap(apperr.KindStorage, "failed to save subscription", err)
	}

	telemetry.Info("subscription.plan_updated", map[string]any{"user_id": userID, "plan": plan})
	return UpdateResult{Success: true, Plan: plan, Subscription: sub}, nil
}

func (s *Service) Get(ctx context.Context, userID string) (Subscription, error) {
	return s.Repo.GetByUser(ctx, userID)
}
