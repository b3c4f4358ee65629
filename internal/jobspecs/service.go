package jobspecs

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/util"
)

// Service contains business logic for job specs.
type Service struct {
	Repo     Repo
	Now      func() time.Time
	policy   *bluemonday.Policy
	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{
		Repo:     repo,
		Now:      func() time.Time { return time.Now().UTC() },
		policy:   bluemonday.StrictPolicy(),
		validate: util.NewValidator(),
	}
}

// Create sanitises, validates and stores a new job spec.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (JobSpec, error) {
	if strings.TrimSpace(userID) == "" {
		return JobSpec{}, apperr.Validation("user id is required", nil)
	}

	in.Title = s.clean(in.Title)
	in.Description = s.clean(in.Description)
	in.AdditionalNotes = s.clean(in.AdditionalNotes)
	in.RequiredSkills = dedupeFold(s.cleanList(in.RequiredSkills))
	in.Responsibilities = s.cleanList(in.Responsibilities)

	if err := s.validate.Struct(in); err != nil {
		return JobSpec{}, err
	}

	spec := JobSpec{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            in.Title,
		Description:      in.Description,
		RequiredSkills:   in.RequiredSkills,
		Responsibilities: in.Responsibilities,
		AdditionalNotes:  in.AdditionalNotes,
		CreatedAt:        s.Now(),
	}
	if err := s.Repo.Create(ctx, spec); err != nil {
		return JobSpec{}, apperr.Wrap(apperr.KindStorage, "failed to save job spec", err)
	}
	return spec, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (JobSpec, error) {
	if strings.TrimSpace(id) == "" {
		return JobSpec{}, apperr.Validation("job spec id is required", nil)
	}
	return s.Repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]JobSpec, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// clean strips markup and trims; entities produced by the policy are
// decoded so stored text stays plain.
func (s *Service) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *Service) cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if c := s.clean(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// dedupeFold drops case-insensitive repeats, keeping the first spelling.
func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
