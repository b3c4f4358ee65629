package questions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireprompt-backend/internal/jobspecs"
	"hireprompt-backend/internal/resumes"
	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/metrics"
	"hireprompt-backend/internal/shared/telemetry"
	"hireprompt-backend/internal/users"
)

// Generation stages reported in logs and metrics.
const (
	StageValidating = "validating"
	StageGenerating = "generating"
	StagePersisting = "persisting"
	StageDone       = "done"
	StageFailed     = "failed"
)

type UserLookup interface {
	Get(ctx context.Context, userID string) (users.User, error)
}

type DocumentLookup interface {
	Get(ctx context.Context, userID, id string) (resumes.Document, error)
}

type JobSpecLookup interface {
	Get(ctx context.Context, userID, id string) (jobspecs.JobSpec, error)
}

type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, in GenerateInput) ([]Question, error)
}

// Service orchestrates question generation and reads stored sets.
type Service struct {
	Users     UserLookup
	Documents DocumentLookup
	JobSpecs  JobSpecLookup
	Generator QuestionGenerator
	Repo      Repo
	// Provider and Model are recorded on every generated set.
	Provider string
	Model    string
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Generate validates ownership and parse state, asks the generator for
// questions and persists the complete set in one write. Nothing is stored
// when any earlier stage fails.
func (s *Service) Generate(ctx context.Context, userID, resumeID, jobSpecID string) (QuestionSet, error) {
	started := time.Now()
	run := &generation{fields: map[string]any{
		"user_id":     userID,
		"resume_id":   resumeID,
		"job_spec_id": jobSpecID,
	}}
	defer func() {
		metrics.ObserveGenerationDurationMs(float64(time.Since(started).Milliseconds()))
	}()

	run.enter(StageValidating)
	input, err := s.validate(ctx, userID, resumeID, jobSpecID)
	if err != nil {
		return QuestionSet{}, run.fail(err)
	}

	run.enter(StageGenerating)
	qs, err := s.Generator.GenerateQuestions(ctx, input)
	if err != nil {
		if k := apperr.KindOf(err); k != apperr.KindGeneration && k != apperr.KindValidation {
			err = apperr.Wrap(apperr.KindGeneration, "failed to generate questions", err)
		}
		return QuestionSet{}, run.fail(err)
	}

	run.enter(StagePersisting)
	set := QuestionSet{
		ID:        uuid.NewString(),
		UserID:    userID,
		ResumeID:  resumeID,
		JobSpecID: jobSpecID,
		Questions: qs,
		Provider:  s.Provider,
		Model:     s.Model,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, set); err != nil {
		return QuestionSet{}, run.fail(apperr.Wrap(apperr.KindStorage, "failed to save questions", err))
	}

	run.fields["question_set_id"] = set.ID
	run.fields["questions"] = len(set.Questions)
	run.enter(StageDone)
	return set, nil
}

func (s *Service) validate(ctx context.Context, userID, resumeID, jobSpecID string) (GenerateInput, error) {
	switch {
	case strings.TrimSpace(userID) == "":
		return GenerateInput{}, apperr.Validation("user id is required", nil)
	case strings.TrimSpace(resumeID) == "":
		return GenerateInput{}, apperr.Validation("resumeId is required", nil)
	case strings.TrimSpace(jobSpecID) == "":
		return GenerateInput{}, apperr.Validation("jobSpecId is required", nil)
	}

	if _, err := s.Users.Get(ctx, userID); err != nil {
		return GenerateInput{}, err
	}
	doc, err := s.Documents.Get(ctx, userID, resumeID)
	if err != nil {
		return GenerateInput{}, err
	}
	spec, err := s.JobSpecs.Get(ctx, userID, jobSpecID)
	if err != nil {
		return GenerateInput{}, err
	}
	profile, ok := doc.Profile.Content()
	if !ok {
		return GenerateInput{}, apperr.Precondition("document not parsed")
	}
	return GenerateInput{
		Profile:          profile,
		JobTitle:         spec.Title,
		JobDescription:   spec.Description,
		RequiredSkills:   spec.RequiredSkills,
		Responsibilities: spec.Responsibilities,
	}, nil
}

// List returns the user's question sets newest first.
func (s *Service) List(ctx context.Context, userID string) ([]QuestionSet, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns an owned question set.
func (s *Service) Get(ctx context.Context, userID, id string) (QuestionSet, error) {
	if strings.TrimSpace(id) == "" {
		return QuestionSet{}, apperr.Validation("question set id is required", nil)
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// generation tracks the current stage of one Generate call.
type generation struct {
	stage  string
	fields map[string]any
}

func (g *generation) enter(stage string) {
	if g.stage != "" {
		metrics.IncGenerationStage(g.stage, "ok")
	}
	g.stage = stage
	g.fields["stage"] = stage
	telemetry.Info("questions.stage", g.fields)
	if stage == StageDone {
		metrics.IncGenerationStage(stage, "ok")
	}
}

func (g *generation) fail(err error) error {
	metrics.IncGenerationStage(g.stage, "failed")
	fields := make(map[string]any, len(g.fields)+2)
	for k, v := range g.fields {
		fields[k] = v
	}
	fields["stage"] = StageFailed
	fields["failed_stage"] = g.stage
	fields["error"] = err
	if apperr.KindOf(err) == apperr.KindGeneration || apperr.KindOf(err) == apperr.KindStorage {
		telemetry.Error("questions.stage", fields)
	} else {
		telemetry.Warn("questions.stage", fields)
	}
	return err
}
