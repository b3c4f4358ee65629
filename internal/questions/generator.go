package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hireprompt-backend/internal/llm"
	"hireprompt-backend/internal/shared/apperr"
)

var (
	errMalformed    = errors.New("malformed questions payload")
	errNoQuestions  = errors.New("no questions returned")
	errEmptyElement = errors.New("question with empty field")
)

// Generator asks a text-generation provider for interview questions. A nil
// Client selects the fixed offline question list.
type Generator struct {
	Client llm.Client
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{Client: client}
}

// GenerateQuestions returns the provider's questions in order, without
// padding, dropping or re-categorizing any of them.
func (g *Generator) GenerateQuestions(ctx context.Context, in GenerateInput) ([]Question, error) {
	if strings.TrimSpace(in.Profile) == "" {
		return nil, apperr.Validation("profile is empty", nil)
	}
	if g.Client == nil {
		return MockQuestions(in.JobTitle, in.RequiredSkills), nil
	}

	raw, err := g.Client.Complete(ctx, llm.Request{
		Messages: llm.QuestionMessages(llm.QuestionPrompt{
			Profile:          in.Profile,
			JobTitle:         in.JobTitle,
			JobDescription:   in.JobDescription,
			RequiredSkills:   in.RequiredSkills,
			Responsibilities: in.Responsibilities,
		}),
		JSON: true,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindGeneration, "failed to generate questions", fmt.Errorf("%s: %w", g.Client.Provider(), err))
	}

	qs, err := parseQuestions(raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindGeneration, "failed to generate questions", err)
	}
	return qs, nil
}

// parseQuestions accepts either {"questions":[...]} or a bare array.
func parseQuestions(raw string) ([]Question, error) {
	body := []byte(stripFence(raw))
	var list []Question
	if strings.HasPrefix(string(body), "[") {
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformed, err)
		}
	} else {
		var payload struct {
			Questions []Question `json:"questions"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformed, err)
		}
		list = payload.Questions
	}
	if len(list) == 0 {
		return nil, errNoQuestions
	}
	out := make([]Question, 0, len(list))
	for i, q := range list {
		q.Type = strings.TrimSpace(q.Type)
		q.Question = strings.TrimSpace(q.Question)
		q.Rationale = strings.TrimSpace(q.Rationale)
		if q.Type == "" || q.Question == "" || q.Rationale == "" {
			return nil, fmt.Errorf("%w at index %d", errEmptyElement, i)
		}
		out = append(out, q)
	}
	return out, nil
}

// stripFence removes a markdown code fence some providers wrap JSON in.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
