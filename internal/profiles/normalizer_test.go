package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireprompt-backend/internal/llm"
	"hireprompt-backend/internal/shared/apperr"
)

type stubClient struct {
	out  string
	err  error
	reqs []llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.reqs = append(s.reqs, req)
	return s.out, s.err
}

func (s *stubClient) Provider() string { return "stub" }
func (s *stubClient) Model() string    { return "stub-1" }

func TestNormalizeProfileSendsOnePlainTextRequest(t *testing.T) {
	client := &stubClient{out: "  Contact Information\nJane  "}
	n := NewNormalizer(client, 0)

	out, err := n.NormalizeProfile(context.Background(), "Jane Doe\nGo")
	require.NoError(t, err)
	assert.Equal(t, "Contact Information\nJane", out)
	require.Len(t, client.reqs, 1)
	assert.False(t, client.reqs[0].JSON)
	assert.Contains(t, client.reqs[0].Messages[1].Content, "Jane Doe\nGo")
}

func TestNormalizeProfileRejectsBlankInput(t *testing.T) {
	client := &stubClient{out: "x"}
	_, err := NewNormalizer(client, 0).NormalizeProfile(context.Background(), " \n\t")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, client.reqs)
}

func TestNormalizeProfileFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *stubClient
	}{
		{name: "provider error", client: &stubClient{err: errors.New("503")}},
		{name: "timeout", client: &stubClient{err: llm.ErrTimeout}},
		{name: "empty", client: &stubClient{out: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizer(tt.client, 0).NormalizeProfile(context.Background(), "text")
			assert.ErrorIs(t, err, apperr.ErrNormalization)
		})
	}
}

func TestNormalizeProfileTruncatesPromptOnRuneBoundary(t *testing.T) {
	client := &stubClient{out: "ok"}
	raw := strings.Repeat("é", 50)
	_, err := NewNormalizer(client, 10).NormalizeProfile(context.Background(), raw)
	require.NoError(t, err)

	user := client.reqs[0].Messages[1].Content
	assert.True(t, utf8.ValidString(user))
	assert.True(t, strings.HasSuffix(user, strings.Repeat("é", 10)))
	assert.False(t, strings.HasSuffix(user, strings.Repeat("é", 11)))
	assert.Equal(t, 50, utf8.RuneCountInString(raw))
}

func TestMockProfile(t *testing.T) {
	out, err := NewNormalizer(nil, 0).NormalizeProfile(context.Background(), "  Alexandra Catherine Montgomery-Smith\nEngineer")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## Resume Parsing Results\n\n### Personal Information\n"))
	assert.Contains(t, out, "- Name: Alexandra Catherine Montgomery\n")
	for _, header := range []string{"### Skills", "### Work Experience", "### Education"} {
		assert.Contains(t, out, header)
	}
	assert.Equal(t, out, MockProfile("  Alexandra Catherine Montgomery-Smith\nEngineer"))
}
