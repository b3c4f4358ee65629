package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"hireprompt-backend/internal/llm"
)

type fakeModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
	block    bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestCompleteMapsRolesAndJSONMode(t *testing.T) {
	fake := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: ` {"questions":[]} `}}}}
	c := newWithModel(fake, "gemini-2.5-flash", time.Second)

	out, err := c.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleSystem, Content: "sys"}, {Role: llm.RoleUser, Content: "hi"}},
		JSON:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, out)
	require.Len(t, fake.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, fake.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, fake.messages[1].Role)
	assert.True(t, fake.opts.JSONMode)
	assert.Equal(t, "gemini", c.Provider())
}

func TestCompleteEmptyResponse(t *testing.T) {
	for _, resp := range []*llms.ContentResponse{
		{},
		{Choices: []*llms.ContentChoice{{Content: "  "}}},
	} {
		c := newWithModel(&fakeModel{resp: resp}, "m", 0)
		_, err := c.Complete(context.Background(), llm.Request{})
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	}
}

func TestCompleteTimeout(t *testing.T) {
	c := newWithModel(&fakeModel{block: true}, "m", 20*time.Millisecond)
	_, err := c.Complete(context.Background(), llm.Request{})
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

func TestCompleteProviderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := newWithModel(&fakeModel{err: boom}, "m", 0)
	_, err := c.Complete(context.Background(), llm.Request{})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, llm.ErrTimeout)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", time.Second)
	assert.Error(t, err)
}
