// Package profiles turns extracted résumé text into a sectioned profile.
package profiles

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"hireprompt-backend/internal/llm"
	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/telemetry"
)

// DefaultMaxInputRunes caps how much raw text is sent to the provider.
const DefaultMaxInputRunes = 60000

// Normalizer structures raw résumé text through an llm.Client. With a nil
// client it returns a deterministic mock profile.
type Normalizer struct {
	Client        llm.Client
	MaxInputRunes int
}

// NewNormalizer returns a Normalizer; maxRunes <= 0 selects DefaultMaxInputRunes.
func NewNormalizer(client llm.Client, maxRunes int) *Normalizer {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxInputRunes
	}
	return &Normalizer{Client: client, MaxInputRunes: maxRunes}
}

// NormalizeProfile returns the structured profile text for rawText.
func (n *Normalizer) NormalizeProfile(ctx context.Context, rawText string) (string, error) {
	if strings.TrimSpace(rawText) == "" {
		return "", apperr.Validation("resume text is empty", nil)
	}
	if n.Client == nil {
		return MockProfile(rawText), nil
	}

	prompt, truncated := truncateRunes(rawText, n.MaxInputRunes)
	if truncated {
		telemetry.Warn("profile.input_truncated", map[string]any{
			"input_runes": utf8.RuneCountInString(rawText),
			"max_runes":   n.MaxInputRunes,
		})
	}

	out, err := n.Client.Complete(ctx, llm.Request{Messages: llm.NormalizeMessages(prompt)})
	if err != nil {
		return "", apperr.Wrap(apperr.KindNormalization, "failed to structure resume", fmt.Errorf("%s: %w", n.Client.Provider(), err))
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", apperr.Wrap(apperr.KindNormalization, "failed to structure resume", llm.ErrEmptyResponse)
	}
	return out, nil
}

func truncateRunes(s string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i], true
		}
		count++
	}
	return s, false
}
