package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/telemetry"
)

const defaultGoTrueTimeout = 15 * time.Second

// GoTrue talks to a Supabase-compatible auth server.
type GoTrue struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

func NewGoTrue(baseURL, apiKey string, timeout time.Duration) *GoTrue {
	if timeout <= 0 {
		timeout = defaultGoTrueTimeout
	}
	return &GoTrue{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

func (u gotrueUser) identity() Identity {
	return Identity{ExternalID: u.ID, Email: u.Email, FullName: u.UserMetadata.FullName}
}

type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	ExpiresAt   int64       `json:"expires_at"`
	User        *gotrueUser `json:"user"`
}

type gotrueError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
	Message     string `json:"message"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.Description, e.Message, e.Error} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (g *GoTrue) SignUp(ctx context.Context, email, password, fullName string) (Identity, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}
	status, raw, err := g.post(ctx, "/auth/v1/signup", body)
	if err != nil {
		return Identity{}, unavailable(err)
	}
	if status >= 500 {
		return Identity{}, unavailable(fmt.Errorf("gotrue signup status %d", status))
	}
	if status >= 400 {
		msg := decodeError(raw)
		if strings.Contains(strings.ToLower(msg), "already") {
			return Identity{}, ErrAlreadyRegistered
		}
		if msg == "" {
			msg = "signup rejected"
		}
		return Identity{}, apperr.Validation(msg, nil)
	}

	// With email confirmation enabled the user object is returned bare;
	// otherwise it is nested in a session.
	var payload struct {
		gotrueUser
		User *gotrueUser `json:"user"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Identity{}, unavailable(fmt.Errorf("decode signup response: %w", err))
	}
	user := payload.gotrueUser
	if payload.User != nil {
		user = *payload.User
	}
	if user.ID == "" {
		return Identity{}, unavailable(fmt.Errorf("signup response missing user id"))
	}
	if user.Email == "" {
		user.Email = email
	}
	if user.UserMetadata.FullName == "" {
		user.UserMetadata.FullName = fullName
	}
	return user.identity(), nil
}

func (g *GoTrue) Authenticate(ctx context.Context, email, password string) (Session, error) {
	status, raw, err := g.post(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Session{}, unavailable(err)
	}
	if status >= 500 {
		return Session{}, unavailable(fmt.Errorf("gotrue token status %d", status))
	}
	if status >= 400 {
		telemetry.Debug("identity.login_rejected", map[string]any{"status": status, "reason": decodeError(raw)})
		return Session{}, ErrInvalidCredentials
	}

	var payload gotrueSession
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Session{}, unavailable(fmt.Errorf("decode token response: %w", err))
	}
	if payload.User == nil || payload.User.ID == "" {
		return Session{}, unavailable(fmt.Errorf("token response missing user"))
	}

	session := Session{AccessToken: payload.AccessToken, Identity: payload.User.identity()}
	switch {
	case payload.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(payload.ExpiresAt, 0).UTC()
	case payload.ExpiresIn > 0:
		session.ExpiresAt = g.now().Add(time.Duration(payload.ExpiresIn) * time.Second).UTC()
	}
	return session, nil
}

func (g *GoTrue) post(ctx context.Context, path string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("apikey", g.apiKey)
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("gotrue request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("gotrue read body: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func decodeError(raw []byte) string {
	var e gotrueError
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	return e.text()
}
