package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service reports process and dependency health.
type Service struct {
	DB           *sql.DB
	StoreBackend string
	LLMProvider  string
}

// NewService constructs a health service. A nil db means memory repos.
func NewService(db *sql.DB, storeBackend, llmProvider string) *Service {
	return &Service{DB: db, StoreBackend: storeBackend, LLMProvider: llmProvider}
}

// Status returns the health payload and whether the service is healthy.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	out := map[string]any{
		"ok":       true,
		"database": "memory",
		"storage":  s.StoreBackend,
		"llm":      s.LLMProvider,
	}
	if s.DB == nil {
		return out, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		out["ok"] = false
		out["database"] = "down"
		return out, false
	}
	out["database"] = "up"
	return out, true
}
