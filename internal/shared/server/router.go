package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/auth"
	"hireprompt-backend/internal/shared/config"
	"hireprompt-backend/internal/shared/metrics"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/server/respond"
)

// Routes is implemented by every domain handler.
type Routes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// PublicRoutes is implemented by handlers with unauthenticated endpoints.
type PublicRoutes interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Status(ctx context.Context) (map[string]any, bool)
}

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Config      config.Config
	Issuer      *auth.Issuer
	Revocations *auth.Revocations
	Health      HealthChecker
	// Public handlers are mounted without authentication.
	Public []PublicRoutes
	// Open handlers register their own routes without authentication.
	Open []Routes
	// Private handlers are mounted behind the session middleware.
	Private []Routes
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	health := func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status, ok := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	}
	r.GET("/health", health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", health)
	for _, h := range deps.Public {
		h.RegisterPublicRoutes(api)
	}
	for _, h := range deps.Open {
		h.RegisterRoutes(api)
	}

	private := api.Group("", middleware.Auth(deps.Issuer, deps.Revocations))
	for _, h := range deps.Private {
		h.RegisterRoutes(private)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
