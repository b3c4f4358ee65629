package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/auth"
	"hireprompt-backend/internal/shared/server/respond"
	"hireprompt-backend/internal/shared/telemetry"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	tokenIDKey   = "tokenId"
	tokenExpKey  = "tokenExp"
)

// Auth validates bearer session tokens and stores identity in context.
func Auth(issuer *auth.Issuer, revocations *auth.Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Revocation lookups fail open; the token is still signed and unexpired.
			telemetry.Error("auth.revocation_lookup_failed", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err,
			})
		}
		if revoked {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "token revoked", nil)
			return
		}

		c.Set(userIDKey, claims.UserID())
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Set(tokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(tokenExpKey, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	return stringFromContext(c, userEmailKey)
}

// TokenIDFromContext fetches the session token id set by the auth middleware.
func TokenIDFromContext(c *gin.Context) string {
	return stringFromContext(c, tokenIDKey)
}

// TokenExpiryFromContext fetches the session token expiry set by the auth middleware.
func TokenExpiryFromContext(c *gin.Context) time.Time {
	if c == nil {
		return time.Time{}
	}
	val, _ := c.Get(tokenExpKey)
	exp, _ := val.(time.Time)
	return exp
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
