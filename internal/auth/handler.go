package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes that need no session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches routes behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.logout)
}

func (h *Handler) signup(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.Validation("invalid request body", nil))
		return
	}
	user, err := h.Svc.SignUp(c.Request.Context(), req)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.Validation("invalid request body", nil))
		return
	}
	result, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) logout(c *gin.Context) {
	err := h.Svc.Logout(c.Request.Context(), middleware.TokenIDFromContext(c), middleware.TokenExpiryFromContext(c))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"success": true})
}
