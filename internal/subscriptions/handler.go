package subscriptions

import (
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

// RegisterPublicRoutes attaches the plan catalog.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.plans)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscription", h.get)
	rg.POST("/subscription/plan", h.updatePlan)
}

func (h *Handler) plans(c *gin.Context) {
	respond.OK(c, Plans())
}

func (h *Handler) get(c *gin.Context) {
	sub, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, sub)
}

func (h *Handler) updatePlan(c *gin.Context) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.Validation("invalid request body", nil))
		return
	}
	result, err := h.Svc.UpdatePlan(c.Request.Context(), middleware.UserIDFromContext(c), req.Plan)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, result)
}
