package jobspecs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-specs", h.create)
	rg.GET("/job-specs", h.list)
	rg.GET("/job-specs/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.Validation("invalid request body", nil))
		return
	}
	spec, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.Set("jobSpecId", spec.ID)
	respond.JSON(c, http.StatusCreated, spec)
}

func (h *Handler) list(c *gin.Context) {
	specs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, specs)
}

func (h *Handler) get(c *gin.Context) {
	spec, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, spec)
}
