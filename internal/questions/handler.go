package questions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/server/respond"
)

// GenerateRequest is the body of POST /questions/generate.
type GenerateRequest struct {
	ResumeID  string `json:"resumeId"`
	JobSpecID string `json:"jobSpecId"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	// GenerateLimit guards the generation route when set.
	GenerateLimit gin.HandlerFunc
}

func NewHandler(svc *Service, generateLimit gin.HandlerFunc) *Handler {
	return &Handler{Svc: svc, GenerateLimit: generateLimit}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	if h.GenerateLimit != nil {
		rg.POST("/questions/generate", h.GenerateLimit, h.generate)
	} else {
		rg.POST("/questions/generate", h.generate)
	}
	rg.GET("/question-sets", h.list)
	rg.GET("/question-sets/:id", h.get)
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.Validation("invalid request body", nil))
		return
	}
	c.Set("resumeId", req.ResumeID)
	c.Set("jobSpecId", req.JobSpecID)

	set, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req.ResumeID, req.JobSpecID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.Set("questionSetId", set.ID)
	respond.JSON(c, http.StatusCreated, set)
}

func (h *Handler) list(c *gin.Context) {
	sets, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, sets)
}

func (h *Handler) get(c *gin.Context) {
	c.Set("questionSetId", c.Param("id"))
	set, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, set)
}
