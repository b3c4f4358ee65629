package resumes

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireprompt-backend/internal/shared/apperr"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/server/respond"
)

// multipart framing allowance on top of the file limit
const formOverhead = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.POST("/resumes/:id/parse", h.reparse)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit := h.Svc.maxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+formOverhead)

	fileHeader, err := formFile(c, "resume", "file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Err(c, apperr.Validation(fmt.Sprintf("file exceeds %d MB limit", limit>>20), nil))
			return
		}
		respond.Err(c, apperr.Validation("file is required", nil))
		return
	}
	if fileHeader.Size > limit {
		respond.Err(c, apperr.Validation(fmt.Sprintf("file exceeds %d MB limit", limit>>20), nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Err(c, apperr.Validation("unable to read file", nil))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		respond.Err(c, apperr.Validation("unable to read file", nil))
		return
	}

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respond.Err(c, err)
		return
	}
	c.Set("resumeId", doc.ID)
	respond.JSON(c, http.StatusCreated, doc)
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, docs)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, doc)
}

func (h *Handler) reparse(c *gin.Context) {
	c.Set("resumeId", c.Param("id"))
	doc, queued, err := h.Svc.RequestReparse(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), middleware.RequestIDFromContext(c))
	if err != nil {
		respond.Err(c, err)
		return
	}
	if queued {
		respond.JSON(c, http.StatusAccepted, gin.H{"id": doc.ID, "status": "queued"})
		return
	}
	respond.JSON(c, http.StatusOK, doc)
}

func formFile(c *gin.Context, names ...string) (*multipart.FileHeader, error) {
	var lastErr error
	for _, name := range names {
		fh, err := c.FormFile(name)
		if err == nil {
			return fh, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
