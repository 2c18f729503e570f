package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studykit-backend/internal/files"
	"studykit-backend/internal/llm"
	"studykit-backend/internal/shared/server/respond"
)

type Handler struct {
	Files *files.Service
}

func NewHandler(svc *files.Service) *Handler {
	return &Handler{Files: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export", h.export)
}

type exportRequest struct {
	FileID    string         `json:"fileId" binding:"required"`
	Questions []llm.QuizItem `json:"questions"`
}

func (h *Handler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileId is required", nil)
		return
	}
	c.Set("fileId", req.FileID)

	rec, err := h.Files.Get(c.Request.Context(), req.FileID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	doc, err := Render(rec.Summary, req.Questions)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="quiz.docx"`)
	c.Data(http.StatusOK, ContentType, doc)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, files.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, files.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
	case errors.Is(err, ErrRender):
		respond.Error(c, http.StatusInternalServerError, "render_failure", "failed to render document", nil)
	case errors.Is(err, files.ErrStorage):
		respond.Error(c, http.StatusServiceUnavailable, "storage_error", "storage unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
