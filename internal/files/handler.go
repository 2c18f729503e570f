package files

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"studykit-backend/internal/extract"
	"studykit-backend/internal/llm"
	"studykit-backend/internal/shared/server/respond"
)

const maxUploadSize = 20 << 20 // 20MB per request

// Handler wires HTTP handlers to the pipeline service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/files", h.list)
	rg.DELETE("/files/:id", h.delete)
	rg.POST("/ask", h.ask)
	rg.POST("/questions", h.questions)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	inputs := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file "+fh.Filename, nil)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file "+fh.Filename, nil)
			return
		}
		inputs = append(inputs, UploadFile{Name: fh.Filename, Data: data})
	}

	results := h.Svc.UploadBatch(c.Request.Context(), inputs)

	resp := make([]gin.H, 0, len(results))
	for _, res := range results {
		entry := gin.H{"filename": res.FileName}
		if res.Err != nil {
			_, code, message := errorStatus(res.Err)
			entry["error"] = gin.H{"code": code, "message": message}
		} else {
			entry["record"] = toResponse(*res.Record)
		}
		resp = append(resp, entry)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) list(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toResponse(rec))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("fileId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"success": true})
}

type askRequest struct {
	FileID   string `json:"fileId"`
	Question string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("fileId", req.FileID)

	answer, err := h.Svc.Ask(c.Request.Context(), req.FileID, req.Question)
	if err != nil {
		writeError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"answer": answer})
}

type questionsRequest struct {
	FileID string `json:"fileId"`
}

func (h *Handler) questions(c *gin.Context) {
	var req questionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("fileId", req.FileID)

	items, err := h.Svc.GenerateQuiz(c.Request.Context(), req.FileID)
	if err != nil {
		writeError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"questions": items})
}

func writeError(c *gin.Context, err error) {
	status, code, message := errorStatus(err)
	respond.Error(c, status, code, message, nil)
}

// errorStatus maps pipeline errors to a distinct HTTP status and a short
// machine-readable code. Collaborator internals are never leaked.
func errorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, extract.ErrUnreadable):
		return http.StatusBadRequest, "unreadable_document", "file is not a readable document"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found", "file not found"
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout, "generation_timeout", "text generation timed out"
	case errors.Is(err, llm.ErrMalformed):
		return http.StatusBadGateway, "generation_malformed", "text generation returned malformed output"
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusBadGateway, "generation_unavailable", "text generation is unavailable"
	case errors.Is(err, ErrStorage):
		return http.StatusServiceUnavailable, "storage_error", "storage is unavailable"
	default:
		return http.StatusInternalServerError, "internal_error", "unexpected error"
	}
}
