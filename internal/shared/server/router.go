package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studykit-backend/internal/export"
	"studykit-backend/internal/files"
	"studykit-backend/internal/shared/config"
	"studykit-backend/internal/shared/server/middleware"
	"studykit-backend/internal/shared/server/respond"
)

// RouterDeps collects the handlers the engine routes to.
type RouterDeps struct {
	Config        config.Config
	FilesHandler  *files.Handler
	ExportHandler *export.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	// Only override gin's default debug mode; a mode set by the caller
	// (tests use gin.TestMode) stays in effect.
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.FilesHandler != nil {
		deps.FilesHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}

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
