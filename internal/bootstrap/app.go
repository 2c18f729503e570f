package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studykit-backend/internal/export"
	"studykit-backend/internal/files"
	"studykit-backend/internal/llm"
	"studykit-backend/internal/llm/gemini"
	openai "studykit-backend/internal/llm/openai"
	"studykit-backend/internal/shared/config"
	"studykit-backend/internal/shared/server"
	"studykit-backend/internal/shared/storage/db"
	"studykit-backend/internal/shared/storage/object"
	localstore "studykit-backend/internal/shared/storage/object/local"
	s3store "studykit-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired for serving.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         object.ObjectStore
	LLM           llm.Client
	FilesRepo     files.Repo
	FilesService  *files.Service
	FilesHandler  *files.Handler
	ExportHandler *export.Handler
}

// Build prepares shared dependencies and the router. The LLM client can be
// overridden for tests via BuildWithLLM.
func Build(cfg config.Config) (*App, error) {
	llmClient, err := buildLLM(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return BuildWithLLM(cfg, llmClient)
}

// BuildWithLLM wires the app around a caller-supplied LLM client.
func BuildWithLLM(cfg config.Config, llmClient llm.Client) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo files.Repo
	if sqlDB != nil {
		repo = &files.PGRepo{DB: sqlDB}
	} else {
		repo = files.NewMemoryRepo()
	}

	svc := &files.Service{
		Repo:            repo,
		Store:           store,
		LLM:             llm.WithRetries(llmClient, cfg.LLMMaxRetries),
		SummaryMaxChars: cfg.SummaryMaxChars,
	}

	app := &App{
		Config:        cfg,
		DB:            sqlDB,
		Store:         store,
		LLM:           svc.LLM,
		FilesRepo:     repo,
		FilesService:  svc,
		FilesHandler:  files.NewHandler(svc),
		ExportHandler: export.NewHandler(svc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		FilesHandler:  app.FilesHandler,
		ExportHandler: app.ExportHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	timeout := time.Duration(cfg.LLMTimeoutSecs) * time.Second
	switch cfg.LLMProvider {
	case "gemini":
		return gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLMModel, timeout)
	default:
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, timeout)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
