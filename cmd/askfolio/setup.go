package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/providers/document"
	"github.com/sandevgo/askfolio/internal/providers/llm"
	"github.com/sandevgo/askfolio/internal/providers/rag"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/internal/service/command"
	"github.com/sandevgo/askfolio/internal/service/index"
	"github.com/sandevgo/askfolio/internal/service/session"
	"github.com/sandevgo/askfolio/internal/storage/sqlite"
	"github.com/sandevgo/askfolio/pkg/log"
	"github.com/sandevgo/askfolio/pkg/srv"
)

// App is everything a transport needs, built once at startup.
type App struct {
	AppCfg      *config.AppConfig
	ProviderCfg *config.ProviderConfig
	RAGCfg      *config.RAGConfig
	Profile     config.Profile

	Provider  core.AIProvider
	Index     *index.Index
	Assistant *assistant.Assistant
	Sessions  *session.Manager
	Router    *command.Router

	// Cleanups close resources; stop them after transports.
	Cleanups []srv.Service
}

func (a *App) Close(ctx context.Context) {
	srv.StopServices(ctx, a.Cleanups)
}

// NewApp loads configuration, indexes the corpus and wires the assistant.
// Any failure here is fatal: there is nothing to answer from.
func NewApp(ctx context.Context) *App {
	logger := log.FromCtx(ctx)
	app := &App{}

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	app.AppCfg = config.NewAppConfig(ctx)
	app.ProviderCfg = config.NewProviderConfig(ctx)
	app.RAGCfg = config.NewRAGConfig(ctx)

	profile, err := config.LoadProfile(app.AppCfg.GetProfilePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load profile")
	}
	app.Profile = profile

	// 2. Storage
	repo, err := initStorage(ctx, app)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// 3. AI Provider
	app.Provider, err = llm.NewProvider(ctx, app.ProviderCfg, app.ProviderCfg.MaxRetries)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	app.addCloser(app.Provider)

	// 4. RAG Provider (Embedder)
	embedder, err := rag.NewEmbedder(ctx, app.ProviderCfg, app.ProviderCfg.MaxRetries)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize RAG embedder")
	}
	app.addCloser(embedder)

	// 5. Index
	app.Index, err = buildIndex(ctx, app.AppCfg, app.RAGCfg, embedder)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build index")
	}

	// 6. Assistant and sessions
	retriever := assistant.NewRetriever(embedder, app.Index, app.RAGCfg.TopK)
	app.Assistant = assistant.New(app.Provider, retriever, app.Profile, assistant.Options{
		HistoryWindow: app.AppCfg.GetContextWindowSize(),
	})
	app.Sessions = session.NewManager(app.Assistant, repo, session.WithMaxSessions(app.AppCfg.GetMaxSessions()))

	lister, _ := app.Provider.(core.ModelLister)
	app.Router = command.New(command.NewCommands(app.Sessions, app.ProviderCfg, lister))

	logger.Info().
		Str("profile", app.Profile.Name).
		Int("passages", app.Index.Len()).
		Int("dim", app.Index.Dim()).
		Msg("assistant ready")
	return app
}

func (a *App) addCloser(v any) {
	if c, ok := v.(io.Closer); ok {
		a.Cleanups = append(a.Cleanups, srv.NewCleanup(c.Close))
	}
}

func initStorage(ctx context.Context, app *App) (core.TranscriptRepository, error) {
	if !app.AppCfg.TranscriptEnabled {
		return nil, nil
	}
	db, err := openDB(ctx, app.AppCfg)
	if err != nil {
		return nil, err
	}
	app.Cleanups = append(app.Cleanups, srv.NewCleanup(db.Close))
	return sqlite.NewTranscript(db), nil
}

func openDB(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("create runtime directory: %w", err)
	}
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

// loadPassages extracts and chunks every configured document.
func loadPassages(ctx context.Context, paths []string, ragCfg *config.RAGConfig) ([]core.Passage, error) {
	docs, err := document.NewCorpus(document.NewLoader(), paths).Load(ctx)
	if err != nil {
		return nil, err
	}

	chunkCfg := chunkerConfig(ragCfg)
	var passages []core.Passage
	for _, d := range docs {
		p, err := rag.ChunkPassages(d.Name, d.Text, chunkCfg)
		if err != nil {
			return nil, err
		}
		log.FromCtx(ctx).Debug().Str("document", d.Name).Int("chunks", len(p)).Msg("document chunked")
		passages = append(passages, p...)
	}
	return passages, nil
}

func buildIndex(ctx context.Context, appCfg *config.AppConfig, ragCfg *config.RAGConfig, embedder core.Embedder) (*index.Index, error) {
	passages, err := loadPassages(ctx, appCfg.GetDocumentPaths(), ragCfg)
	if err != nil {
		return nil, err
	}
	return index.Build(ctx, embedder, passages, index.Options{Concurrency: ragCfg.EmbedConcurrency})
}

func chunkerConfig(c *config.RAGConfig) rag.ChunkerConfig {
	return rag.ChunkerConfig{
		Unit:    c.ChunkUnit,
		Size:    c.ChunkSize,
		Overlap: c.ChunkOverlap,
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
