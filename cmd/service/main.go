// cmd/service/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"portfolio/internal/api"
	"portfolio/internal/commits"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/github"
	"portfolio/internal/loader"
	"portfolio/internal/model"
	"portfolio/internal/progress"
	"portfolio/internal/projects"
	"portfolio/internal/render"
	"portfolio/internal/scrolly"
	"portfolio/internal/syncer"
	"portfolio/internal/view"
)

const (
	profileTTL      = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully", "source", cfg.DataSource, "addr", cfg.HTTPAddr)

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Pick the dataset source
	src, cleanup, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// 5. Load dataset, projects and profile concurrently
	var (
		set     *commits.Set
		preview loader.Preview
		catalog *projects.Catalog
		profile *github.ProfileCache
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		set, preview, err = loadCommits(gctx, cfg, src, logger)
		return err
	})
	g.Go(func() error {
		catalog = loadProjects(cfg.ProjectsPath, logger)
		return nil
	})
	if cfg.GithubUser != "" {
		profile = github.NewProfileCache(github.NewClient(cfg.GithubToken, logger), cfg.GithubUser, profileTTL)
		g.Go(func() error {
			if _, err := profile.Profile(gctx); err != nil {
				logger.Warn("Profile warm-up failed", "login", cfg.GithubUser, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// 6. Wire the page
	deriver := view.NewDeriver(progress.NewTimeline(set), view.DefaultDimensions())
	page := render.NewMetaPage("Meta", deriver.Palette())
	sync := scrolly.New(deriver, logger, page)

	deps := api.Deps{
		Sync:     sync,
		Driver:   scrolly.NewDriver(sync, scrolly.UniformBoxes(set.Len(), scrolly.DefaultStepHeight)),
		Page:     page,
		Stats:    commits.ComputeStats(set),
		Preview:  preview,
		Projects: catalog,
	}
	if profile != nil {
		deps.Profile = profile
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 7. Serve until shutdown signal
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr, "commits", set.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received. Exiting.")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openSource builds the configured loader.Source. For postgres it also applies
// migrations and, with a positive SYNC_INTERVAL, keeps the table in sync with
// the git repository in the background.
func openSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (loader.Source, func(), error) {
	noop := func() {}

	switch cfg.DataSource {
	case config.SourceCSV:
		return &loader.CSVSource{Path: cfg.LocCSVPath}, noop, nil
	case config.SourceGit:
		return loader.NewGitSource(cfg.RepoPath, cfg.BlameConcurrency, logger), noop, nil
	}

	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection established")

	if err := runMigrations(cfg.MigrationsPath, cfg.DBURL); err != nil {
		dbpool.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	if cfg.RepoPath != "" && cfg.SyncInterval > 0 {
		appSyncer := syncer.NewSyncer(dbpool, loader.NewGitSource(cfg.RepoPath, cfg.BlameConcurrency, logger), logger, cfg.SyncInterval)
		go appSyncer.Start(ctx)
	}

	return &loader.PostgresSource{Q: database.New(dbpool)}, dbpool.Close, nil
}

// loadCommits loads and aggregates the dataset. A source that cannot be read
// yields an empty set; a strict consistency violation is fatal.
func loadCommits(ctx context.Context, cfg *config.Config, src loader.Source, logger *slog.Logger) (*commits.Set, loader.Preview, error) {
	opts := commits.Options{
		URLPrefix: cfg.CommitURLPrefix(),
		Strict:    cfg.CommitPolicy == config.PolicyStrict,
		Location:  cfg.DisplayLocation,
		Logger:    logger,
	}

	var rows []model.LineChange
	preview := loader.Preview{Columns: []string{}}
	res, err := loader.LoadLogged(ctx, src, logger)
	if err != nil {
		logger.Warn("Continuing with an empty dataset")
	} else {
		rows, preview = res.Rows, res.Preview
	}

	set, err := commits.Aggregate(rows, opts)
	if err != nil {
		return nil, preview, fmt.Errorf("failed to aggregate commits: %w", err)
	}
	return set, preview, nil
}

func loadProjects(path string, logger *slog.Logger) *projects.Catalog {
	catalog, err := projects.Load(path)
	if err != nil {
		logger.Warn("Failed to load projects, continuing with none", "path", path, "error", err)
		return projects.New(nil)
	}
	logger.Info("Projects loaded", "count", catalog.Len())
	return catalog
}

func runMigrations(sourceURL, dbURL string) error {
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
