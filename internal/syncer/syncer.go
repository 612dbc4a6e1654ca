// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/database"
	custom_errors "portfolio/internal/errors"
	"portfolio/internal/loader"
	"portfolio/internal/model"
)

// Syncer copies line changes from a source (usually git blame) into Postgres.
type Syncer struct {
	dbpool       *pgxpool.Pool
	source       loader.Source
	logger       *slog.Logger
	syncInterval time.Duration
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(dbpool *pgxpool.Pool, source loader.Source, logger *slog.Logger, interval time.Duration) *Syncer {
	return &Syncer{
		dbpool:       dbpool,
		source:       source,
		logger:       logger.With("source", source.Name()),
		syncInterval: interval,
	}
}

// Start runs one sync and then repeats on the interval until ctx is done. A zero
// interval syncs once and returns.
func (s *Syncer) Start(ctx context.Context) {
	s.logger.Info("Starting syncer", "interval", s.syncInterval.String())
	s.runSyncCycle(ctx) // Initial sync

	if s.syncInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runSyncCycle(ctx)
		case <-ctx.Done():
			s.logger.Info("Syncer shutting down", "reason", ctx.Err())
			return
		}
	}
}

// runSyncCycle performs one sync pass and logs its outcome.
func (s *Syncer) runSyncCycle(ctx context.Context) {
	s.logger.Info("Starting new sync cycle")
	n, err := s.SyncOnce(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Sync cycle failed", "error", err)
		return
	}
	s.logger.Info("Sync cycle finished", "rows", n)
}

// SyncOnce loads the source and replaces the stored rows with it.
func (s *Syncer) SyncOnce(ctx context.Context) (int64, error) {
	res, err := loader.LoadLogged(ctx, s.source, s.logger)
	if err != nil {
		return 0, err
	}
	return s.SyncInTransaction(ctx, res.Rows)
}

// SyncInTransaction replaces all stored rows with rows in one DB transaction.
func (s *Syncer) SyncInTransaction(ctx context.Context, rows []model.LineChange) (int64, error) {
	tx, err := s.dbpool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	qtx := database.New(tx)
	n, err := s.syncRows(ctx, qtx, rows)
	if err != nil {
		return 0, err
	}

	return n, tx.Commit(ctx)
}

// syncRows deletes the stored rows and copies in the new ones. An empty input
// leaves the table untouched.
func (s *Syncer) syncRows(ctx context.Context, q database.Querier, rows []model.LineChange) (int64, error) {
	if len(rows) == 0 {
		return 0, custom_errors.ErrNoData
	}

	last, err := q.GetLatestSyncTime(ctx)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	if last.Valid {
		s.logger.Info("Replacing previous sync", "synced_at", last.Time.Format(time.RFC3339))
	} else {
		s.logger.Info("No previous sync found")
	}

	deleted, err := q.DeleteLineChanges(ctx)
	if err != nil {
		return 0, err
	}

	n, err := q.CreateLineChanges(ctx, loader.ToDatabase(rows))
	if err != nil {
		return 0, err
	}
	s.logger.Info("Successfully copied line changes into database", "deleted", deleted, "inserted", n)

	return n, nil
}
