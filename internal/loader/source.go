// internal/loader/source.go
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"portfolio/internal/database"
	"portfolio/internal/model"
)

// Source yields the raw LineChange table.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Result, error)
}

// CSVSource reads a loc CSV file from disk.
type CSVSource struct {
	Path string
}

// Name implements Source.
func (s *CSVSource) Name() string { return "csv:" + s.Path }

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) (*Result, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// PostgresSource reads rows previously synced into the line_changes table.
type PostgresSource struct {
	Q database.Querier
}

// Name implements Source.
func (s *PostgresSource) Name() string { return "postgres:line_changes" }

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) (*Result, error) {
	stored, err := s.Q.ListLineChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list line changes: %w", err)
	}
	res := &Result{
		Rows:    make([]model.LineChange, len(stored)),
		Preview: Preview{Rows: len(stored), Columns: Columns},
	}
	for i, r := range stored {
		res.Rows[i] = FromDatabase(r)
	}
	return res, nil
}

// LoadLogged runs a source and logs the outcome once.
func LoadLogged(ctx context.Context, src Source, logger *slog.Logger) (*Result, error) {
	logger = logger.With("source", src.Name())
	start := time.Now()

	res, err := src.Load(ctx)
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		return nil, err
	}
	if res.Degraded > 0 {
		logger.Warn("Dataset contains malformed fields, degraded to null", "fields", res.Degraded)
	}
	logger.Info("Dataset loaded", "rows", res.Preview.Rows, "duration", time.Since(start).String())
	return res, nil
}

// FromDatabase converts a stored row into the domain model.
func FromDatabase(r database.LineChange) model.LineChange {
	return model.LineChange{
		CommitID: r.CommitID,
		Author:   r.Author,
		File:     r.File,
		Type:     r.Type,
		Date:     fromTimestamptz(r.Date),
		Datetime: fromTimestamptz(r.Datetime),
		Line:     fromInt8(r.Line),
		Depth:    fromInt8(r.Depth),
		Length:   fromInt8(r.Length),
	}
}

// ToDatabase converts rows into COPY parameters.
func ToDatabase(rows []model.LineChange) []database.CreateLineChangesParams {
	params := make([]database.CreateLineChangesParams, len(rows))
	for i, r := range rows {
		params[i] = database.CreateLineChangesParams{
			CommitID: r.CommitID,
			Author:   r.Author,
			File:     r.File,
			Type:     r.Type,
			Date:     toTimestamptz(r.Date),
			Datetime: toTimestamptz(r.Datetime),
			Line:     toInt8(r.Line),
			Depth:    toInt8(r.Depth),
			Length:   toInt8(r.Length),
		}
	}
	return params
}

func fromTimestamptz(t pgtype.Timestamptz) sql.NullTime {
	return sql.NullTime{Time: t.Time, Valid: t.Valid}
}

func toTimestamptz(t sql.NullTime) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.Time, Valid: t.Valid}
}

func fromInt8(n pgtype.Int8) sql.NullInt64 {
	return sql.NullInt64{Int64: n.Int64, Valid: n.Valid}
}

func toInt8(n sql.NullInt64) pgtype.Int8 {
	return pgtype.Int8{Int64: n.Int64, Valid: n.Valid}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
