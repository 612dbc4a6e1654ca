// cmd/loc/commands.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"portfolio/internal/commits"
	"portfolio/internal/loader"
	"portfolio/internal/syncer"
)

const (
	defaultCSV        = "loc.csv"
	defaultMigrations = "file://migrations"
	defaultTop        = 5
)

// ErrNoDBURL is returned when import runs without a database URL.
var ErrNoDBURL = errors.New("database URL is required (use --db-url or DB_URL)")

func newExportCommand() *cobra.Command {
	var (
		out         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "export [repo-path]",
		Short: "Blame a repository and write the dataset as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := "."
			if len(args) == 1 {
				repo = args[0]
			}
			src := loader.NewGitSource(repo, concurrency, newLogger())
			res, err := loader.LoadLogged(cmd.Context(), src, newLogger())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()
			if err := loader.WriteCSV(f, res.Rows); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Wrote %d rows to %s", len(res.Rows), out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", defaultCSV, "CSV file to write")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 5, "files blamed in parallel")

	return cmd
}

func newImportCommand() *cobra.Command {
	var (
		csvPath    string
		dbURL      string
		migrations string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a CSV dataset into Postgres, replacing the stored rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbURL == "" {
				dbURL = os.Getenv("DB_URL")
			}
			if dbURL == "" {
				return ErrNoDBURL
			}

			m, err := migrate.New(migrations, dbURL)
			if err != nil {
				return fmt.Errorf("failed to open migrations: %w", err)
			}
			defer m.Close()
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			dbpool, err := pgxpool.New(cmd.Context(), dbURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbpool.Close()

			s := syncer.NewSyncer(dbpool, &loader.CSVSource{Path: csvPath}, newLogger(), 0)
			n, err := s.SyncOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Imported %d rows", n))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", defaultCSV, "CSV dataset to import")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres connection URL")
	cmd.Flags().StringVar(&migrations, "migrations", defaultMigrations, "migrations source URL")

	return cmd
}

func newSummaryCommand() *cobra.Command {
	var (
		csvPath string
		top     int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print dataset statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := loader.LoadLogged(cmd.Context(), &loader.CSVSource{Path: csvPath}, newLogger())
			if err != nil {
				return err
			}
			set, err := commits.Aggregate(res.Rows, commits.Options{Logger: newLogger()})
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), set, res.Preview, top)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", defaultCSV, "CSV dataset to read")
	cmd.Flags().IntVarP(&top, "top", "n", defaultTop, "number of largest files to list")

	return cmd
}

// writeSummary prints the preview, the stats table and the largest files.
func writeSummary(w io.Writer, set *commits.Set, preview loader.Preview, top int) {
	fmt.Fprintln(w, color.CyanString("Dataset"))
	fmt.Fprintln(w, preview.String())

	stats := table.NewWriter()
	stats.SetStyle(table.StyleLight)
	stats.AppendHeader(table.Row{"Stat", "Value"})
	for _, s := range commits.ComputeStats(set).Formatted() {
		stats.AppendRow(table.Row{s.Label, s.Value})
	}
	fmt.Fprintln(w, stats.Render())
	if set.Len() == 0 {
		fmt.Fprintln(w, color.YellowString("No commits in dataset"))
		return
	}

	files := table.NewWriter()
	files.SetStyle(table.StyleLight)
	files.AppendHeader(table.Row{"#", "File"})
	names := commits.TopFiles(set, top)
	for i, f := range names {
		files.AppendRow(table.Row{i + 1, f})
	}
	files.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d files", len(names))})
	fmt.Fprintln(w, files.Render())
}
