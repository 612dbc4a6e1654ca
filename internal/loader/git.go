// internal/loader/git.go
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"

	"portfolio/internal/model"
)

// DefaultExcludes are path prefixes never blamed.
var DefaultExcludes = []string{"node_modules/", "vendor/", ".git/", "_examples/"}

// GitSource produces one LineChange per line surviving at HEAD, attributed with git blame.
type GitSource struct {
	RepoPath    string
	Concurrency int
	Exclude     []string
	Logger      *slog.Logger
}

// NewGitSource creates a GitSource with the default exclusions.
func NewGitSource(repoPath string, concurrency int, logger *slog.Logger) *GitSource {
	return &GitSource{
		RepoPath:    repoPath,
		Concurrency: concurrency,
		Exclude:     DefaultExcludes,
		Logger:      logger,
	}
}

// Name implements Source.
func (s *GitSource) Name() string { return "git:" + s.RepoPath }

// Load implements Source.
func (s *GitSource) Load(ctx context.Context) (*Result, error) {
	repo, err := git.PlainOpen(s.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD reference: %w", err)
	}
	head, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD commit: %w", err)
	}

	paths, err := s.textFiles(head)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Blaming repository", "repo", s.RepoPath, "head", ref.Hash().String(), "files", len(paths))

	var (
		mu     sync.Mutex
		byFile = make(map[string][]model.LineChange, len(paths))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			rows, err := s.blameFile(ref.Hash(), p)
			if err != nil {
				return fmt.Errorf("blame %s: %w", p, err)
			}
			mu.Lock()
			byFile[p] = rows
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Preview: Preview{Columns: Columns}}
	for _, p := range paths {
		res.Rows = append(res.Rows, byFile[p]...)
	}
	res.Preview.Rows = len(res.Rows)
	return res, nil
}

func (s *GitSource) textFiles(head *object.Commit) ([]string, error) {
	files, err := head.Files()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var paths []string
	err = files.ForEach(func(f *object.File) error {
		if s.excluded(f.Name) {
			return nil
		}
		binary, err := f.IsBinary()
		if err != nil {
			return err
		}
		if !binary {
			paths = append(paths, f.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *GitSource) excluded(name string) bool {
	for _, prefix := range s.Exclude {
		if strings.HasPrefix(name, prefix) || strings.Contains(name, "/"+prefix) {
			return true
		}
	}
	return false
}

// blameFile opens its own repository handle; go-git storage is not safe for concurrent readers.
func (s *GitSource) blameFile(head plumbing.Hash, file string) ([]model.LineChange, error) {
	repo, err := git.PlainOpen(s.RepoPath)
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(head)
	if err != nil {
		return nil, err
	}
	blame, err := git.Blame(commit, file)
	if err != nil {
		return nil, err
	}

	typ := fileType(file)
	rows := make([]model.LineChange, 0, len(blame.Lines))
	for i, l := range blame.Lines {
		rows = append(rows, model.LineChange{
			CommitID: l.Hash.String(),
			Author:   l.AuthorName,
			File:     file,
			Type:     typ,
			Date:     sql.NullTime{Time: truncateDay(l.Date), Valid: true},
			Datetime: sql.NullTime{Time: l.Date, Valid: true},
			Line:     sql.NullInt64{Int64: int64(i + 1), Valid: true},
			Depth:    sql.NullInt64{Int64: int64(indentDepth(l.Text)), Valid: true},
			Length:   sql.NullInt64{Int64: int64(utf8.RuneCountInString(l.Text)), Valid: true},
		})
	}
	return rows, nil
}

func fileType(file string) string {
	ext := strings.TrimPrefix(path.Ext(file), ".")
	if ext == "" {
		return strings.ToLower(path.Base(file))
	}
	return strings.ToLower(ext)
}

// indentDepth counts one level per tab and per two spaces of leading whitespace.
func indentDepth(text string) int {
	tabs, spaces := 0, 0
	for _, r := range text {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/2
		}
	}
	return tabs + spaces/2
}
