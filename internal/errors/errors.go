// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a source yields no rows at all.
var ErrNoData = errors.New("dataset contains no rows")

// ErrInvalidRepoFormat is returned when a repository string in the config is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}

// ErrInconsistentCommit is returned under the strict commit policy when rows sharing
// a commit id disagree on author or timestamp.
type ErrInconsistentCommit struct {
	CommitID string
	Field    string
	First    string
	Other    string
}

func (e *ErrInconsistentCommit) Error() string {
	return fmt.Sprintf("commit %s: rows disagree on %s (%q vs %q)", e.CommitID, e.Field, e.First, e.Other)
}

// ErrUnknownCommit is returned when a commit id or step index does not resolve.
type ErrUnknownCommit struct {
	Ref string
}

func (e *ErrUnknownCommit) Error() string {
	return fmt.Sprintf("unknown commit: %s", e.Ref)
}

// ErrUndatedCommit is returned when a step is bound to a commit without a timestamp.
type ErrUndatedCommit struct {
	CommitID string
}

func (e *ErrUndatedCommit) Error() string {
	return fmt.Sprintf("commit %s has no timestamp", e.CommitID)
}

// ErrCommitNotInView is returned when a gesture targets a commit that has no
// plotted point under the current cutoff.
type ErrCommitNotInView struct {
	CommitID string
}

func (e *ErrCommitNotInView) Error() string {
	return fmt.Sprintf("commit %s is not in view", e.CommitID)
}

// ErrUnknownSource is returned for an unsupported DATA_SOURCE value.
type ErrUnknownSource struct {
	Source string
}

func (e *ErrUnknownSource) Error() string {
	return fmt.Sprintf("unknown data source %q, expected csv, git or postgres", e.Source)
}
