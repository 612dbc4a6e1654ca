// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "portfolio/internal/errors"
)

func validConfig() Config {
	return Config{
		LogLevel:         "info",
		HTTPAddr:         ":8080",
		DataSource:       SourceCSV,
		LocCSVPath:       "loc.csv",
		RepoPath:         ".",
		CommitRepo:       "owner/site",
		BlameConcurrency: 5,
		CommitPolicy:     PolicyLenient,
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", "csv")
	t.Setenv("COMMIT_REPO", "someone/portfolio")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "loc.csv", cfg.LocCSVPath)
	assert.Equal(t, 5, cfg.BlameConcurrency)
	assert.Equal(t, PolicyLenient, cfg.CommitPolicy)
	assert.Equal(t, "https://github.com/someone/portfolio/commit/", cfg.CommitURLPrefix())
	assert.Nil(t, cfg.DisplayLocation)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("accepts the csv defaults", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("requires DB_URL for postgres", func(t *testing.T) {
		cfg := validConfig()
		cfg.DataSource = "Postgres"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_URL")
	})

	t.Run("rejects unknown sources", func(t *testing.T) {
		cfg := validConfig()
		cfg.DataSource = "ftp"
		var srcErr *custom_errors.ErrUnknownSource
		assert.ErrorAs(t, cfg.Validate(), &srcErr)
	})

	t.Run("rejects malformed commit repo", func(t *testing.T) {
		cfg := validConfig()
		cfg.CommitRepo = "just-a-name"
		var repoErr *custom_errors.ErrInvalidRepoFormat
		assert.ErrorAs(t, cfg.Validate(), &repoErr)
	})

	t.Run("rejects unknown commit policy", func(t *testing.T) {
		cfg := validConfig()
		cfg.CommitPolicy = "whatever"
		assert.Error(t, cfg.Validate())
	})

	t.Run("resolves display timezone", func(t *testing.T) {
		cfg := validConfig()
		cfg.DisplayTimezone = "UTC"
		require.NoError(t, cfg.Validate())
		require.NotNil(t, cfg.DisplayLocation)
		assert.Equal(t, "UTC", cfg.DisplayLocation.String())
	})
}

func TestSplitRepo(t *testing.T) {
	owner, name, err := SplitRepo("MaayahGa/portfolio")
	require.NoError(t, err)
	assert.Equal(t, "MaayahGa", owner)
	assert.Equal(t, "portfolio", name)

	for _, bad := range []string{"", "a/", "/b", "a/b/c"} {
		_, _, err := SplitRepo(bad)
		assert.Error(t, err, bad)
	}
}
