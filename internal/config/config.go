// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	custom_errors "portfolio/internal/errors"
)

// Data sources understood by the loader.
const (
	SourceCSV      = "csv"
	SourceGit      = "git"
	SourcePostgres = "postgres"
)

// Commit policies for rows of one commit that disagree on author or timestamp.
const (
	PolicyLenient = "lenient"
	PolicyStrict  = "strict"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel         string         `mapstructure:"LOG_LEVEL"`
	HTTPAddr         string         `mapstructure:"HTTP_ADDR"`
	DataSource       string         `mapstructure:"DATA_SOURCE"`
	LocCSVPath       string         `mapstructure:"LOC_CSV_PATH"`
	RepoPath         string         `mapstructure:"REPO_PATH"`
	DBURL            string         `mapstructure:"DB_URL"`
	MigrationsPath   string         `mapstructure:"MIGRATIONS_PATH"`
	GithubToken      string         `mapstructure:"GITHUB_TOKEN"`
	GithubUser       string         `mapstructure:"GITHUB_USER"`
	CommitRepo       string         `mapstructure:"COMMIT_REPO"`
	ProjectsPath     string         `mapstructure:"PROJECTS_PATH"`
	BlameConcurrency int            `mapstructure:"BLAME_CONCURRENCY"`
	SyncInterval     time.Duration  `mapstructure:"SYNC_INTERVAL"`
	CommitPolicy     string         `mapstructure:"COMMIT_POLICY"`
	DisplayTimezone  string         `mapstructure:"DISPLAY_TIMEZONE"`
	DisplayLocation  *time.Location `mapstructure:"-"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATA_SOURCE", SourceCSV)
	v.SetDefault("LOC_CSV_PATH", "loc.csv")
	v.SetDefault("REPO_PATH", ".")
	v.SetDefault("DB_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_USER", "MaayahGa")
	v.SetDefault("COMMIT_REPO", "MaayahGa/portfolio")
	v.SetDefault("PROJECTS_PATH", "lib/projects.json")
	v.SetDefault("BLAME_CONCURRENCY", 5)
	v.SetDefault("SYNC_INTERVAL", "0s")
	v.SetDefault("COMMIT_POLICY", PolicyLenient)
	v.SetDefault("DISPLAY_TIMEZONE", "")

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field combinations and resolves derived values.
func (c *Config) Validate() error {
	c.DataSource = strings.ToLower(strings.TrimSpace(c.DataSource))
	switch c.DataSource {
	case SourceCSV:
		if c.LocCSVPath == "" {
			return errors.New("LOC_CSV_PATH is required when DATA_SOURCE=csv")
		}
	case SourceGit:
		if c.RepoPath == "" {
			return errors.New("REPO_PATH is required when DATA_SOURCE=git")
		}
	case SourcePostgres:
		if c.DBURL == "" {
			return errors.New("DB_URL is a required configuration field when DATA_SOURCE=postgres")
		}
	default:
		return &custom_errors.ErrUnknownSource{Source: c.DataSource}
	}

	if _, _, err := SplitRepo(c.CommitRepo); err != nil {
		return err
	}

	switch c.CommitPolicy {
	case PolicyLenient, PolicyStrict:
	default:
		return fmt.Errorf("COMMIT_POLICY must be %q or %q, got %q", PolicyLenient, PolicyStrict, c.CommitPolicy)
	}

	if c.BlameConcurrency <= 0 {
		return errors.New("BLAME_CONCURRENCY must be a positive integer")
	}
	if c.SyncInterval < 0 {
		return errors.New("SYNC_INTERVAL must not be negative")
	}

	if c.DisplayTimezone != "" {
		loc, err := time.LoadLocation(c.DisplayTimezone)
		if err != nil {
			return fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
		}
		c.DisplayLocation = loc
	}
	return nil
}

// CommitURLPrefix returns the link prefix for commits of COMMIT_REPO.
func (c *Config) CommitURLPrefix() string {
	return "https://github.com/" + c.CommitRepo + "/commit/"
}

// SplitRepo parses an 'owner/name' string.
func SplitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &custom_errors.ErrInvalidRepoFormat{Repo: repo}
	}
	return parts[0], parts[1], nil
}
