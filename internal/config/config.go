package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
)

// Reference sources
const (
	RefSourceAPI    = "api"
	RefSourceRemote = "remote"
)

// Config represents the application configuration
type Config struct {
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	GitHub      GitHubConfig      `mapstructure:"github" yaml:"github"`
	Retry       RetryConfig       `mapstructure:"retry" yaml:"retry"`
	Archive     ArchiveConfig     `mapstructure:"archive" yaml:"archive"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	State       StateConfig       `mapstructure:"state" yaml:"state"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory  string `mapstructure:"directory" yaml:"directory"`
	Format     string `mapstructure:"format" yaml:"format"`
	KeepErrors bool   `mapstructure:"keep_errors" yaml:"keep_errors"`
	Overwrite  bool   `mapstructure:"overwrite" yaml:"overwrite"`
	Metadata   bool   `mapstructure:"metadata" yaml:"metadata"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int           `mapstructure:"workers" yaml:"workers"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// GitHubConfig contains hosting API settings
type GitHubConfig struct {
	APIURL      string `mapstructure:"api_url" yaml:"api_url"`
	GitURL      string `mapstructure:"git_url" yaml:"git_url"`
	RefPageSize int    `mapstructure:"ref_page_size" yaml:"ref_page_size"`
	RefSource   string `mapstructure:"ref_source" yaml:"ref_source"`
	MaxClients  int    `mapstructure:"max_clients" yaml:"max_clients"`
}

// RetryConfig contains retry settings for transient hosting failures
type RetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries" yaml:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval" yaml:"max_interval"`
}

// ArchiveConfig contains zip export settings
type ArchiveConfig struct {
	Method string `mapstructure:"method" yaml:"method"`
	Level  int    `mapstructure:"level" yaml:"level"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Address     string        `mapstructure:"address" yaml:"address"`
	SessionTTL  time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
}

// StateConfig contains persisted state settings
type StateConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Concurrency.Timeout < time.Second {
		c.Concurrency.Timeout = DefaultTimeout
	}
	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = DefaultAPIURL
	}
	if c.GitHub.GitURL == "" {
		c.GitHub.GitURL = DefaultGitURL
	}
	if c.GitHub.RefPageSize < 1 || c.GitHub.RefPageSize > DefaultRefPageSize {
		c.GitHub.RefPageSize = DefaultRefPageSize
	}
	if c.GitHub.MaxClients < 1 {
		c.GitHub.MaxClients = DefaultMaxClients
	}
	if c.Retry.InitialInterval <= 0 {
		c.Retry.InitialInterval = DefaultRetryInitialInterval
	}
	if c.Retry.MaxInterval < c.Retry.InitialInterval {
		c.Retry.MaxInterval = DefaultRetryMaxInterval
	}
	if c.Archive.Method == "" {
		c.Archive.Method = DefaultArchiveMethod
	}
	if c.Archive.Level < -2 || c.Archive.Level > 9 {
		c.Archive.Level = DefaultArchiveLevel
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultServerAddress
	}
	if c.Server.SessionTTL < time.Minute {
		c.Server.SessionTTL = DefaultSessionTTL
	}
	if c.Server.ReadTimeout < time.Second {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.State.Directory == "" {
		c.State.Directory = StateDir()
	}

	switch strings.ToLower(c.GitHub.RefSource) {
	case "":
		c.GitHub.RefSource = DefaultRefSource
	case RefSourceAPI, RefSourceRemote:
		c.GitHub.RefSource = strings.ToLower(c.GitHub.RefSource)
	default:
		return fmt.Errorf("invalid github.ref_source %q: must be %s or %s", c.GitHub.RefSource, RefSourceAPI, RefSourceRemote)
	}

	format, err := domain.ParseExportFormat(c.Output.Format)
	if err != nil {
		return fmt.Errorf("invalid output.format: %w", err)
	}
	c.Output.Format = string(format)

	return nil
}

// ExportFormat returns the configured export format
func (c *Config) ExportFormat() domain.ExportFormat {
	format, err := domain.ParseExportFormat(c.Output.Format)
	if err != nil {
		return domain.FormatText
	}
	return format
}
