package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Output defaults
	DefaultOutputDir = "."
	DefaultFormat    = "text"

	// Concurrency defaults
	DefaultWorkers = 5
	DefaultTimeout = 30 * time.Second

	// GitHub defaults
	DefaultAPIURL      = "https://api.github.com/"
	DefaultGitURL      = "https://github.com"
	DefaultRefPageSize = 100
	DefaultRefSource   = RefSourceAPI
	DefaultMaxClients  = 32

	// Retry defaults
	DefaultMaxRetries           = 3
	DefaultRetryInitialInterval = 1 * time.Second
	DefaultRetryMaxInterval     = 30 * time.Second

	// Archive defaults
	DefaultArchiveMethod = "deflate"
	DefaultArchiveLevel  = 6

	// Server defaults
	DefaultServerAddress = "127.0.0.1:8080"
	DefaultSessionTTL    = time.Hour
	DefaultReadTimeout   = 15 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".repo2txt"
	}
	return filepath.Join(home, ".repo2txt")
}

// StateDir returns the state directory path
func StateDir() string {
	return filepath.Join(ConfigDir(), "state")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Format:    DefaultFormat,
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
			Timeout: DefaultTimeout,
		},
		GitHub: GitHubConfig{
			APIURL:      DefaultAPIURL,
			GitURL:      DefaultGitURL,
			RefPageSize: DefaultRefPageSize,
			RefSource:   DefaultRefSource,
			MaxClients:  DefaultMaxClients,
		},
		Retry: RetryConfig{
			MaxRetries:      DefaultMaxRetries,
			InitialInterval: DefaultRetryInitialInterval,
			MaxInterval:     DefaultRetryMaxInterval,
		},
		Archive: ArchiveConfig{
			Method: DefaultArchiveMethod,
			Level:  DefaultArchiveLevel,
		},
		Server: ServerConfig{
			Address:     DefaultServerAddress,
			SessionTTL:  DefaultSessionTTL,
			ReadTimeout: DefaultReadTimeout,
		},
		State: StateConfig{
			Directory: StateDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
