package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (REPO2TXT_OUTPUT_FORMAT, ...)
const EnvPrefix = "REPO2TXT"

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return load(viper.GetViper())
}

// LoadWithViper loads configuration into a fresh viper instance and
// returns it for callers that bind their own flags
func LoadWithViper() (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := load(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Output defaults
	v.SetDefault("output.directory", DefaultOutputDir)
	v.SetDefault("output.format", DefaultFormat)
	v.SetDefault("output.keep_errors", false)
	v.SetDefault("output.overwrite", false)
	v.SetDefault("output.metadata", false)

	// Concurrency defaults
	v.SetDefault("concurrency.workers", DefaultWorkers)
	v.SetDefault("concurrency.timeout", DefaultTimeout)

	// GitHub defaults
	v.SetDefault("github.api_url", DefaultAPIURL)
	v.SetDefault("github.git_url", DefaultGitURL)
	v.SetDefault("github.ref_page_size", DefaultRefPageSize)
	v.SetDefault("github.ref_source", DefaultRefSource)
	v.SetDefault("github.max_clients", DefaultMaxClients)

	// Retry defaults
	v.SetDefault("retry.max_retries", DefaultMaxRetries)
	v.SetDefault("retry.initial_interval", DefaultRetryInitialInterval)
	v.SetDefault("retry.max_interval", DefaultRetryMaxInterval)

	// Archive defaults
	v.SetDefault("archive.method", DefaultArchiveMethod)
	v.SetDefault("archive.level", DefaultArchiveLevel)

	// Server defaults
	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("server.session_ttl", DefaultSessionTTL)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)

	// State defaults
	v.SetDefault("state.directory", StateDir())

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}
