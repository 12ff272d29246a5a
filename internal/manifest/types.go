package manifest

import (
	"fmt"
	"strings"
)

// Config is a saved selection
type Config struct {
	// URL optionally names the repository the selection was made against
	URL     string   `yaml:"url,omitempty" json:"url,omitempty"`
	Paths   []string `yaml:"paths,omitempty" json:"paths,omitempty"`
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Options Options  `yaml:"options" json:"options"`
}

// Options override export settings for this selection
type Options struct {
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`
	KeepErrors *bool  `yaml:"keep_errors,omitempty" json:"keep_errors,omitempty"`
	Output     string `yaml:"output,omitempty" json:"output,omitempty"`
}

// Validate validates the manifest configuration
func (c *Config) Validate() error {
	if len(c.Paths) == 0 && len(c.Include) == 0 && len(c.Exclude) == 0 {
		return ErrEmptyManifest
	}
	for i, p := range c.Paths {
		if strings.Trim(strings.TrimSpace(p), "/") == "" {
			return fmt.Errorf("path %d: %w", i, ErrEmptyPath)
		}
	}
	return nil
}

// SelectsEverything reports whether the selection starts from every file
func (c *Config) SelectsEverything() bool {
	return len(c.Paths) == 0 && len(c.Include) == 0
}
