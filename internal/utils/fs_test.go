package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"widgets_main_20240309_070503.zip":   true,
		"widgets_release-v2_20240309.txt":    true,
		"my widgets_20240309_070503.txt":     true,
		"COM10.txt":                          true,
		"widgets_feature/x.txt":              false,
		`widgets_feature\x.txt`:              false,
		"output?.txt":                        false,
		"":                                   false,
		".":                                  false,
		"..":                                 false,
		"CON":                                false,
		"nul.txt":                            false,
		"LPT3.zip":                           false,
		"widgets\x00.txt":                    false,
		"partial_repo_20240309_070503\t.zip": false,
	}

	for name, want := range tests {
		assert.Equal(t, want, IsValidFilename(name), "%q", name)
	}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	artifact := filepath.Join(dir, "exports", "nested", "widgets.zip")

	require.NoError(t, EnsureDir(artifact))
	info, err := os.Stat(filepath.Dir(artifact))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directories are fine
	require.NoError(t, EnsureDir(artifact))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{"~/.repo2txt/state", filepath.Join(home, ".repo2txt", "state")},
		{"~", filepath.Clean(home)},
		{"/tmp/exports", "/tmp/exports"},
		{"./exports", "./exports"},
		{"~other/exports", "~other/exports"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"main":       "main",
		"feature/x":  "feature-x",
		`feature\x`:  "feature-x",
		"a|b":        "a-b",
		`fix"quotes`: "fix-quotes",
		"feat<1>":    "feat-1-",
		"rel:*?":     "rel---",
		"tab\there":  "tab-here",
		"v1.2.0":     "v1.2.0",
	}

	for in, want := range tests {
		got := SanitizeFilename(in)
		assert.Equal(t, want, got, "%q", in)
		assert.True(t, IsValidFilename(got), "%q", got)
	}
}
