package tree_test

import (
	"testing"

	"github.com/quantmind-br/repo2txt-go/internal/tree"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	got := tree.Render([]string{
		"README.md",
		"src/lib/b.go",
		"src/a.go",
		"/docs/guide.md",
	})

	want := "Directory Structure:\n\n" +
		".\n" +
		"├── docs/\n" +
		"│   └── guide.md\n" +
		"├── src/\n" +
		"│   ├── lib/\n" +
		"│   │   └── b.go\n" +
		"│   └── a.go\n" +
		"└── README.md\n"

	assert.Equal(t, want, got)
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "Directory Structure:\n\n.\n", tree.Render(nil))
}

func TestRender_DuplicatePaths(t *testing.T) {
	got := tree.Render([]string{"a.txt", "a.txt"})
	assert.Equal(t, "Directory Structure:\n\n.\n└── a.txt\n", got)
}
