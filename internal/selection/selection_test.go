package selection_test

import (
	"testing"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/manifest"
	"github.com/quantmind-br/repo2txt-go/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testListing() *domain.Listing {
	f := func(p string) domain.TreeEntry { return domain.TreeEntry{Path: p, Type: domain.EntryFile, SHA: p} }
	d := func(p string) domain.TreeEntry { return domain.TreeEntry{Path: p, Type: domain.EntryDir} }
	return &domain.Listing{Entries: []domain.TreeEntry{
		f("README.md"),
		d("src"),
		f("src/main.go"),
		f("src/main_test.go"),
		d("src/lib"),
		f("src/lib/util.go"),
		f("docs/logo.png"),
		d("empty"),
	}}
}

func TestModel_SelectFileAndDirectory(t *testing.T) {
	m := selection.NewModel(testListing())

	require.NoError(t, m.Select("src/lib", "/README.md"))

	assert.Equal(t, []string{"README.md", "src/lib/util.go"}, m.Paths())
	assert.True(t, m.IsSelected("src/lib/util.go"))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 5, m.Total())
}

func TestModel_SelectInferredDirectory(t *testing.T) {
	m := selection.NewModel(testListing())

	require.NoError(t, m.Select("docs"))
	assert.Equal(t, []string{"docs/logo.png"}, m.Paths())
}

func TestModel_SelectEmptyDirectory(t *testing.T) {
	m := selection.NewModel(testListing())

	require.NoError(t, m.Select("empty"))
	assert.Empty(t, m.Selected())
}

func TestModel_SelectUnknownPathChangesNothing(t *testing.T) {
	m := selection.NewModel(testListing())

	err := m.Select("README.md", "nope")

	assert.ErrorIs(t, err, selection.ErrUnknownPath)
	assert.Zero(t, m.Len())
}

func TestModel_SelectIsIdempotent(t *testing.T) {
	m := selection.NewModel(testListing())

	require.NoError(t, m.Select("src", "src/main.go"))
	assert.Equal(t, []string{"src/main.go", "src/main_test.go", "src/lib/util.go"}, m.Paths())
}

func TestModel_Deselect(t *testing.T) {
	m := selection.NewModel(testListing())
	m.SelectAll()

	require.NoError(t, m.Deselect("src"))
	assert.Equal(t, []string{"README.md", "docs/logo.png"}, m.Paths())

	m.Clear()
	assert.Zero(t, m.Len())
}

func TestModel_IncludeExclude(t *testing.T) {
	tests := []struct {
		name    string
		include string
		exclude string
		want    []string
	}{
		{"double star crosses directories", "**/*.go", "", []string{"src/main.go", "src/main_test.go", "src/lib/util.go"}},
		{"single star stays in a segment", "src/*.go", "", []string{"src/main.go", "src/main_test.go"}},
		{"base name pattern", "*.md", "", []string{"README.md"}},
		{"exclude after include", "**/*.go", "*_test.go", []string{"src/main.go", "src/lib/util.go"}},
		{"directory glob", "src/**", "src/lib/**", []string{"src/main.go", "src/main_test.go"}},
		{"alternatives", "{README.md,docs/*}", "", []string{"README.md", "docs/logo.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := selection.NewModel(testListing())
			_, err := m.Include(tt.include)
			require.NoError(t, err)
			if tt.exclude != "" {
				_, err = m.Exclude(tt.exclude)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, m.Paths())
		})
	}
}

func TestModel_IncludeCountsMatches(t *testing.T) {
	n, err := selection.NewModel(testListing()).Include("**/*.go")

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestModel_InvalidPattern(t *testing.T) {
	m := selection.NewModel(testListing())

	_, err := m.Include("[unclosed")
	assert.ErrorIs(t, err, selection.ErrInvalidPattern)

	_, err = m.Exclude("  ")
	assert.ErrorIs(t, err, selection.ErrInvalidPattern)
}

func TestModel_Apply(t *testing.T) {
	t.Run("paths then include then exclude", func(t *testing.T) {
		m := selection.NewModel(testListing())
		err := m.Apply(&manifest.Config{
			Paths:   []string{"README.md"},
			Include: []string{"src/**"},
			Exclude: []string{"**/*_test.go"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"README.md", "src/main.go", "src/lib/util.go"}, m.Paths())
	})

	t.Run("exclude only starts from everything", func(t *testing.T) {
		m := selection.NewModel(testListing())
		require.NoError(t, m.Apply(&manifest.Config{Exclude: []string{"**/*.png"}}))

		assert.Equal(t, 4, m.Len())
		assert.False(t, m.IsSelected("docs/logo.png"))
	})

	t.Run("unknown path fails", func(t *testing.T) {
		m := selection.NewModel(testListing())
		err := m.Apply(&manifest.Config{Paths: []string{"missing"}})
		assert.ErrorIs(t, err, selection.ErrUnknownPath)
	})
}

func TestNewModel_NilListing(t *testing.T) {
	m := selection.NewModel(nil)
	m.SelectAll()
	assert.Empty(t, m.Selected())
}
