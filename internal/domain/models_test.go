package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryLocator_FullName(t *testing.T) {
	loc := RepositoryLocator{Host: "github.com", Owner: "acme", Repo: "widgets"}
	assert.Equal(t, "acme/widgets", loc.FullName())
}

func TestReferenceSet_All(t *testing.T) {
	refs := ReferenceSet{Branches: []string{"main", "release/1.0"}, Tags: []string{"v1"}}
	assert.Equal(t, []string{"main", "release/1.0", "v1"}, refs.All())
	assert.Empty(t, ReferenceSet{}.All())
}

func TestTreeEntry(t *testing.T) {
	file := TreeEntry{Path: "src/app.ts", Type: EntryFile}
	dir := TreeEntry{Path: "src", Type: EntryDir}

	assert.True(t, file.IsFile())
	assert.False(t, dir.IsFile())
	assert.Equal(t, "app.ts", file.Name())
}

func TestDropErrors(t *testing.T) {
	contents := []FetchedContent{
		{Path: "a", Text: "A"},
		{Path: "b", Text: "// Error", Err: true},
		{Path: "c", Text: "C"},
	}

	kept := DropErrors(contents)
	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Path)
	assert.Equal(t, "c", kept[1].Path)
	assert.Len(t, contents, 3)
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"TXT", FormatText, false},
		{"zip", FormatArchive, false},
		{" archive ", FormatArchive, false},
		{"tar", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportFormat_Extension(t *testing.T) {
	assert.Equal(t, "txt", FormatText.Extension())
	assert.Equal(t, "zip", FormatArchive.Extension())
}

func TestListing_Files(t *testing.T) {
	listing := &Listing{Entries: []TreeEntry{
		{Path: "src", Type: EntryDir},
		{Path: "src/a.go", Type: EntryFile},
		{Path: "README.md", Type: EntryFile},
	}}

	files := listing.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "src/a.go", files[0].Path)
}

func TestContentObject_IsDir(t *testing.T) {
	assert.True(t, ContentObject{Type: "dir"}.IsDir())
	assert.True(t, ContentObject{}.IsDir())
	assert.False(t, ContentObject{Type: "file"}.IsDir())
}
