package export_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/export"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		repo   string
		ref    string
		format domain.ExportFormat
		want   string
	}{
		{"text with ref", "widgets", "main", domain.FormatText, "widgets_main_20240309_070503.txt"},
		{"slashed ref", "widgets", `feature/x\y`, domain.FormatArchive, "widgets_feature-x-y_20240309_070503.zip"},
		{"default ref omitted", "widgets", "", domain.FormatText, "widgets_20240309_070503.txt"},
		{"text default name", "", "", domain.FormatText, "output_20240309_070503.txt"},
		{"archive default name", "", "v1", domain.FormatArchive, "partial_repo_v1_20240309_070503.zip"},
		{"pipe in ref", "widgets", "a|b", domain.FormatText, "widgets_a-b_20240309_070503.txt"},
		{"quote in ref", "widgets", `fix"quotes`, domain.FormatText, "widgets_fix-quotes_20240309_070503.txt"},
		{"angle brackets in ref", "widgets", "feat<1>", domain.FormatArchive, "widgets_feat-1-_20240309_070503.zip"},
		{"colon and star in ref", "widgets", "rel:*?", domain.FormatText, "widgets_rel---_20240309_070503.txt"},
		{"control character in ref", "widgets", "a\tb", domain.FormatText, "widgets_a-b_20240309_070503.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.Filename(tt.repo, tt.ref, fixedTime, tt.format))
		})
	}
}

func TestFilename_AlwaysWritable(t *testing.T) {
	refs := []string{"a|b", `fix"quotes`, "feat<1>", "release/2024:q1", `win\path`, "what?*", "tab\there"}
	for _, ref := range refs {
		for _, format := range []domain.ExportFormat{domain.FormatText, domain.FormatArchive} {
			name := export.Filename("widgets", ref, fixedTime, format)
			assert.True(t, utils.IsValidFilename(name), "%q -> %q", ref, name)
		}
	}
}

func TestFilename_Deterministic(t *testing.T) {
	a := export.Filename("r", "feature/a", fixedTime, domain.FormatArchive)
	b := export.Filename("r", "feature/a", fixedTime, domain.FormatArchive)
	assert.Equal(t, a, b)
}

func TestFormatText(t *testing.T) {
	doc := export.FormatText([]domain.FetchedContent{
		{Path: "src/a.go", Text: "package a"},
		{Path: "README.md", Text: "# Widgets\n"},
	})

	want := "Directory Structure:\n\n" +
		".\n" +
		"├── src/\n" +
		"│   └── a.go\n" +
		"└── README.md\n" +
		"\n" +
		"---\nFile: /src/a.go\n---\n\npackage a\n\n" +
		"---\nFile: /README.md\n---\n\n# Widgets\n\n\n"

	assert.Equal(t, want, doc)
}

func TestParseText_RoundTrip(t *testing.T) {
	contents := []domain.FetchedContent{
		{Path: "src/a.go", Text: "package a\n\nfunc A() {}\n"},
		{Path: "empty.txt", Text: ""},
		{Path: "notes.md", Text: "line one\n---\nnot a header\n"},
		{Path: "gone.txt", Text: "// Error: File not found at path: gone.txt", Err: true},
	}

	sections := export.ParseText(export.FormatText(contents))

	require.Len(t, sections, len(contents))
	for i, c := range contents {
		assert.Equal(t, c.Path, sections[i].Path)
		assert.Equal(t, c.Text, sections[i].Text)
	}
}

func TestParseText_NoSections(t *testing.T) {
	assert.Empty(t, export.ParseText("just some text"))
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(body)
	}
	return files
}

func TestBuildArchive(t *testing.T) {
	data, err := export.BuildArchive([]domain.FetchedContent{
		{Path: "/src/a.go", Text: "package a"},
		{Path: "src/lib/b.go", Text: "package lib"},
		{Path: "src/missing.go", Text: "// Error: File not found at path: src/missing.go", Err: true},
	}, fixedTime, export.DefaultArchiveOptions())

	require.NoError(t, err)
	files := readZip(t, data)
	assert.Equal(t, map[string]string{
		"src/a.go":                 "package a",
		"src/lib/b.go":             "package lib",
		"ERROR_src_missing.go.txt": "// Error: File not found at path: src/missing.go",
	}, files)
}

func TestBuildArchive_UsesDeflate(t *testing.T) {
	text := bytes.Repeat([]byte("compressible "), 200)
	data, err := export.BuildArchive([]domain.FetchedContent{{Path: "a.txt", Text: string(text)}}, fixedTime, export.DefaultArchiveOptions())
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, r.File, 1)
	assert.Equal(t, zip.Deflate, r.File[0].Method)
	assert.Less(t, r.File[0].CompressedSize64, r.File[0].UncompressedSize64)
}

func TestBuildArchive_StoreMethod(t *testing.T) {
	data, err := export.BuildArchive([]domain.FetchedContent{{Path: "a.txt", Text: "x"}}, fixedTime,
		export.ArchiveOptions{Method: export.MethodStore})
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, zip.Store, r.File[0].Method)
}

func TestBuildArchive_MarkerNeverReplacesRealEntry(t *testing.T) {
	data, err := export.BuildArchive([]domain.FetchedContent{
		{Path: "ERROR_a_b.txt", Text: "real file"},
		{Path: "a/b", Text: "marker one", Err: true},
		{Path: "a_b", Text: "marker two", Err: true},
	}, fixedTime, export.DefaultArchiveOptions())

	require.NoError(t, err)
	files := readZip(t, data)
	assert.Equal(t, "real file", files["ERROR_a_b.txt"])
	assert.Equal(t, "marker one", files["ERROR_a_b_2.txt"])
	assert.Equal(t, "marker two", files["ERROR_a_b_3.txt"])
}

func TestBuildArchive_Errors(t *testing.T) {
	_, err := export.BuildArchive([]domain.FetchedContent{
		{Path: "a.txt", Text: "1"},
		{Path: "/a.txt", Text: "2"},
	}, fixedTime, export.DefaultArchiveOptions())
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = export.BuildArchive([]domain.FetchedContent{{Path: "a.txt"}}, fixedTime, export.ArchiveOptions{Method: "bzip2"})
	assert.ErrorIs(t, err, domain.ErrArchiveUnavailable)
}

func TestExporter_Export(t *testing.T) {
	e := export.NewExporter(export.ExporterOptions{Now: func() time.Time { return fixedTime }})
	contents := []domain.FetchedContent{{Path: "a.go", Text: "package a"}}

	text, err := e.Export("widgets", "main", contents, domain.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "widgets_main_20240309_070503.txt", text.Filename)
	assert.Equal(t, export.ContentTypeText, text.ContentType)
	assert.Contains(t, string(text.Data), "File: /a.go")
	assert.Equal(t, 1, text.Entries)
	assert.Equal(t, fixedTime, text.CreatedAt)

	archive, err := e.Export("widgets", "main", contents, domain.FormatArchive)
	require.NoError(t, err)
	assert.Equal(t, "widgets_main_20240309_070503.zip", archive.Filename)
	assert.Equal(t, export.ContentTypeArchive, archive.ContentType)
	assert.Equal(t, map[string]string{"a.go": "package a"}, readZip(t, archive.Data))

	_, err = e.Export("widgets", "main", contents, domain.ExportFormat("tar"))
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}
