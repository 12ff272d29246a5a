package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
)

// Archive compression methods
const (
	MethodDeflate = "deflate"
	MethodStore   = "store"
)

// DefaultLevel is the DEFLATE level used for archives
const DefaultLevel = 6

// ArchiveOptions contains options for building archives
type ArchiveOptions struct {
	Method string
	Level  int
}

// DefaultArchiveOptions returns default archive options
func DefaultArchiveOptions() ArchiveOptions {
	return ArchiveOptions{Method: MethodDeflate, Level: DefaultLevel}
}

func zipMethod(name string) (uint16, error) {
	switch strings.ToLower(name) {
	case "", MethodDeflate:
		return zip.Deflate, nil
	case MethodStore:
		return zip.Store, nil
	}
	return 0, fmt.Errorf("%w: unknown compression method %q", domain.ErrArchiveUnavailable, name)
}

// ErrorEntryName is the archive name of an error marker for p
func ErrorEntryName(p string) string {
	return "ERROR_" + strings.ReplaceAll(strings.TrimPrefix(p, "/"), "/", "_") + ".txt"
}

// BuildArchive writes contents into a zip archive. Files keep their
// repository-relative paths. Error-marked entries become ERROR_ marker
// files whose names never replace a real entry.
func BuildArchive(contents []domain.FetchedContent, modified time.Time, opts ArchiveOptions) ([]byte, error) {
	method, err := zipMethod(opts.Method)
	if err != nil {
		return nil, err
	}
	level := opts.Level
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = DefaultLevel
	}

	names, err := entryNames(contents)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for i, c := range contents {
		f, err := w.CreateHeader(&zip.FileHeader{
			Name:     names[i],
			Method:   method,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", names[i], err)
		}
		if _, err := io.WriteString(f, c.Text); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", names[i], err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return buf.Bytes(), nil
}

// entryNames assigns archive names. Real paths are placed first so a
// marker name colliding with one gets a numeric suffix instead.
func entryNames(contents []domain.FetchedContent) ([]string, error) {
	names := make([]string, len(contents))
	used := make(map[string]bool, len(contents))

	for i, c := range contents {
		if c.Err {
			continue
		}
		name := strings.TrimPrefix(c.Path, "/")
		if used[name] {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, name)
		}
		used[name] = true
		names[i] = name
	}

	for i, c := range contents {
		if !c.Err {
			continue
		}
		name := ErrorEntryName(c.Path)
		base := strings.TrimSuffix(name, ".txt")
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d.txt", base, n)
		}
		used[name] = true
		names[i] = name
	}

	return names, nil
}
