package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// ErrFileExists indicates the artifact path is taken and overwriting is off
var ErrFileExists = errors.New("output file already exists")

// Writer handles writing export artifacts to the filesystem
type Writer struct {
	baseDir   string
	overwrite bool
	metadata  bool
	dryRun    bool
	logger    *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir   string
	Overwrite bool
	// Metadata writes a JSON record next to every artifact
	Metadata bool
	DryRun   bool
	Logger   *utils.Logger
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}

	w := &Writer{
		baseDir:   utils.ExpandPath(opts.BaseDir),
		overwrite: opts.Overwrite,
		metadata:  opts.Metadata,
		dryRun:    opts.DryRun,
	}
	if opts.Logger != nil {
		w.logger = opts.Logger.WithComponent("output")
	}
	return w
}

// Write saves an artifact under the base directory and returns its path.
// The optional record is written as <artifact>.json when metadata is on.
func (w *Writer) Write(ctx context.Context, artifact *domain.ExportArtifact, record *Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !utils.IsValidFilename(artifact.Filename) {
		return "", domain.NewValidationError("filename", fmt.Sprintf("%q is not a valid file name", artifact.Filename))
	}

	path := w.GetPath(artifact.Filename)

	if !w.overwrite && w.Exists(artifact.Filename) {
		return path, fmt.Errorf("%w: %s", ErrFileExists, path)
	}

	if w.dryRun {
		if w.logger != nil {
			w.logger.Info().Str("path", path).Int("bytes", len(artifact.Data)).Msg("Dry run, not writing")
		}
		return path, nil
	}

	if err := utils.EnsureDir(path); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
		return "", err
	}

	if w.metadata && record != nil {
		if err := w.writeJSON(JSONPath(path), record); err != nil {
			return path, err
		}
	}

	if w.logger != nil {
		w.logger.Debug().Str("path", path).Int("bytes", len(artifact.Data)).Msg("Wrote artifact")
	}

	return path, nil
}

// writeJSON writes JSON metadata
func (w *Writer) writeJSON(path string, record *Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// WriteTo streams the artifact bytes to out
func (w *Writer) WriteTo(out io.Writer, artifact *domain.ExportArtifact) error {
	if w.dryRun {
		return nil
	}
	_, err := out.Write(artifact.Data)
	return err
}

// GetPath returns the output path for a filename
func (w *Writer) GetPath(filename string) string {
	return filepath.Join(w.baseDir, filename)
}

// Exists checks if an artifact already exists
func (w *Writer) Exists(filename string) bool {
	_, err := os.Stat(w.GetPath(filename))
	return err == nil
}

// JSONPath returns the metadata record path for an artifact path
func JSONPath(artifactPath string) string {
	return artifactPath + ".json"
}
