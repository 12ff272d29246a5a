// Package export turns fetched file contents into a text document or a zip
// archive with a deterministic, timestamp-qualified name.
package export

import (
	"fmt"
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// Content types of the produced artifacts
const (
	ContentTypeText    = "text/plain; charset=utf-8"
	ContentTypeArchive = "application/zip"
)

// ExporterOptions contains options for creating an Exporter
type ExporterOptions struct {
	Archive ArchiveOptions
	Logger  *utils.Logger
	// Now supplies the export timestamp
	Now func() time.Time
}

// Exporter builds export artifacts
type Exporter struct {
	archive ArchiveOptions
	logger  *utils.Logger
	now     func() time.Time
}

// NewExporter creates a new Exporter
func NewExporter(opts ExporterOptions) *Exporter {
	if opts.Archive.Method == "" {
		opts.Archive = DefaultArchiveOptions()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	e := &Exporter{archive: opts.Archive, now: opts.Now}
	if opts.Logger != nil {
		e.logger = opts.Logger.WithComponent("export")
	}
	return e
}

// Export builds the artifact for contents of repo at ref
func (e *Exporter) Export(repo, ref string, contents []domain.FetchedContent, format domain.ExportFormat) (*domain.ExportArtifact, error) {
	ts := e.now()
	artifact := &domain.ExportArtifact{
		Filename:  Filename(repo, ref, ts, format),
		Format:    format,
		Entries:   len(contents),
		CreatedAt: ts,
	}

	switch format {
	case domain.FormatText:
		artifact.ContentType = ContentTypeText
		artifact.Data = []byte(FormatText(contents))
	case domain.FormatArchive:
		data, err := BuildArchive(contents, ts, e.archive)
		if err != nil {
			return nil, err
		}
		artifact.ContentType = ContentTypeArchive
		artifact.Data = data
	default:
		return nil, domain.NewValidationError("format", fmt.Sprintf("unsupported export format %q", format))
	}

	if e.logger != nil {
		e.logger.Debug().
			Str("filename", artifact.Filename).
			Int("entries", artifact.Entries).
			Int("bytes", len(artifact.Data)).
			Msg("Built export artifact")
	}

	return artifact, nil
}
