package output

import (
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
)

// Record describes one export: where it came from and what went into it
type Record struct {
	Repository string    `json:"repository"`
	Ref        string    `json:"ref,omitempty"`
	Path       string    `json:"path,omitempty"`
	TreeSHA    string    `json:"tree_sha"`
	Filename   string    `json:"filename"`
	Format     string    `json:"format"`
	CreatedAt  time.Time `json:"created_at"`
	Truncated  bool      `json:"truncated,omitempty"`
	Files      []string  `json:"files"`
	Failed     []string  `json:"failed,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
}

// NewRecord builds the record of artifact exported from listing.
// contents are the fetched files before error entries were dropped.
func NewRecord(listing *domain.Listing, contents []domain.FetchedContent, artifact *domain.ExportArtifact) *Record {
	r := &Record{
		Repository: listing.Locator.FullName(),
		Ref:        listing.Location.Ref,
		Path:       listing.Location.Path,
		TreeSHA:    listing.Root.SHA,
		Filename:   artifact.Filename,
		Format:     string(artifact.Format),
		CreatedAt:  artifact.CreatedAt,
		Truncated:  listing.Truncated,
		Files:      make([]string, 0, len(contents)),
	}
	r.Warnings = append(r.Warnings, listing.Warnings...)

	for _, c := range contents {
		if c.Err {
			r.Failed = append(r.Failed, c.Path)
			continue
		}
		r.Files = append(r.Files, c.Path)
		if c.Warning != "" {
			r.Warnings = append(r.Warnings, c.Warning)
		}
	}

	return r
}
