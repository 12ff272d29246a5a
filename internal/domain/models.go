package domain

import (
	"path"
	"strings"
	"time"
)

// RepositoryLocator identifies a repository and the ambiguous trailing
// fragment of the URL it was parsed from
type RepositoryLocator struct {
	Host     string `json:"host"`
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Fragment string `json:"fragment,omitempty"`
}

// FullName returns "owner/repo"
func (l RepositoryLocator) FullName() string {
	return l.Owner + "/" + l.Repo
}

// ReferenceSet is a snapshot of the branch and tag names of a repository
type ReferenceSet struct {
	Branches []string `json:"branches"`
	Tags     []string `json:"tags"`
}

// All returns branch names followed by tag names
func (r ReferenceSet) All() []string {
	all := make([]string, 0, len(r.Branches)+len(r.Tags))
	all = append(all, r.Branches...)
	return append(all, r.Tags...)
}

// ResolvedLocation is the ref and sub-path a fragment was resolved to.
// An empty Ref means the default branch, an empty Path the repository root.
type ResolvedLocation struct {
	Ref  string `json:"ref"`
	Path string `json:"path"`
}

// EntryType is the kind of a tree entry
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// TreeEntry is one path of a recursive listing.
// Path is relative to the repository root.
type TreeEntry struct {
	Path string    `json:"path"`
	Type EntryType `json:"type"`
	SHA  string    `json:"sha"`
	Size int64     `json:"size,omitempty"`
}

// IsFile reports whether the entry is a file
func (e TreeEntry) IsFile() bool {
	return e.Type == EntryFile
}

// Name returns the last path element
func (e TreeEntry) Name() string {
	return path.Base(e.Path)
}

// ContentObject is the contents endpoint's view of one path.
// Type is "dir", "file", "symlink" or "submodule".
type ContentObject struct {
	SHA  string `json:"sha"`
	Type string `json:"type"`
}

// IsDir reports whether the object is a directory. The repository root
// reports no type.
func (o ContentObject) IsDir() bool {
	return o.Type == "dir" || o.Type == ""
}

// TreeRoot is the content address a listing is rooted at and the
// repository-relative path that address corresponds to
type TreeRoot struct {
	SHA  string `json:"sha"`
	Path string `json:"path"`
}

// TreeListing is the raw result of one recursive tree request
type TreeListing struct {
	SHA       string
	Entries   []TreeEntry
	Truncated bool
}

// Blob is the raw content of a file
type Blob struct {
	Data        []byte
	ContentType string
}

// FetchedContent is the retrieved text of one selected file.
// Err marks an entry whose Text is an explanatory placeholder.
type FetchedContent struct {
	Path    string `json:"path"`
	SHA     string `json:"sha"`
	Text    string `json:"text"`
	Err     bool   `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// DropErrors returns the contents that are not error-marked
func DropErrors(contents []FetchedContent) []FetchedContent {
	kept := make([]FetchedContent, 0, len(contents))
	for _, c := range contents {
		if !c.Err {
			kept = append(kept, c)
		}
	}
	return kept
}

// ExportFormat selects the artifact kind
type ExportFormat string

const (
	FormatText    ExportFormat = "text"
	FormatArchive ExportFormat = "zip"
)

// Extension returns the file extension of the format
func (f ExportFormat) Extension() string {
	if f == FormatArchive {
		return "zip"
	}
	return "txt"
}

// ParseExportFormat maps user input to an ExportFormat
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "zip", "archive":
		return FormatArchive, nil
	}
	return "", NewValidationError("format", "must be one of text, zip")
}

// ExportArtifact is the produced export and its suggested filename
type ExportArtifact struct {
	Filename    string       `json:"filename"`
	Format      ExportFormat `json:"format"`
	ContentType string       `json:"content_type"`
	Data        []byte       `json:"-"`
	Entries     int          `json:"entries"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Listing is the outcome of one submission: where the URL resolved to and
// the files found there. It replaces, never merges with, a previous listing.
type Listing struct {
	Locator  RepositoryLocator `json:"locator"`
	Location ResolvedLocation  `json:"location"`
	Root     TreeRoot          `json:"root"`
	Entries  []TreeEntry       `json:"entries"`

	// Truncated is set when the host capped the recursive listing
	Truncated bool     `json:"truncated,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Files returns the file entries of the listing
func (l *Listing) Files() []TreeEntry {
	files := make([]TreeEntry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.IsFile() {
			files = append(files, e)
		}
	}
	return files
}
