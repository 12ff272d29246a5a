// Package selection tracks which files of a listing are chosen for export.
package selection

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/manifest"
)

var (
	// ErrUnknownPath indicates a path that is not in the listing
	ErrUnknownPath = errors.New("path is not in the listing")

	// ErrInvalidPattern indicates a glob that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// Model is the set of selected files of one listing. It is not safe for
// concurrent use.
type Model struct {
	files    []domain.TreeEntry
	index    map[string]int
	dirs     map[string]bool
	selected map[string]bool
}

// NewModel creates an empty selection over the files of listing
func NewModel(listing *domain.Listing) *Model {
	m := &Model{
		index:    make(map[string]int),
		dirs:     make(map[string]bool),
		selected: make(map[string]bool),
	}
	if listing == nil {
		return m
	}

	for _, e := range listing.Entries {
		if !e.IsFile() {
			m.dirs[e.Path] = true
			continue
		}
		if _, dup := m.index[e.Path]; dup {
			continue
		}
		m.index[e.Path] = len(m.files)
		m.files = append(m.files, e)
		for dir := path.Dir(e.Path); dir != "." && dir != "/"; dir = path.Dir(dir) {
			m.dirs[dir] = true
		}
	}
	return m
}

func normalize(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}

// resolve returns the files p names: the file itself, or every file
// below a directory
func (m *Model) resolve(p string) ([]string, error) {
	p = normalize(p)
	if _, ok := m.index[p]; ok {
		return []string{p}, nil
	}
	if p == "" || m.dirs[p] {
		var out []string
		for _, f := range m.files {
			if p == "" || strings.HasPrefix(f.Path, p+"/") {
				out = append(out, f.Path)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPath, p)
}

// Select adds files and directories. Nothing changes when any path is unknown.
func (m *Model) Select(paths ...string) error {
	return m.set(paths, true)
}

// Deselect removes files and directories
func (m *Model) Deselect(paths ...string) error {
	return m.set(paths, false)
}

func (m *Model) set(paths []string, on bool) error {
	var resolved []string
	for _, p := range paths {
		files, err := m.resolve(p)
		if err != nil {
			return err
		}
		resolved = append(resolved, files...)
	}
	for _, f := range resolved {
		if on {
			m.selected[f] = true
		} else {
			delete(m.selected, f)
		}
	}
	return nil
}

// SelectAll selects every file
func (m *Model) SelectAll() {
	for _, f := range m.files {
		m.selected[f.Path] = true
	}
}

// Clear deselects everything
func (m *Model) Clear() {
	clear(m.selected)
}

// Include selects every file matching pattern and returns how many matched
func (m *Model) Include(pattern string) (int, error) {
	return m.match(pattern, true)
}

// Exclude deselects every file matching pattern and returns how many matched
func (m *Model) Exclude(pattern string) (int, error) {
	return m.match(pattern, false)
}

func (m *Model) match(pattern string, on bool) (int, error) {
	matcher, err := compile(pattern)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, f := range m.files {
		if !matcher.Match(f.Path) {
			continue
		}
		n++
		if on {
			m.selected[f.Path] = true
		} else {
			delete(m.selected, f.Path)
		}
	}
	return n, nil
}

// Apply applies a manifest: paths, then include patterns, then excludes.
// A manifest without paths or includes starts from every file.
func (m *Model) Apply(cfg *manifest.Config) error {
	if cfg.SelectsEverything() {
		m.SelectAll()
	}
	if err := m.Select(cfg.Paths...); err != nil {
		return err
	}
	for _, p := range cfg.Include {
		if _, err := m.Include(p); err != nil {
			return err
		}
	}
	for _, p := range cfg.Exclude {
		if _, err := m.Exclude(p); err != nil {
			return err
		}
	}
	return nil
}

// IsSelected reports whether the file at p is selected
func (m *Model) IsSelected(p string) bool {
	return m.selected[normalize(p)]
}

// Len returns the number of selected files
func (m *Model) Len() int {
	return len(m.selected)
}

// Total returns the number of files in the listing
func (m *Model) Total() int {
	return len(m.files)
}

// Selected returns the selected files in listing order
func (m *Model) Selected() []domain.TreeEntry {
	out := make([]domain.TreeEntry, 0, len(m.selected))
	for _, f := range m.files {
		if m.selected[f.Path] {
			out = append(out, f)
		}
	}
	return out
}

// Paths returns the selected paths in listing order
func (m *Model) Paths() []string {
	selected := m.Selected()
	out := make([]string, len(selected))
	for i, f := range selected {
		out[i] = f.Path
	}
	return out
}
