package selection

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// matcher matches repository paths against one pattern. `*` stays within
// a path segment and `**` crosses segments. A leading `**/` also matches
// at the root, and a pattern without a slash is tried against base names.
type matcher struct {
	full     glob.Glob
	rootless glob.Glob
	baseOnly bool
}

func compile(pattern string) (*matcher, error) {
	pattern = strings.TrimPrefix(strings.TrimSpace(pattern), "/")
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	full, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}

	m := &matcher{full: full, baseOnly: !strings.Contains(pattern, "/")}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		if m.rootless, err = glob.Compile(rest, '/'); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
	}
	return m, nil
}

func (m *matcher) Match(p string) bool {
	if m.full.Match(p) {
		return true
	}
	if m.rootless != nil && m.rootless.Match(p) {
		return true
	}
	return m.baseOnly && m.full.Match(path.Base(p))
}
