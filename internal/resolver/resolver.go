// Package resolver splits the ambiguous fragment of a repository URL into
// a ref and a path.
package resolver

import (
	"context"
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// Result is the outcome of a resolution. Degraded is set, and Location is
// the path-only interpretation, when references could not be listed.
type Result struct {
	Location domain.ResolvedLocation
	Degraded *domain.ReferenceListingError
}

// Resolver resolves fragments against the references of a repository
type Resolver struct {
	refs   domain.RefLister
	logger *utils.Logger
}

// NewResolver creates a new Resolver
func NewResolver(refs domain.RefLister, logger *utils.Logger) *Resolver {
	r := &Resolver{refs: refs}
	if logger != nil {
		r.logger = logger.WithComponent("resolver")
	}
	return r
}

// Resolve determines which ref and sub-path loc.Fragment names.
// It never fails: a reference listing error degrades to treating the whole
// fragment as a path on the default branch.
func (r *Resolver) Resolve(ctx context.Context, loc domain.RepositoryLocator, token string) Result {
	if loc.Fragment == "" {
		return Result{}
	}

	refs, err := r.refs.ListRefs(ctx, loc, token)
	if err != nil {
		degraded := &domain.ReferenceListingError{Repository: loc.FullName(), Err: err}
		if r.logger != nil {
			r.logger.Warn().Err(err).Str("repo", loc.FullName()).Msg("Could not fetch branches/tags, treating fragment as path")
		}
		return Result{
			Location: domain.ResolvedLocation{Path: loc.Fragment},
			Degraded: degraded,
		}
	}

	location := Split(loc.Fragment, refs.All())
	if r.logger != nil {
		r.logger.Debug().
			Str("fragment", loc.Fragment).
			Str("ref", location.Ref).
			Str("path", location.Path).
			Msg("Resolved fragment")
	}
	return Result{Location: location}
}

// Split chooses the longest name in refs that equals fragment or is
// followed in it by "/". Names of equal length are ordered lexically.
// With no match the whole fragment is the path.
func Split(fragment string, refs []string) domain.ResolvedLocation {
	best := ""
	for _, ref := range refs {
		if ref == "" || !matches(fragment, ref) {
			continue
		}
		if len(ref) > len(best) || (len(ref) == len(best) && ref < best) {
			best = ref
		}
	}

	if best == "" {
		return domain.ResolvedLocation{Path: fragment}
	}

	return domain.ResolvedLocation{
		Ref:  best,
		Path: strings.TrimPrefix(strings.TrimPrefix(fragment, best), "/"),
	}
}

func matches(fragment, ref string) bool {
	return fragment == ref || strings.HasPrefix(fragment, ref+"/")
}
