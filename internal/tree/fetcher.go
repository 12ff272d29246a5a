// Package tree turns a resolved location into a flat, repository-relative
// file listing and renders listings as a directory tree.
package tree

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// TruncatedWarning is shown when the host capped a recursive listing
const TruncatedWarning = "Warning: Repository is large, and the file list may be incomplete."

// Fetcher lists repository trees through a domain.Host
type Fetcher struct {
	host   domain.Host
	logger *utils.Logger
}

// NewFetcher creates a new Fetcher
func NewFetcher(host domain.Host, logger *utils.Logger) *Fetcher {
	f := &Fetcher{host: host}
	if logger != nil {
		f.logger = logger.WithComponent("tree")
	}
	return f
}

// RootIdentifier finds the tree address to list for path at ref.
//
// The contents endpoint is asked first. When it yields no directory
// address, the tree of the latest commit on ref (or the default branch) is
// used instead and the returned root is the repository root. A failed
// contents query only falls back for the repository root, and never for
// authentication or quota failures.
func (f *Fetcher) RootIdentifier(ctx context.Context, loc domain.RepositoryLocator, ref, p, token string) (domain.TreeRoot, error) {
	obj, err := f.host.Content(ctx, loc, ref, p, token)
	switch {
	case err == nil && obj.SHA != "" && obj.IsDir():
		return domain.TreeRoot{SHA: obj.SHA, Path: p}, nil
	case err != nil && !canFallBack(err, p):
		return domain.TreeRoot{}, err
	}

	if f.logger != nil {
		f.logger.Debug().Err(err).Str("path", p).Str("ref", ref).
			Msg("Could not determine tree SHA from contents, using commit tree")
	}

	commitRef := ref
	if commitRef == "" {
		commitRef, err = f.host.DefaultBranch(ctx, loc, token)
		if err != nil {
			return domain.TreeRoot{}, err
		}
	}

	sha, err := f.host.CommitTreeSHA(ctx, loc, commitRef, token)
	if err != nil {
		return domain.TreeRoot{}, err
	}
	if sha == "" {
		return domain.TreeRoot{}, fmt.Errorf("%w: ref %q", domain.ErrUnresolvedRoot, commitRef)
	}

	return domain.TreeRoot{SHA: sha, Path: ""}, nil
}

func canFallBack(err error, p string) bool {
	if p != "" {
		return false
	}
	return !errors.Is(err, domain.ErrUnauthorized) && !errors.Is(err, domain.ErrRateLimited)
}

// Tree lists every entry under root that lies within p. Entry paths are
// repository-relative. A truncated host listing is reported through
// TreeListing.Truncated, not as an error.
func (f *Fetcher) Tree(ctx context.Context, loc domain.RepositoryLocator, root domain.TreeRoot, p, token string) (*domain.TreeListing, error) {
	raw, err := f.host.Tree(ctx, loc, root.SHA, token)
	if err != nil {
		return nil, err
	}

	filter := p != root.Path && p != ""
	listing := &domain.TreeListing{
		SHA:       raw.SHA,
		Truncated: raw.Truncated,
		Entries:   make([]domain.TreeEntry, 0, len(raw.Entries)),
	}
	for _, e := range raw.Entries {
		e.Path = joinPath(root.Path, e.Path)
		if filter && !within(e, p) {
			continue
		}
		listing.Entries = append(listing.Entries, e)
	}

	if raw.Truncated && f.logger != nil {
		f.logger.Warn().Str("repo", loc.FullName()).Str("sha", root.SHA).Msg("Repository tree is truncated")
	}

	return listing, nil
}

// List resolves the root for location and lists it
func (f *Fetcher) List(ctx context.Context, loc domain.RepositoryLocator, location domain.ResolvedLocation, token string) (*domain.Listing, error) {
	root, err := f.RootIdentifier(ctx, loc, location.Ref, location.Path, token)
	if err != nil {
		return nil, err
	}

	tl, err := f.Tree(ctx, loc, root, location.Path, token)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		Locator:   loc,
		Location:  location,
		Root:      root,
		Entries:   tl.Entries,
		Truncated: tl.Truncated,
	}
	if tl.Truncated {
		listing.Warnings = append(listing.Warnings, TruncatedWarning)
	}
	return listing, nil
}

func joinPath(prefix, p string) string {
	if prefix == "" {
		return p
	}
	return path.Join(prefix, p)
}

// within reports whether e is below dir, or is the file dir names
func within(e domain.TreeEntry, dir string) bool {
	if e.Path == dir {
		return e.IsFile()
	}
	return strings.HasPrefix(e.Path, dir+"/")
}
