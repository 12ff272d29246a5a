package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	gitclient "github.com/quantmind-br/repo2txt-go/internal/git"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// DefaultGitURL is the base of clone URLs on public GitHub
const DefaultGitURL = "https://github.com"

// RemoteRefListerOptions contains options for creating a RemoteRefLister
type RemoteRefListerOptions struct {
	// GitURL is the clone URL base; repositories live at <GitURL>/<owner>/<repo>.git
	GitURL string
	Logger *utils.Logger
	// Git performs the reference discovery; defaults to go-git
	Git gitclient.Client
}

// RemoteRefLister lists references from the git smart HTTP advertisement,
// the same exchange `git ls-remote` performs
type RemoteRefLister struct {
	gitURL string
	git    gitclient.Client
	logger *utils.Logger
}

// NewRemoteRefLister creates a new RemoteRefLister
func NewRemoteRefLister(opts RemoteRefListerOptions) *RemoteRefLister {
	if opts.GitURL == "" {
		opts.GitURL = DefaultGitURL
	}
	if opts.Git == nil {
		opts.Git = gitclient.NewClient()
	}
	l := &RemoteRefLister{
		gitURL: strings.TrimRight(opts.GitURL, "/"),
		git:    opts.Git,
	}
	if opts.Logger != nil {
		l.logger = opts.Logger.WithComponent("remote-refs")
	}
	return l
}

// RemoteURL returns the clone URL of loc
func (l *RemoteRefLister) RemoteURL(loc domain.RepositoryLocator) string {
	return fmt.Sprintf("%s/%s/%s.git", l.gitURL, loc.Owner, loc.Repo)
}

// ListRefs returns every advertised branch and tag, sorted by name
func (l *RemoteRefLister) ListRefs(ctx context.Context, loc domain.RepositoryLocator, token string) (*domain.ReferenceSet, error) {
	remoteURL := l.RemoteURL(loc)

	listOpts := &git.ListOptions{PeelingOption: git.IgnorePeeled}
	if token != "" {
		listOpts.Auth = &githttp.BasicAuth{Username: "token", Password: token}
	}

	advertised, err := l.git.ListRemote(ctx, remoteURL, listOpts)
	if err != nil {
		return nil, mapTransportError(err)
	}

	refs := &domain.ReferenceSet{}
	for _, ref := range advertised {
		name := ref.Name()
		if strings.HasSuffix(name.String(), "^{}") {
			continue
		}
		switch {
		case name.IsBranch():
			refs.Branches = append(refs.Branches, name.Short())
		case name.IsTag():
			refs.Tags = append(refs.Tags, name.Short())
		}
	}
	sort.Strings(refs.Branches)
	sort.Strings(refs.Tags)

	if l.logger != nil {
		l.logger.Debug().
			Str("remote", remoteURL).
			Int("branches", len(refs.Branches)).
			Int("tags", len(refs.Tags)).
			Msg("Listed remote references")
	}

	return refs, nil
}

func mapTransportError(err error) error {
	const op = "list remote references"
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return &domain.HTTPFetchError{StatusCode: http.StatusNotFound, Context: op, Err: errors.Join(domain.ErrNotFound, err)}
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return &domain.HTTPFetchError{StatusCode: http.StatusUnauthorized, Context: op, Err: errors.Join(domain.ErrUnauthorized, err)}
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ domain.RefLister = (*RemoteRefLister)(nil)
