package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v75/github"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/fetcher"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
	"github.com/quantmind-br/repo2txt-go/pkg/version"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint
	DefaultAPIURL = "https://api.github.com"

	// MaxRefPageSize is the largest page the REST API serves
	MaxRefPageSize = 100

	objectMediaType = "application/vnd.github.object+json"
)

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	BaseURL     string
	RefPageSize int
	Timeout     time.Duration
	UserAgent   string
	Retrier     *fetcher.Retrier
	Logger      *utils.Logger
	// HTTPClient is the base client requests are sent with
	HTTPClient *http.Client
	// MaxClients bounds the per-token API clients kept between calls
	MaxClients int
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:     DefaultAPIURL,
		RefPageSize: MaxRefPageSize,
		Timeout:     30 * time.Second,
		UserAgent:   version.UserAgent(),
		MaxClients:  DefaultMaxClients,
	}
}

// Client talks to the GitHub (or a GitHub-compatible) REST API
type Client struct {
	baseURL     string
	refPageSize int
	timeout     time.Duration
	userAgent   string
	retrier     *fetcher.Retrier
	logger      *utils.Logger
	httpClient  *http.Client
	clients     *clientCache
}

// NewClient creates a new Client with the given options
func NewClient(opts ClientOptions) *Client {
	defaults := DefaultClientOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.RefPageSize <= 0 || opts.RefPageSize > MaxRefPageSize {
		opts.RefPageSize = MaxRefPageSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		refPageSize: opts.RefPageSize,
		timeout:     opts.Timeout,
		userAgent:   opts.UserAgent,
		retrier:     opts.Retrier,
		httpClient:  opts.HTTPClient,
		clients:     newClientCache(opts.MaxClients),
	}
	if opts.Logger != nil {
		c.logger = opts.Logger.WithComponent("github")
	}
	return c
}

// api returns the API client for token, reusing a cached one when present
func (c *Client) api(token string) *gogithub.Client {
	if cl, ok := c.clients.get(token); ok {
		return cl
	}

	httpClient := &http.Client{
		Transport: c.httpClient.Transport,
		Timeout:   c.timeout,
	}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = c.timeout
	}

	cl := gogithub.NewClient(httpClient)
	cl.UserAgent = c.userAgent
	applyBaseURL(cl, c.baseURL)

	c.clients.put(token, cl)
	return cl
}

// Close drops the cached API clients and idle connections
func (c *Client) Close() error {
	c.clients.close()
	c.httpClient.CloseIdleConnections()
	return nil
}

func applyBaseURL(cl *gogithub.Client, baseURL string) {
	if baseURL == "" || baseURL == DefaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	cl.BaseURL = u
}

// ListRefs lists one page of branches and one page of tags concurrently.
// If either request fails the whole listing fails.
func (c *Client) ListRefs(ctx context.Context, loc domain.RepositoryLocator, token string) (*domain.ReferenceSet, error) {
	api := c.api(token)
	refs := &domain.ReferenceSet{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		branches, err := fetcher.RetryWithValue(gctx, c.retrier, func() ([]*gogithub.Branch, error) {
			b, resp, err := api.Repositories.ListBranches(gctx, loc.Owner, loc.Repo, &gogithub.BranchListOptions{
				ListOptions: gogithub.ListOptions{PerPage: c.refPageSize},
			})
			return b, mapError(err, resp, "fetch branches")
		})
		if err != nil {
			return err
		}
		for _, b := range branches {
			refs.Branches = append(refs.Branches, b.GetName())
		}
		return nil
	})
	g.Go(func() error {
		tags, err := fetcher.RetryWithValue(gctx, c.retrier, func() ([]*gogithub.RepositoryTag, error) {
			t, resp, err := api.Repositories.ListTags(gctx, loc.Owner, loc.Repo, &gogithub.ListOptions{PerPage: c.refPageSize})
			return t, mapError(err, resp, "fetch tags")
		})
		if err != nil {
			return err
		}
		for _, t := range tags {
			refs.Tags = append(refs.Tags, t.GetName())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("repo", loc.FullName()).
			Int("branches", len(refs.Branches)).
			Int("tags", len(refs.Tags)).
			Msg("Listed references")
	}

	return refs, nil
}

// Content queries the contents endpoint with the object media type so a
// directory yields its own tree address
func (c *Client) Content(ctx context.Context, loc domain.RepositoryLocator, ref, path, token string) (*domain.ContentObject, error) {
	api := c.api(token)

	endpoint := fmt.Sprintf("repos/%s/%s/contents", url.PathEscape(loc.Owner), url.PathEscape(loc.Repo))
	if path != "" {
		endpoint += "/" + escapePath(path)
	}
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}

	return fetcher.RetryWithValue(ctx, c.retrier, func() (*domain.ContentObject, error) {
		req, err := api.NewRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create contents request: %w", err)
		}
		req.Header.Set("Accept", objectMediaType)

		obj := &domain.ContentObject{}
		resp, err := api.Do(ctx, req, obj)
		if err != nil {
			return nil, mapError(err, resp, fmt.Sprintf("fetch repository SHA for path '%s'", path))
		}
		return obj, nil
	})
}

// DefaultBranch returns the default branch recorded in the repository metadata
func (c *Client) DefaultBranch(ctx context.Context, loc domain.RepositoryLocator, token string) (string, error) {
	api := c.api(token)

	return fetcher.RetryWithValue(ctx, c.retrier, func() (string, error) {
		repo, resp, err := api.Repositories.Get(ctx, loc.Owner, loc.Repo)
		if err != nil {
			return "", mapError(err, resp, "fetch repository info")
		}
		return repo.GetDefaultBranch(), nil
	})
}

// CommitTreeSHA returns the tree address of the latest commit on ref
func (c *Client) CommitTreeSHA(ctx context.Context, loc domain.RepositoryLocator, ref, token string) (string, error) {
	api := c.api(token)

	return fetcher.RetryWithValue(ctx, c.retrier, func() (string, error) {
		commit, resp, err := api.Repositories.GetCommit(ctx, loc.Owner, loc.Repo, ref, nil)
		if err != nil {
			return "", mapError(err, resp, fmt.Sprintf("fetch commit info for ref '%s'", ref))
		}
		return commit.GetCommit().GetTree().GetSHA(), nil
	})
}

// Tree returns the recursive listing under sha. Entry paths are relative to
// the tree itself. Submodule entries are skipped.
func (c *Client) Tree(ctx context.Context, loc domain.RepositoryLocator, sha, token string) (*domain.TreeListing, error) {
	api := c.api(token)

	tree, err := fetcher.RetryWithValue(ctx, c.retrier, func() (*gogithub.Tree, error) {
		t, resp, err := api.Git.GetTree(ctx, loc.Owner, loc.Repo, sha, true)
		return t, mapError(err, resp, "fetch tree for SHA: "+sha)
	})
	if err != nil {
		return nil, err
	}

	listing := &domain.TreeListing{
		SHA:       tree.GetSHA(),
		Truncated: tree.GetTruncated(),
		Entries:   make([]domain.TreeEntry, 0, len(tree.Entries)),
	}
	for _, e := range tree.Entries {
		var typ domain.EntryType
		switch e.GetType() {
		case "blob":
			typ = domain.EntryFile
		case "tree":
			typ = domain.EntryDir
		default:
			continue
		}
		listing.Entries = append(listing.Entries, domain.TreeEntry{
			Path: e.GetPath(),
			Type: typ,
			SHA:  e.GetSHA(),
			Size: int64(e.GetSize()),
		})
	}

	return listing, nil
}

// Blob returns the raw bytes of a blob
func (c *Client) Blob(ctx context.Context, loc domain.RepositoryLocator, sha, token string) (*domain.Blob, error) {
	api := c.api(token)

	return fetcher.RetryWithValue(ctx, c.retrier, func() (*domain.Blob, error) {
		data, resp, err := api.Git.GetBlobRaw(ctx, loc.Owner, loc.Repo, sha)
		if err != nil {
			return nil, mapError(err, resp, "fetch blob "+sha)
		}
		blob := &domain.Blob{Data: data}
		if resp != nil {
			blob.ContentType = resp.Header.Get("Content-Type")
		}
		return blob, nil
	})
}

// escapePath escapes each segment of a repository path
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

var _ domain.Host = (*Client)(nil)
