package domain

import "context"

//go:generate mockgen -destination=../mocks/mock_host.go -package=mocks github.com/quantmind-br/repo2txt-go/internal/domain Host,RefLister

// RefLister lists the branch and tag names of a repository
type RefLister interface {
	ListRefs(ctx context.Context, loc RepositoryLocator, token string) (*ReferenceSet, error)
}

// Host is the hosting API surface the pipeline consumes.
// Every call takes an optional bearer token; empty means anonymous access.
type Host interface {
	RefLister
	// Content describes path at ref. SHA is empty when the response carries
	// none. An empty ref means the default branch.
	Content(ctx context.Context, loc RepositoryLocator, ref, path, token string) (*ContentObject, error)
	// DefaultBranch returns the repository's default branch name
	DefaultBranch(ctx context.Context, loc RepositoryLocator, token string) (string, error)
	// CommitTreeSHA returns the tree address recorded on the latest commit of ref
	CommitTreeSHA(ctx context.Context, loc RepositoryLocator, ref, token string) (string, error)
	// Tree returns the recursive listing under a tree address
	Tree(ctx context.Context, loc RepositoryLocator, sha, token string) (*TreeListing, error)
	// Blob returns the raw bytes of a blob address
	Blob(ctx context.Context, loc RepositoryLocator, sha, token string) (*Blob, error)
}

// TokenStore persists the bearer credential between sessions
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
	Close() error
}
