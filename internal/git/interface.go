package git

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Client defines the interface for Git operations
type Client interface {
	// ListRemote returns the references advertised by the repository at url
	ListRemote(ctx context.Context, url string, o *git.ListOptions) ([]*plumbing.Reference, error)
}
