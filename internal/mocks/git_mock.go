package mocks

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/mock"
)

// MockGitClient mocks the git.Client interface
type MockGitClient struct {
	mock.Mock
}

// ListRemote mocks remote reference discovery
func (m *MockGitClient) ListRemote(ctx context.Context, url string, o *git.ListOptions) ([]*plumbing.Reference, error) {
	args := m.Called(ctx, url, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plumbing.Reference), args.Error(1)
}
