package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/fetcher"
	"github.com/quantmind-br/repo2txt-go/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var repo = domain.RepositoryLocator{Host: "github.com", Owner: "acme", Repo: "widgets"}

func file(path, sha string) domain.TreeEntry {
	return domain.TreeEntry{Path: path, Type: domain.EntryFile, SHA: sha}
}

func TestContentFetcher_FetchAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)

	host.EXPECT().Blob(gomock.Any(), repo, "s1", "tok").
		Return(&domain.Blob{Data: []byte("package a\n"), ContentType: "text/plain"}, nil)
	host.EXPECT().Blob(gomock.Any(), repo, "s2", "tok").
		Return(nil, domain.NewHTTPFetchError(http.StatusNotFound, "fetch blob s2", ""))
	host.EXPECT().Blob(gomock.Any(), repo, "s3", "tok").
		Return(nil, domain.NewHTTPFetchError(http.StatusInternalServerError, "fetch blob s3", "boom"))
	host.EXPECT().Blob(gomock.Any(), repo, "s4", "tok").
		Return(&domain.Blob{Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), ContentType: "application/octet-stream"}, nil)

	files := []domain.TreeEntry{
		file("a.go", "s1"),
		file("gone.txt", "s2"),
		file("broken.txt", "s3"),
		file("logo.png", "s4"),
	}

	var progressCalls atomic.Int32
	f := fetcher.NewContentFetcher(host, fetcher.ContentFetcherOptions{
		Workers: 2,
		OnProgress: func(done, total int, path string) {
			progressCalls.Add(1)
			assert.Equal(t, 4, total)
		},
	})

	got := f.FetchAll(context.Background(), repo, files, "tok")

	require.Len(t, got, 4)
	for i, c := range got {
		assert.Equal(t, files[i].Path, c.Path, "results keep selection order")
	}

	assert.False(t, got[0].Err)
	assert.Equal(t, "package a\n", got[0].Text)

	assert.True(t, got[1].Err)
	assert.Equal(t, "// Error: File not found at path: gone.txt", got[1].Text)

	assert.True(t, got[2].Err)
	assert.Contains(t, got[2].Text, "// Error fetching file: ")
	assert.Contains(t, got[2].Text, "Status: 500")

	assert.False(t, got[3].Err)
	assert.Contains(t, got[3].Warning, "logo.png has non-text content type")

	assert.Equal(t, int32(4), progressCalls.Load())

	kept := domain.DropErrors(got)
	assert.Len(t, kept, 2)
	assert.Len(t, fetcher.Failures(got), 2)
}

func TestContentFetcher_BoundedConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)

	var inFlight, peak atomic.Int32
	var mu sync.Mutex
	host.EXPECT().Blob(gomock.Any(), repo, gomock.Any(), "").
		DoAndReturn(func(ctx context.Context, _ domain.RepositoryLocator, sha, _ string) (*domain.Blob, error) {
			n := inFlight.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return &domain.Blob{Data: []byte(sha)}, nil
		}).Times(20)

	files := make([]domain.TreeEntry, 20)
	for i := range files {
		files[i] = file(string(rune('a'+i))+".txt", string(rune('a'+i)))
	}

	got := fetcher.NewContentFetcher(host, fetcher.ContentFetcherOptions{Workers: 3}).
		FetchAll(context.Background(), repo, files, "")

	require.Len(t, got, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	for i, c := range got {
		assert.Equal(t, files[i].SHA, c.Text)
	}
}

func TestContentFetcher_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)
	host.EXPECT().Blob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, context.Canceled).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []domain.TreeEntry{file("a", "1"), file("b", "2")}
	got := fetcher.NewContentFetcher(host, fetcher.ContentFetcherOptions{}).FetchAll(ctx, repo, files, "")

	require.Len(t, got, 2)
	for _, c := range got {
		assert.True(t, c.Err)
		assert.Contains(t, c.Text, "context canceled")
	}
}

func TestContentFetcher_CancelledMidway(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mocks.NewMockHost(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host.EXPECT().Blob(gomock.Any(), repo, "1", "").Return(&domain.Blob{Data: []byte("package a")}, nil)
	host.EXPECT().Blob(gomock.Any(), repo, "2", "").
		DoAndReturn(func(context.Context, domain.RepositoryLocator, string, string) (*domain.Blob, error) {
			cancel()
			return &domain.Blob{Data: []byte("package b")}, nil
		})

	files := []domain.TreeEntry{file("a.go", "1"), file("b.go", "2"), file("c.go", "3")}
	got := fetcher.NewContentFetcher(host, fetcher.ContentFetcherOptions{Workers: 1}).FetchAll(ctx, repo, files, "")

	require.Len(t, got, 3)
	assert.Equal(t, "package a", got[0].Text)
	assert.Equal(t, "package b", got[1].Text)
	assert.True(t, got[2].Err)
	assert.Equal(t, "c.go", got[2].Path)
	assert.Equal(t, "// Error fetching file: context canceled", got[2].Text)
}

func TestContentFetcher_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	got := fetcher.NewContentFetcher(mocks.NewMockHost(ctrl), fetcher.ContentFetcherOptions{}).
		FetchAll(context.Background(), repo, nil, "")
	assert.Empty(t, got)
}

func TestFailures(t *testing.T) {
	errs := fetcher.Failures([]domain.FetchedContent{
		{Path: "ok"},
		{Path: "bad", Text: "// Error fetching file: x", Err: true},
	})

	require.Len(t, errs, 1)
	var perFile *domain.PerFileFetchError
	require.True(t, errors.As(errs[0], &perFile))
	assert.Equal(t, "bad", perFile.Path)
}
