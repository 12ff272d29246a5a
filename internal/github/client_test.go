package github_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/fetcher"
	"github.com/quantmind-br/repo2txt-go/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widgets = domain.RepositoryLocator{Host: "github.com", Owner: "acme", Repo: "widgets"}

func newTestClient(t *testing.T, mux *http.ServeMux, retrier *fetcher.Retrier) *github.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return github.NewClient(github.ClientOptions{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Retrier: retrier,
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestClient_ListRefs(t *testing.T) {
	var authHeader atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/branches", func(w http.ResponseWriter, r *http.Request) {
		authHeader.Store(r.Header.Get("Authorization"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		writeJSON(w, http.StatusOK, `[{"name":"main"},{"name":"feature/x"}]`)
	})
	mux.HandleFunc("GET /repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		writeJSON(w, http.StatusOK, `[{"name":"v1.0"}]`)
	})

	client := newTestClient(t, mux, nil)
	refs, err := client.ListRefs(context.Background(), widgets, "s3cret")

	require.NoError(t, err)
	assert.Equal(t, []string{"main", "feature/x"}, refs.Branches)
	assert.Equal(t, []string{"v1.0"}, refs.Tags)
	assert.Equal(t, "Bearer s3cret", authHeader.Load())
}

func TestClient_ListRefs_Anonymous(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/branches", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("User-Agent"), "repo2txt/")
		writeJSON(w, http.StatusOK, `[]`)
	})
	mux.HandleFunc("GET /repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})

	refs, err := newTestClient(t, mux, nil).ListRefs(context.Background(), widgets, "")
	require.NoError(t, err)
	assert.Empty(t, refs.All())
}

func TestClient_ListRefs_OneSideFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/branches", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"name":"main"}]`)
	})
	mux.HandleFunc("GET /repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})

	refs, err := newTestClient(t, mux, nil).ListRefs(context.Background(), widgets, "")

	require.Error(t, err)
	assert.Nil(t, refs)
	assert.Equal(t, http.StatusInternalServerError, domain.StatusCode(err))
	assert.Contains(t, err.Error(), "fetch tags")
}

func TestClient_Content(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/contents/{path...}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "src/my dir", r.PathValue("path"))
		assert.Equal(t, "application/vnd.github.object+json", r.Header.Get("Accept"))
		assert.Equal(t, "feature/x", r.URL.Query().Get("ref"))
		writeJSON(w, http.StatusOK, `{"type":"dir","sha":"dirsha","entries":[]}`)
	})

	obj, err := newTestClient(t, mux, nil).Content(context.Background(), widgets, "feature/x", "src/my dir", "")

	require.NoError(t, err)
	assert.Equal(t, "dirsha", obj.SHA)
	assert.True(t, obj.IsDir())
}

func TestClient_Content_RootWithoutSHA(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/contents", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("ref"))
		writeJSON(w, http.StatusOK, `{"type":"dir","entries":[]}`)
	})

	obj, err := newTestClient(t, mux, nil).Content(context.Background(), widgets, "", "", "")

	require.NoError(t, err)
	assert.Empty(t, obj.SHA)
}

func TestClient_ErrorMapping(t *testing.T) {
	reset := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
				assert.Contains(t, err.Error(), "Resource not found during fetch repository SHA for path 'docs'")
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Limit", "60")
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
				writeJSON(w, http.StatusForbidden, `{"message":"API rate limit exceeded"}`)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrRateLimited)
				var fe *domain.HTTPFetchError
				require.True(t, errors.As(err, &fe))
				assert.True(t, fe.RateLimitReset.Equal(reset))
				assert.Contains(t, err.Error(), reset.Local().Format("15:04:05"))
			},
		},
		{
			name: "unauthorized with scope hint",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Accepted-OAuth-Scopes", "repo")
				writeJSON(w, http.StatusUnauthorized, `{"message":"Bad credentials"}`)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Contains(t, err.Error(), "'repo' scope")
			},
		},
		{
			name: "forbidden without quota headers",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusForbidden, `{"message":"Resource not accessible by integration"}`)
			},
			check: func(t *testing.T, err error) {
				assert.NotErrorIs(t, err, domain.ErrRateLimited)
				assert.Equal(t, http.StatusForbidden, domain.StatusCode(err))
				assert.Contains(t, err.Error(), "Resource not accessible by integration")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /repos/acme/widgets/contents/docs", tt.handler)

			_, err := newTestClient(t, mux, nil).Content(context.Background(), widgets, "", "docs", "")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_DefaultBranchAndCommitTree(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"name":"widgets","default_branch":"trunk"}`)
	})
	mux.HandleFunc("GET /repos/acme/widgets/commits/trunk", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"sha":"c1","commit":{"tree":{"sha":"roottree"}}}`)
	})

	client := newTestClient(t, mux, nil)

	branch, err := client.DefaultBranch(context.Background(), widgets, "")
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)

	sha, err := client.CommitTreeSHA(context.Background(), widgets, branch, "")
	require.NoError(t, err)
	assert.Equal(t, "roottree", sha)
}

func TestClient_Tree(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/git/trees/roottree", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		writeJSON(w, http.StatusOK, `{
			"sha": "roottree",
			"truncated": true,
			"tree": [
				{"path": "src", "type": "tree", "sha": "t1"},
				{"path": "src/main.go", "type": "blob", "sha": "b1", "size": 42},
				{"path": "vendor/lib", "type": "commit", "sha": "c9"}
			]
		}`)
	})

	listing, err := newTestClient(t, mux, nil).Tree(context.Background(), widgets, "roottree", "")

	require.NoError(t, err)
	assert.True(t, listing.Truncated)
	require.Len(t, listing.Entries, 2)
	assert.Equal(t, domain.TreeEntry{Path: "src", Type: domain.EntryDir, SHA: "t1"}, listing.Entries[0])
	assert.Equal(t, domain.TreeEntry{Path: "src/main.go", Type: domain.EntryFile, SHA: "b1", Size: 42}, listing.Entries[1])
}

func TestClient_Blob(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/git/blobs/b1", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "raw")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "package main\n")
	})

	blob, err := newTestClient(t, mux, nil).Blob(context.Background(), widgets, "b1", "")

	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(blob.Data))
	assert.Equal(t, "text/plain; charset=utf-8", blob.ContentType)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, `{"message":"try later"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"default_branch":"main"}`)
	})

	retrier := fetcher.NewRetrier(fetcher.RetrierOptions{
		MaxRetries:      3,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     20 * time.Millisecond,
	})

	branch, err := newTestClient(t, mux, retrier).DefaultBranch(context.Background(), widgets, "")

	require.NoError(t, err)
	assert.Equal(t, "main", branch)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNewClient_ClampsPageSize(t *testing.T) {
	var perPage atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/acme/widgets/branches", func(w http.ResponseWriter, r *http.Request) {
		perPage.Store(r.URL.Query().Get("per_page"))
		writeJSON(w, http.StatusOK, `[]`)
	})
	mux.HandleFunc("GET /repos/acme/widgets/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := github.NewClient(github.ClientOptions{BaseURL: server.URL, RefPageSize: 500})
	_, err := client.ListRefs(context.Background(), widgets, "")

	require.NoError(t, err)
	assert.Equal(t, "100", perPage.Load())
}
