package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/quantmind-br/repo2txt-go/internal/converter"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// DefaultWorkers is the number of concurrent file requests
const DefaultWorkers = 5

// ProgressFunc is called from worker goroutines after each file completes
type ProgressFunc func(done, total int, path string)

// ContentFetcherOptions contains options for creating a ContentFetcher
type ContentFetcherOptions struct {
	Workers    int
	Logger     *utils.Logger
	OnProgress ProgressFunc
}

// ContentFetcher retrieves the text of selected files
type ContentFetcher struct {
	host       domain.Host
	workers    int
	logger     *utils.Logger
	onProgress ProgressFunc
}

// NewContentFetcher creates a new ContentFetcher
func NewContentFetcher(host domain.Host, opts ContentFetcherOptions) *ContentFetcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	f := &ContentFetcher{
		host:       host,
		workers:    opts.Workers,
		onProgress: opts.OnProgress,
	}
	if opts.Logger != nil {
		f.logger = opts.Logger.WithComponent("content")
	}
	return f
}

// FetchAll fetches every file with a bounded number of concurrent requests.
// The result has one entry per file, in input order. A failed file becomes
// an error-marked placeholder and never affects the others.
func (f *ContentFetcher) FetchAll(ctx context.Context, loc domain.RepositoryLocator, files []domain.TreeEntry, token string) []domain.FetchedContent {
	if len(files) == 0 {
		return []domain.FetchedContent{}
	}

	var done atomic.Int32
	total := len(files)

	results, started := utils.ParallelMap(ctx, files, f.workers, func(ctx context.Context, file domain.TreeEntry) domain.FetchedContent {
		content := f.fetchOne(ctx, loc, file, token)
		n := int(done.Add(1))
		if f.onProgress != nil {
			f.onProgress(n, total, file.Path)
		}
		return content
	})

	// Files never picked up because ctx ended
	for i, ok := range started {
		if !ok {
			cause := context.Cause(ctx)
			if cause == nil {
				cause = context.Canceled
			}
			results[i] = errorContent(files[i], cause)
		}
	}

	return results
}

func (f *ContentFetcher) fetchOne(ctx context.Context, loc domain.RepositoryLocator, file domain.TreeEntry, token string) domain.FetchedContent {
	blob, err := f.host.Blob(ctx, loc, file.SHA, token)
	if err != nil {
		if f.logger != nil {
			f.logger.Warn().Err(err).Str("path", file.Path).Msg("Failed to fetch file")
		}
		return errorContent(file, err)
	}

	content := domain.FetchedContent{
		Path: file.Path,
		SHA:  file.SHA,
		Text: converter.DecodeText(blob.Data, blob.ContentType),
	}

	if !converter.IsTextual(blob.Data, blob.ContentType) {
		content.Warning = fmt.Sprintf("File %s has non-text content type: %s. Content might be binary.",
			file.Path, converter.SniffContentType(blob.Data))
		if f.logger != nil {
			f.logger.Warn().Str("path", file.Path).Str("content_type", blob.ContentType).Msg("Non-text content")
		}
	}

	return content
}

// errorContent builds the placeholder entry for a failed file
func errorContent(file domain.TreeEntry, err error) domain.FetchedContent {
	text := "// Error fetching file: " + err.Error()
	if errors.Is(err, domain.ErrNotFound) {
		text = "// Error: File not found at path: " + file.Path
	}
	return domain.FetchedContent{
		Path: file.Path,
		SHA:  file.SHA,
		Text: text,
		Err:  true,
	}
}

// Failures returns the per-file errors of an error-marked result set
func Failures(contents []domain.FetchedContent) []error {
	var errs []error
	for _, c := range contents {
		if c.Err {
			errs = append(errs, &domain.PerFileFetchError{Path: c.Path, Err: errors.New(c.Text)})
		}
	}
	return errs
}
