package app

import (
	"fmt"
	"time"

	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/export"
	"github.com/quantmind-br/repo2txt-go/internal/fetcher"
	"github.com/quantmind-br/repo2txt-go/internal/github"
	"github.com/quantmind-br/repo2txt-go/internal/locator"
	"github.com/quantmind-br/repo2txt-go/internal/output"
	"github.com/quantmind-br/repo2txt-go/internal/resolver"
	"github.com/quantmind-br/repo2txt-go/internal/tree"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// Dependencies holds the components of the load and export pipeline
type Dependencies struct {
	Parser   *locator.Parser
	Host     domain.Host
	Refs     domain.RefLister
	Resolver *resolver.Resolver
	Trees    *tree.Fetcher
	Contents *fetcher.ContentFetcher
	Exporter *export.Exporter
	Writer   *output.Writer

	// Client is the GitHub adapter built from configuration, nil when both
	// Host and Refs were injected
	Client *github.Client
}

// DependencyOptions contains options for building Dependencies
type DependencyOptions struct {
	Config *config.Config
	Logger *utils.Logger
	DryRun bool

	// Host and Refs replace the GitHub adapters when set
	Host domain.Host
	Refs domain.RefLister

	OnProgress fetcher.ProgressFunc
	Now        func() time.Time
}

// NewDependencies wires the pipeline from configuration
func NewDependencies(opts DependencyOptions) (*Dependencies, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	host := opts.Host
	refs := opts.Refs
	var client *github.Client
	if host == nil || refs == nil {
		client = github.NewClient(github.ClientOptions{
			BaseURL:     cfg.GitHub.APIURL,
			RefPageSize: cfg.GitHub.RefPageSize,
			Timeout:     cfg.Concurrency.Timeout,
			Retrier:     NewRetrier(cfg.Retry),
			Logger:      opts.Logger,
			MaxClients:  cfg.GitHub.MaxClients,
		})
		if host == nil {
			host = client
		}
		if refs == nil {
			source := DetectRefSource(cfg.GitHub.RefSource)
			refs = CreateRefLister(source, client, cfg.GitHub.GitURL, opts.Logger)
			if refs == nil {
				return nil, fmt.Errorf("unknown reference source: %s", cfg.GitHub.RefSource)
			}
		}
	}

	return &Dependencies{
		Parser:   NewParser(cfg),
		Host:     host,
		Refs:     refs,
		Client:   client,
		Resolver: resolver.NewResolver(refs, opts.Logger),
		Trees:    tree.NewFetcher(host, opts.Logger),
		Contents: fetcher.NewContentFetcher(host, fetcher.ContentFetcherOptions{
			Workers:    cfg.Concurrency.Workers,
			Logger:     opts.Logger,
			OnProgress: opts.OnProgress,
		}),
		Exporter: export.NewExporter(export.ExporterOptions{
			Archive: export.ArchiveOptions{Method: cfg.Archive.Method, Level: cfg.Archive.Level},
			Logger:  opts.Logger,
			Now:     opts.Now,
		}),
		Writer: output.NewWriter(output.WriterOptions{
			BaseDir:   cfg.Output.Directory,
			Overwrite: cfg.Output.Overwrite,
			Metadata:  cfg.Output.Metadata,
			DryRun:    opts.DryRun,
			Logger:    opts.Logger,
		}),
	}, nil
}

// NewRetrier builds the retry policy. A zero max_retries disables retries.
func NewRetrier(cfg config.RetryConfig) *fetcher.Retrier {
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}
	return fetcher.NewRetrier(fetcher.RetrierOptions{
		MaxRetries:      maxRetries,
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
	})
}
