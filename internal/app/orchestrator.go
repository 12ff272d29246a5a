package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/fetcher"
	"github.com/quantmind-br/repo2txt-go/internal/output"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

const instrName = "github.com/quantmind-br/repo2txt-go/internal/app"

// Orchestrator coordinates loading a repository listing and exporting a
// selection of its files
type Orchestrator struct {
	config *config.Config
	deps   *Dependencies
	logger *utils.Logger
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config  *config.Config
	Verbose bool
	DryRun  bool
	// Logger overrides the logger built from Config
	Logger *utils.Logger

	// Host and RefLister replace the GitHub adapters when set
	Host      domain.Host
	RefLister domain.RefLister

	OnProgress fetcher.ProgressFunc
	Now        func() time.Time
}

// ExportOptions controls one export
type ExportOptions struct {
	Format     domain.ExportFormat
	KeepErrors bool
}

// ExportResult is a built artifact and what went into it
type ExportResult struct {
	Artifact *domain.ExportArtifact
	// Contents holds every fetched file, error entries included
	Contents []domain.FetchedContent
	Failures []error
	Warnings []string
	Record   *output.Record
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := "info"
		logFormat := "pretty"
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: opts.Verbose,
		})
	}

	deps, err := NewDependencies(DependencyOptions{
		Config:     cfg,
		Logger:     logger,
		DryRun:     opts.DryRun,
		Host:       opts.Host,
		Refs:       opts.RefLister,
		OnProgress: opts.OnProgress,
		Now:        opts.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dependencies: %w", err)
	}

	return &Orchestrator{
		config: cfg,
		deps:   deps,
		logger: logger,
	}, nil
}

// Dependencies returns the wired pipeline components
func (o *Orchestrator) Dependencies() *Dependencies {
	return o.deps
}

// Logger returns the orchestrator's logger
func (o *Orchestrator) Logger() *utils.Logger {
	return o.logger
}

// Load parses rawURL, resolves its fragment and lists the files found
// there. A reference listing failure is reported as a warning on the
// listing, never as an error.
func (o *Orchestrator) Load(ctx context.Context, rawURL, token string) (*domain.Listing, error) {
	ctx, span := otel.Tracer(instrName).Start(ctx, "Load",
		trace.WithAttributes(attribute.Bool("auth", token != "")),
	)
	defer span.End()

	startTime := time.Now()

	loc, err := o.deps.Parser.Parse(rawURL)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("repo.owner", loc.Owner),
		attribute.String("repo.name", loc.Repo),
		attribute.String("repo.fragment", loc.Fragment),
	)

	log := o.logger.WithRepository(loc.FullName())
	log.Info().Str("fragment", loc.Fragment).Msg("Loading repository structure")

	result := o.deps.Resolver.Resolve(ctx, loc, token)
	span.SetAttributes(
		attribute.String("repo.ref", result.Location.Ref),
		attribute.String("repo.path", result.Location.Path),
	)

	listing, err := o.deps.Trees.List(ctx, loc, result.Location, token)
	if err != nil {
		recordError(span, err)
		if ctx.Err() != nil {
			log.Warn().Msg("Load cancelled")
			return nil, ctx.Err()
		}
		return nil, err
	}

	if result.Degraded != nil {
		listing.Warnings = append([]string{result.Degraded.Error()}, listing.Warnings...)
	}
	span.SetAttributes(
		attribute.Int("tree.entries", len(listing.Entries)),
		attribute.Bool("tree.truncated", listing.Truncated),
	)

	log.Info().
		Str("ref", listing.Location.Ref).
		Str("path", listing.Location.Path).
		Int("entries", len(listing.Entries)).
		Bool("truncated", listing.Truncated).
		Dur("duration", time.Since(startTime)).
		Msg("Repository structure loaded")

	return listing, nil
}

// Export fetches files of listing and builds the artifact. Failed files
// are dropped unless opts.KeepErrors is set. An empty selection fails
// before any request is made.
func (o *Orchestrator) Export(ctx context.Context, listing *domain.Listing, files []domain.TreeEntry, opts ExportOptions, token string) (*ExportResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if listing == nil {
		return nil, fmt.Errorf("no repository loaded")
	}
	if opts.Format == "" {
		opts.Format = o.config.ExportFormat()
	}

	ctx, span := otel.Tracer(instrName).Start(ctx, "Export",
		trace.WithAttributes(
			attribute.String("repo", listing.Locator.FullName()),
			attribute.String("format", string(opts.Format)),
			attribute.Int("files", len(files)),
		),
	)
	defer span.End()

	startTime := time.Now()
	log := o.logger.WithRepository(listing.Locator.FullName())
	log.Info().
		Int("files", len(files)).
		Str("format", string(opts.Format)).
		Int("concurrency", o.config.Concurrency.Workers).
		Msg("Fetching file contents")

	contents := o.deps.Contents.FetchAll(ctx, listing.Locator, files, token)
	if ctx.Err() != nil {
		recordError(span, ctx.Err())
		log.Warn().Msg("Export cancelled")
		return nil, ctx.Err()
	}

	failures := fetcher.Failures(contents)
	for _, f := range failures {
		log.Warn().Err(f).Msg("File could not be fetched")
	}

	exported := contents
	if !opts.KeepErrors {
		exported = domain.DropErrors(contents)
	}

	artifact, err := o.deps.Exporter.Export(listing.Locator.Repo, listing.Location.Ref, exported, opts.Format)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	result := &ExportResult{
		Artifact: artifact,
		Contents: contents,
		Failures: failures,
		Record:   output.NewRecord(listing, contents, artifact),
	}
	for _, c := range contents {
		if c.Warning != "" {
			result.Warnings = append(result.Warnings, c.Warning)
		}
	}
	if len(failures) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d files could not be fetched", len(failures), len(contents)))
	}

	span.SetAttributes(
		attribute.Int("export.entries", artifact.Entries),
		attribute.Int("export.failures", len(failures)),
		attribute.Int("export.bytes", len(artifact.Data)),
	)
	log.Info().
		Str("filename", artifact.Filename).
		Int("entries", artifact.Entries).
		Int("failed", len(failures)).
		Dur("duration", time.Since(startTime)).
		Msg("Export completed")

	return result, nil
}

// Save writes the artifact to the output directory
func (o *Orchestrator) Save(ctx context.Context, result *ExportResult) (string, error) {
	return o.deps.Writer.Write(ctx, result.Artifact, result.Record)
}

// Stream writes the artifact bytes to w
func (o *Orchestrator) Stream(w io.Writer, result *ExportResult) error {
	return o.deps.Writer.WriteTo(w, result.Artifact)
}

// Close releases the cached GitHub API clients and their idle connections
func (o *Orchestrator) Close() error {
	if o.deps.Client == nil {
		return nil
	}
	return o.deps.Client.Close()
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
