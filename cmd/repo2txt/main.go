package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/repo2txt-go/internal/app"
	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/manifest"
	"github.com/quantmind-br/repo2txt-go/internal/tokenstore"
	"github.com/quantmind-br/repo2txt-go/internal/tree"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
	"github.com/quantmind-br/repo2txt-go/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "repo2txt [url]",
	Short: "Export files of a GitHub repository as text or zip",
	Long: `repo2txt exports selected files of a GitHub repository as a single text
document or a zip archive.

The URL may point at a branch, tag or sub-directory:
  https://github.com/owner/repo
  https://github.com/owner/repo/tree/release/v2/docs

Without --select, --include or --manifest every file is exported.`,
	Version:       version.Short(),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.repo2txt/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("token", "", "GitHub access token (stored for later runs; empty clears)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().String("ref-source", config.RefSourceAPI, "Where branches and tags are listed from (api, remote)")

	// Selection flags
	rootCmd.Flags().StringSliceP("select", "s", nil, "Files or directories to export")
	rootCmd.Flags().StringSliceP("include", "i", nil, "Glob patterns of files to add")
	rootCmd.Flags().StringSliceP("exclude", "e", nil, "Glob patterns of files to remove")
	rootCmd.Flags().StringP("manifest", "m", "", "Selection manifest (.yaml, .yml or .json)")
	rootCmd.Flags().Bool("list", false, "Print the directory structure and exit")
	rootCmd.Flags().Bool("fail-on-truncated", false, "Fail when the repository tree is truncated")

	// Output flags
	rootCmd.Flags().StringP("format", "f", config.DefaultFormat, "Export format (text, zip)")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Output directory")
	rootCmd.Flags().Bool("stdout", false, "Write the export to standard output")
	rootCmd.Flags().Bool("keep-errors", false, "Keep placeholders for files that could not be fetched")
	rootCmd.Flags().Bool("force", false, "Overwrite existing files")
	rootCmd.Flags().Bool("json-meta", false, "Write a JSON record next to the export")
	rootCmd.Flags().Bool("dry-run", false, "Fetch and build without writing files")
	rootCmd.Flags().IntP("concurrency", "j", config.DefaultWorkers, "Number of concurrent file requests")

	// Bind flags to viper
	_ = viper.BindPFlag("concurrency.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("github.ref_source", rootCmd.PersistentFlags().Lookup("ref-source"))
	_ = viper.BindPFlag("output.format", rootCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.directory", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.keep_errors", rootCmd.Flags().Lookup("keep-errors"))
	_ = viper.BindPFlag("output.overwrite", rootCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("output.metadata", rootCmd.Flags().Lookup("json-meta"))
	_ = viper.BindPFlag("concurrency.workers", rootCmd.Flags().Lookup("concurrency"))

	// Add subcommands
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// actionError is a failed action rendered with its checklist
type actionError struct {
	stage app.Stage
	err   error
}

func (e *actionError) Error() string {
	return app.FormatError(e.stage, e.err)
}

func (e *actionError) Unwrap() error {
	return e.err
}

func newLogger(cfg *config.Config) *utils.Logger {
	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	return utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if log != nil {
				log.Info().Msg("Shutting down gracefully...")
			}
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// resolveToken applies the --token flag to the credential store and returns
// the token for this run. A store that cannot be opened only loses
// persistence.
func resolveToken(cmd *cobra.Command, cfg *config.Config) string {
	flag, _ := cmd.Flags().GetString("token")
	changed := cmd.Flags().Changed("token")

	store, err := tokenstore.NewBadgerStore(tokenstore.Options{
		Directory: cfg.State.Directory,
		Logger:    log,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Token store unavailable, token will not be remembered")
		return flag
	}
	defer store.Close()

	token, err := app.ResolveToken(store, flag, changed)
	if err != nil {
		log.Warn().Err(err).Msg("Could not use stored token")
		return flag
	}
	return token
}

func run(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = newLogger(cfg)

	// Check if URL was provided
	if len(args) == 0 {
		return cmd.Help()
	}
	url := args[0]

	// Manifest options fill in what flags left unset
	var sel *manifest.Config
	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		sel, err = manifest.NewLoader().Load(path)
		if err != nil {
			return err
		}
		if err := applyManifestOptions(cmd, cfg, sel); err != nil {
			return err
		}
	}

	format := cfg.ExportFormat()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	listOnly, _ := cmd.Flags().GetBool("list")
	failOnTruncated, _ := cmd.Flags().GetBool("fail-on-truncated")

	token := resolveToken(cmd, cfg)

	ctx, cancel := signalContext()
	defer cancel()

	progress := newFetchProgress(!verbose && !toStdout)
	defer progress.Finish()

	// Create orchestrator
	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:     cfg,
		Verbose:    verbose,
		DryRun:     dryRun,
		Logger:     log,
		OnProgress: progress.Update,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, app.StatusFetchingStructure)

	listing, err := orchestrator.Load(ctx, url, token)
	if err != nil {
		return &actionError{stage: app.StageLoad, err: err}
	}
	fmt.Fprintln(stderr, app.WithWarnings(app.StatusLoaded, listing.Warnings))

	if listing.Truncated && failOnTruncated {
		return domain.ErrTreeTruncated
	}

	if listOnly {
		fmt.Fprint(cmd.OutOrStdout(), tree.Render(pathsOf(listing.Files())))
		return nil
	}

	paths, _ := cmd.Flags().GetStringSlice("select")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	stage := app.StageFor(format)
	model, err := app.BuildSelection(listing, app.SelectionOptions{
		Paths:    paths,
		Include:  include,
		Exclude:  exclude,
		Manifest: sel,
	})
	if err != nil {
		return &actionError{stage: stage, err: err}
	}

	if format == domain.FormatArchive {
		fmt.Fprintln(stderr, app.StatusGeneratingArchive)
	} else {
		fmt.Fprintln(stderr, app.StatusGeneratingText)
	}

	result, err := orchestrator.Export(ctx, listing, model.Selected(), app.ExportOptions{
		Format:     format,
		KeepErrors: cfg.Output.KeepErrors,
	}, token)
	progress.Finish()
	if err != nil {
		return &actionError{stage: stage, err: err}
	}

	if toStdout {
		return orchestrator.Stream(cmd.OutOrStdout(), result)
	}

	path, err := orchestrator.Save(ctx, result)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &actionError{stage: stage, err: err}
	}

	status := fmt.Sprintf("Export written to %s", path)
	switch {
	case dryRun:
		status = fmt.Sprintf("Dry run: %s would be written (%d files)", path, result.Artifact.Entries)
	case format == domain.FormatArchive:
		status = app.StatusArchiveDone + " " + path
	}
	fmt.Fprintln(stderr, app.WithWarnings(status, result.Warnings))
	return nil
}

// applyManifestOptions copies manifest options into cfg for every setting
// not given on the command line
func applyManifestOptions(cmd *cobra.Command, cfg *config.Config, sel *manifest.Config) error {
	opts := sel.Options
	if opts.Format != "" && !cmd.Flags().Changed("format") {
		format, err := domain.ParseExportFormat(opts.Format)
		if err != nil {
			return err
		}
		cfg.Output.Format = string(format)
	}
	if opts.KeepErrors != nil && !cmd.Flags().Changed("keep-errors") {
		cfg.Output.KeepErrors = *opts.KeepErrors
	}
	if opts.Output != "" && !cmd.Flags().Changed("output") {
		cfg.Output.Directory = opts.Output
	}
	return nil
}

func pathsOf(entries []domain.TreeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
