package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/repo2txt-go/internal/app"
	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the export API over HTTP",
	Long: `Starts an HTTP API for front-ends. Each client creates a session, submits
a repository URL and exports files from the resulting listing.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("address", config.DefaultServerAddress, "Listen address")
	serveCmd.Flags().Duration("session-ttl", config.DefaultSessionTTL, "Idle time before a session is discarded")

	_ = viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("server.session_ttl", serveCmd.Flags().Lookup("session-ttl"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = newLogger(cfg)

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:  cfg,
		Verbose: verbose,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	srv, err := server.New(server.Options{
		Config:       cfg,
		Orchestrator: orchestrator,
		Logger:       log,
		Token:        resolveToken(cmd, cfg),
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return srv.Run(ctx)
}
