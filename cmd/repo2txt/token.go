package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/repo2txt-go/internal/config"
	"github.com/quantmind-br/repo2txt-go/internal/tokenstore"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored GitHub access token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store a token for later runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *tokenstore.BadgerStore) error {
			if err := store.Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token stored (%s)\n", tokenstore.Mask(args[0]))
			return nil
		})
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *tokenstore.BadgerStore) error {
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token cleared")
			return nil
		})
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored token, masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *tokenstore.BadgerStore) error {
			token, err := store.Load()
			if err != nil {
				return err
			}
			if token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No token stored")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), tokenstore.Mask(token))
			return nil
		})
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd, tokenShowCmd)
}

// withStore opens the token store from configuration for the duration of fn
func withStore(fn func(store *tokenstore.BadgerStore) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := tokenstore.NewBadgerStore(tokenstore.Options{Directory: cfg.State.Directory})
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}
