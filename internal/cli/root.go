// Package cli implements the wildmenipedia operator commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"wildmenipedia/internal/app"
	"wildmenipedia/internal/config"
)

var (
	// loadConfig and newApp are replaced in tests.
	loadConfig = config.Load
	newApp     = app.New
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "wildmenipedia",
		Short: "Hybrid knowledge-graph question answering",
		Long: `wildmenipedia answers questions by resolving them to knowledge-graph
entities through vector search, ranking the facts around those entities
and citing supporting web pages.

The commands use the same environment configuration as the API server.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if verbose {
				cfg.LogLevel = slog.LevelDebug
			}
			app.SetupLogging(cfg)
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newAskCommand(), newIngestCommand(), newFetchCommand())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// openApp builds the stores and engine for commands that need them.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := configFrom(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
