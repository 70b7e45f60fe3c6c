package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Backend string // overrides CACHETRACE_BACKEND when set
	Addr    string // overrides REDIS_ADDR when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cachetrace CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cachetrace",
		Short: "Instrumented client for a Redis-class key-value store",
		Long: `cachetrace stores scalar values under random keys in an external
key-value store and keeps an instrumented history of every store call:
an invocation counter plus paired input/output records that the replay
command prints back as a transcript.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "store backend (redis|memory), defaults to env")
	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", "", "redis address, defaults to env")

	// Add subcommands
	cmd.AddCommand(NewStoreCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewFlushCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// openStore builds the kv.Store from env config with flag overrides.
func openStore(ctx context.Context, opts *RootOptions) (kv.Store, error) {
	cfg, err := kv.LoadConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load store config", err)
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}

	store, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	return store, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
