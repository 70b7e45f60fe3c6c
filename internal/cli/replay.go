package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Brandonkhumalo/cachetrace/internal/cache"
	"github.com/Brandonkhumalo/cachetrace/internal/trace"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Identity string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Print the recorded call history as a transcript",
		Long: `Print the transcript of an instrumented operation's call history: a
header with the total invocation count, then one line per recorded
input/output pair in call order.

Reads the history as it stands; no facade is constructed and nothing is
flushed or written.

Examples:
  cachetrace replay
  cachetrace replay --identity cache.Store`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Identity, "identity", cache.StoreIdentity, "operation identity to replay")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	store, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := trace.ReplayIdentity(ctx, cmd.OutOrStdout(), store, opts.Identity); err != nil {
		return WrapExitError(ExitFailure, "replay failed", err)
	}
	return nil
}
