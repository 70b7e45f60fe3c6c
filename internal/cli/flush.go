package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewFlushCommand creates the flush command.
func NewFlushCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Flush every key in the store namespace",
		Long: `Remove every key in the targeted store namespace, including stored
values, counters, and recorded history. Destructive and unscoped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := openStore(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.FlushAll(ctx); err != nil {
				return WrapExitError(ExitFailure, "flush failed", err)
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "flushed")
			return nil
		},
	}
	return cmd
}
