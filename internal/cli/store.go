package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Brandonkhumalo/cachetrace/internal/cache"
)

// ValueKinds are the names accepted by --kind and by run-script steps.
var ValueKinds = []string{"str", "int", "float", "bytes"}

// StoreOptions holds flags for the store command.
type StoreOptions struct {
	*RootOptions
	Kind  string
	Fresh bool
}

// StoreResult is the JSON payload for a successful store.
type StoreResult struct {
	Key string `json:"key"`
}

// NewStoreCommand creates the store command.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "store <value>",
		Short: "Store a value under a fresh random key",
		Long: `Store a scalar value in the external store under a freshly generated
random key and print the key. The write is instrumented: the call counter
and call history for later replay are updated in the store.

By default existing data is preserved so repeated invocations build up
history; pass --fresh to flush the namespace first.

Examples:
  cachetrace store foo
  cachetrace store 123 --kind int
  cachetrace store 2.5 --kind float --fresh`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "str", "value kind (str|int|float|bytes)")
	cmd.Flags().BoolVar(&opts.Fresh, "fresh", false, "flush the namespace before storing")

	return cmd
}

func runStore(opts *StoreOptions, cmd *cobra.Command, raw string) error {
	ctx := context.Background()

	value, err := parseValue(opts.Kind, raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid value", err)
	}

	store, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer store.Close()

	cacheOpts := []cache.Option{cache.WithCallCount(), cache.WithCallHistory()}
	if !opts.Fresh {
		cacheOpts = append(cacheOpts, cache.WithPreserveData())
	}

	c, err := cache.New(ctx, store, cacheOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize cache", err)
	}

	key, err := c.Store(ctx, value)
	if err != nil {
		return WrapExitError(ExitFailure, "store failed", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   StoreResult{Key: key},
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), key)
	return nil
}

// parseValue converts a raw command-line string into a typed cache.Value.
func parseValue(kind, raw string) (cache.Value, error) {
	switch kind {
	case "str":
		return cache.String(raw), nil
	case "bytes":
		return cache.Bytes(raw), nil
	case "int":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer: %w", raw, err)
		}
		return cache.Int(n), nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a float: %w", raw, err)
		}
		return cache.Float(f), nil
	default:
		return nil, fmt.Errorf("unknown kind %q: must be one of %v", kind, ValueKinds)
	}
}
