package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brandonkhumalo/cachetrace/internal/cache"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	As string
}

// GetResult is the JSON payload for a get.
type GetResult struct {
	Key   string `json:"key"`
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch a stored value by key",
		Long: `Fetch the value stored under a key, optionally coercing it to a type.
A missing key is reported as not found, not as an error. Reads are never
instrumented.

Examples:
  cachetrace get 4b3a... --as str
  cachetrace get 4b3a... --as int`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "raw", "decode the value as (raw|str|int|float)")

	return cmd
}

func runGet(opts *GetOptions, cmd *cobra.Command, key string) error {
	ctx := context.Background()

	decoder, err := decoderFor(opts.As)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --as", err)
	}

	store, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer store.Close()

	c, err := cache.New(ctx, store, cache.WithPreserveData())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize cache", err)
	}

	value, found, err := c.Get(ctx, key, decoder)
	if err != nil {
		return WrapExitError(ExitFailure, "get failed", err)
	}

	if opts.Format == "json" {
		result := GetResult{Key: key, Found: found}
		if found {
			result.Value = value.Text()
		}
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}

	if !found {
		fmt.Fprintln(cmd.OutOrStdout(), "(not found)")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), value.Text())
	return nil
}

// decoderFor maps an --as name to a cache.Decoder; raw means no decoding.
func decoderFor(as string) (cache.Decoder, error) {
	switch as {
	case "raw":
		return nil, nil
	case "str":
		return cache.DecodeString, nil
	case "int":
		return cache.DecodeInt, nil
	case "float":
		return cache.DecodeFloat, nil
	default:
		return nil, fmt.Errorf("unknown decoding %q: must be raw, str, int, or float", as)
	}
}
