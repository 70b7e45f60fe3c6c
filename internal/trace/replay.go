package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
)

// Replay prints a transcript of op's recorded history to w: a header with
// the total invocation count, then one line per paired input/output entry
// in call order. Histories whose lists diverge in length (written by
// recorders that skipped failure outputs) are printed up to the shorter
// list's length.
func Replay(ctx context.Context, w io.Writer, store kv.Store, op Operation) error {
	return ReplayIdentity(ctx, w, store, op.Identity())
}

// ReplayIdentity is Replay for a bare identity string, for callers that
// hold no Operation value (the CLI reads history written by an earlier
// process).
func ReplayIdentity(ctx context.Context, w io.Writer, store kv.Store, identity string) error {
	count, err := CallCount(ctx, store, identity)
	if err != nil {
		return fmt.Errorf("replay %s: %w", identity, err)
	}

	inputs, outputs, err := History(ctx, store, identity)
	if err != nil {
		return fmt.Errorf("replay %s: %w", identity, err)
	}

	fmt.Fprintf(w, "%s was called %d times:\n", identity, count)

	pairs := len(inputs)
	if len(outputs) < pairs {
		pairs = len(outputs)
	}
	for i := 0; i < pairs; i++ {
		fmt.Fprintf(w, "%s(%s) -> %s\n", identity, inputs[i], outputs[i])
	}
	return nil
}

// parseCount interprets a raw counter value, treating garbage as zero.
func parseCount(raw []byte) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isNotFound(err error) bool {
	return errors.Is(err, kv.ErrNotFound)
}
