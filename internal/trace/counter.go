package trace

import (
	"context"
	"fmt"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
)

// counter increments a per-identity invocation counter before delegating.
type counter struct {
	next  Operation
	store kv.Store
}

// CountCalls wraps op so every invocation first increments the counter
// stored under op's identity key. The increment is not rolled back if the
// wrapped call fails afterwards: the counter means "times invoked".
func CountCalls(op Operation, store kv.Store) Operation {
	return &counter{next: op, store: store}
}

func (c *counter) Identity() string {
	return c.next.Identity()
}

func (c *counter) Invoke(ctx context.Context, call Call) (Result, error) {
	if _, err := c.store.Incr(ctx, c.next.Identity()); err != nil {
		return Result{}, fmt.Errorf("count call: %w", err)
	}
	return c.next.Invoke(ctx, call)
}

// CallCount reads the invocation counter for identity. An absent or
// unparseable counter reads as zero.
func CallCount(ctx context.Context, store kv.Store, identity string) (int64, error) {
	raw, err := store.Get(ctx, identity)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read call count: %w", err)
	}
	return parseCount(raw), nil
}
