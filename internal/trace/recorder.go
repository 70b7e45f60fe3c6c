package trace

import (
	"context"
	"fmt"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
)

// ErrorMarkerPrefix prefixes an outputs entry recorded for a failed call.
const ErrorMarkerPrefix = "!error: "

// recorder appends call arguments and results to per-identity history
// lists around each delegation.
type recorder struct {
	next  Operation
	store kv.Store
}

// RecordCalls wraps op so every invocation appends its argument text to
// "<identity>:inputs" before delegating and its result text to
// "<identity>:outputs" after. A failed delegation records an error marker
// as the output, so both lists grow in lockstep and
// len(inputs) == len(outputs) holds across successes and failures alike.
func RecordCalls(op Operation, store kv.Store) Operation {
	return &recorder{next: op, store: store}
}

func (r *recorder) Identity() string {
	return r.next.Identity()
}

func (r *recorder) Invoke(ctx context.Context, call Call) (Result, error) {
	identity := r.next.Identity()

	if err := r.store.RPush(ctx, InputsKey(identity), canonical(call.Text)); err != nil {
		return Result{}, fmt.Errorf("record input: %w", err)
	}

	res, invokeErr := r.next.Invoke(ctx, call)

	output := canonical(res.Text)
	if invokeErr != nil {
		output = ErrorMarkerPrefix + canonical(invokeErr.Error())
	}
	if err := r.store.RPush(ctx, OutputsKey(identity), output); err != nil {
		if invokeErr != nil {
			return Result{}, fmt.Errorf("record output after failed call (%v): %w", invokeErr, err)
		}
		return Result{}, fmt.Errorf("record output: %w", err)
	}

	return res, invokeErr
}

// History reads the full inputs and outputs lists for identity. Absent
// lists read as empty.
func History(ctx context.Context, store kv.Store, identity string) (inputs, outputs []string, err error) {
	inputs, err = store.LRange(ctx, InputsKey(identity), 0, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("read inputs: %w", err)
	}
	outputs, err = store.LRange(ctx, OutputsKey(identity), 0, -1)
	if err != nil {
		return nil, nil, fmt.Errorf("read outputs: %w", err)
	}
	return inputs, outputs, nil
}
