package trace

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
)

// Call describes one invocation of an instrumented operation. The caller
// constructs it explicitly; wrappers never reflect over argument tuples.
type Call struct {
	// Payload is the raw bytes handed to the underlying store write.
	Payload []byte

	// Text is the canonical text rendering of the call's arguments,
	// recorded in the inputs history.
	Text string
}

// Result is the outcome of an instrumented call.
type Result struct {
	// Text is the operation's result in text form (for a store write,
	// the generated key). Recorded in the outputs history.
	Text string
}

// Operation is a single instrumentable operation bound to a store.
// Implementations must be safe for concurrent use if their underlying
// store is.
type Operation interface {
	// Identity is the stable string that namespaces this operation's
	// counter and history keys. It never changes for a given operation.
	Identity() string

	// Invoke runs the operation.
	Invoke(ctx context.Context, call Call) (Result, error)
}

// InputsKey returns the store key holding the recorded inputs for identity.
func InputsKey(identity string) string {
	return identity + ":inputs"
}

// OutputsKey returns the store key holding the recorded outputs for identity.
func OutputsKey(identity string) string {
	return identity + ":outputs"
}

// canonical renders s in NFC form so visually identical text records
// identically regardless of the caller's normalization.
func canonical(s string) string {
	return norm.NFC.String(s)
}

// Compose chains the requested wrappers around base: the recorder is
// outermost, then the counter, then base. With both flags false the base
// operation is returned unchanged.
func Compose(base Operation, store kv.Store, countCalls, recordCalls bool) Operation {
	op := base
	if countCalls {
		op = CountCalls(op, store)
	}
	if recordCalls {
		op = RecordCalls(op, store)
	}
	return op
}
