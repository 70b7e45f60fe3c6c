// Package trace layers call instrumentation onto store-backed operations
// without the caller's involvement.
//
// An Operation is anything with a stable string identity and an
// Invoke(ctx, Call) (Result, error) method. Two wrappers compose around a
// base Operation:
//
//   - CountCalls increments a counter in the store under the operation's
//     identity key before every delegation. Fire-and-forget: the counter is
//     not rolled back when the wrapped call fails.
//   - RecordCalls appends the call's argument text to "<identity>:inputs"
//     before delegating and the result text to "<identity>:outputs" after.
//     A failed call records "!error: <message>" as its output, so the two
//     lists always stay the same length.
//
// The stock composition is recorder outside counter outside the raw write:
// recording brackets counting brackets the actual store operation.
//
// Replay reads the counter and both lists back and prints a transcript,
// one line per paired input/output, for diagnostics.
//
// No atomicity holds across the wrapper's store calls: concurrent callers
// can interleave an increment with another caller's appends. Each store
// call is atomic on its own; the pair is not transactional.
package trace
