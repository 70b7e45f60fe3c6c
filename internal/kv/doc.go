// Package kv is the client-side abstraction over the external key-value
// store. It exposes exactly the six store operations the rest of the
// system issues (flush-all, set, get, increment, list-append, list-range)
// behind a single Store interface.
//
// Two implementations are provided:
//   - Redis: production adapter over go-redis/v9.
//   - Memory: in-process implementation with matching semantics, used by
//     tests and the CLI's memory backend.
//
// Absent keys are reported with ErrNotFound; all other failures are
// StoreError values carrying an ErrorCode (CONNECTION, WRITE, READ) so
// callers can classify without string matching.
//
// This package is a pure client. It implements no storage, no wire
// protocol, and makes no durability promises beyond what the server gives.
package kv
