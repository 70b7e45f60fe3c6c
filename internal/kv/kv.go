package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that a key has no value in the store.
// Callers that treat absence as a normal result (the cache facade does)
// must check for it with errors.Is before classifying a Get failure.
var ErrNotFound = errors.New("kv: key not found")

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// CodeConnection indicates the store could not be reached, either at
	// open time or mid-call.
	CodeConnection ErrorCode = "CONNECTION"

	// CodeWrite indicates a mutating operation (set, incr, rpush, flush)
	// failed on the server.
	CodeWrite ErrorCode = "WRITE"

	// CodeRead indicates a read operation (get, lrange) failed on the
	// server. Absent keys are ErrNotFound, not a read error.
	CodeRead ErrorCode = "READ"
)

// StoreError is a failure reported by the underlying store.
type StoreError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Op is the store operation that failed ("set", "incr", ...).
	Op string

	// Key is the affected key, empty for whole-store operations.
	Key string

	// Err is the underlying client error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("kv %s: %s %q: %v", e.Code, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("kv %s: %s: %v", e.Code, e.Op, e.Err)
}

// Unwrap exposes the underlying client error for errors.Is/As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsConnectionError returns true if err is a StoreError with CodeConnection.
func IsConnectionError(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodeConnection
}

// Store is the set of operations this system issues against the external
// key-value store. Implementations must be safe for use from multiple
// goroutines; each call is individually atomic, sequences of calls are not.
type Store interface {
	// FlushAll removes every key in the targeted namespace.
	FlushAll(ctx context.Context) error

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Incr atomically increments the integer value at key by one,
	// treating an absent key as zero, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// RPush appends value to the tail of the list at key, creating the
	// list if absent.
	RPush(ctx context.Context, key string, value string) error

	// LRange returns the list elements between start and stop inclusive.
	// Negative indices count from the tail; (0, -1) is the whole list.
	// An absent key yields an empty slice, not an error.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Close releases the client's resources.
	Close() error
}
