package kv

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Memory is an in-process Store with the same per-operation semantics as
// the Redis adapter. It backs tests and the CLI's memory backend.
//
// Like the real server, each operation is atomic but sequences of
// operations are not; the mutex scope is a single call.
type Memory struct {
	mu      sync.RWMutex
	strings map[string][]byte
	lists   map[string][]string
	closed  bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		strings: make(map[string][]byte),
		lists:   make(map[string][]string),
	}
}

// FlushAll removes every key.
func (m *Memory) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &StoreError{Code: CodeConnection, Op: "flushall", Err: errClosed}
	}
	m.strings = make(map[string][]byte)
	m.lists = make(map[string][]string)
	return nil
}

// Set writes value under key.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &StoreError{Code: CodeConnection, Op: "set", Key: key, Err: errClosed}
	}
	// Copy so callers can reuse their buffer.
	buf := make([]byte, len(value))
	copy(buf, value)
	m.strings[key] = buf
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &StoreError{Code: CodeConnection, Op: "get", Key: key, Err: errClosed}
	}
	value, ok := m.strings[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, nil
}

// Incr increments the integer at key, treating absence as zero. A value
// that does not parse as an integer fails with CodeWrite, matching the
// server's "value is not an integer" error.
func (m *Memory) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, &StoreError{Code: CodeConnection, Op: "incr", Key: key, Err: errClosed}
	}
	var n int64
	if raw, ok := m.strings[key]; ok {
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, &StoreError{
				Code: CodeWrite,
				Op:   "incr",
				Key:  key,
				Err:  fmt.Errorf("value is not an integer: %w", err),
			}
		}
		n = parsed
	}
	n++
	m.strings[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

// RPush appends value to the list at key.
func (m *Memory) RPush(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &StoreError{Code: CodeConnection, Op: "rpush", Key: key, Err: errClosed}
	}
	m.lists[key] = append(m.lists[key], value)
	return nil
}

// LRange returns list elements between start and stop inclusive, with
// negative indices counted from the tail. Out-of-range bounds are clamped;
// an absent key yields an empty slice.
func (m *Memory) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &StoreError{Code: CodeConnection, Op: "lrange", Key: key, Err: errClosed}
	}
	list := m.lists[key]
	n := int64(len(list))

	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || n == 0 {
		return []string{}, nil
	}

	out := make([]string, stop-start+1)
	copy(out, list[start:stop+1])
	return out, nil
}

// Close marks the store closed; subsequent calls fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var errClosed = fmt.Errorf("store is closed")
