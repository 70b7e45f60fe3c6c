package testutil

import (
	"fmt"
	"sync"
)

// SequentialKeys is a deterministic replacement for the random UUID key
// source, for tests and golden files that need stable keys.
//
// Thread-safety: Next is safe for concurrent use via internal mutex.
type SequentialKeys struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialKeys creates a generator producing "<prefix>-001",
// "<prefix>-002", and so on.
func NewSequentialKeys(prefix string) *SequentialKeys {
	return &SequentialKeys{prefix: prefix}
}

// Next returns the next key in sequence.
func (k *SequentialKeys) Next() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.n++
	return fmt.Sprintf("%s-%03d", k.prefix, k.n)
}
