package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
	"github.com/Brandonkhumalo/cachetrace/internal/trace"
)

// StoreIdentity is the stable identity string of the facade's write
// operation. The instrumentation counter lives under this key, the
// recorded histories under "<identity>:inputs" and "<identity>:outputs".
const StoreIdentity = "cache.Store"

// Cache is the facade over the external key-value store.
type Cache struct {
	store   kv.Store
	keyFunc func() string
	storeOp trace.Operation
}

type options struct {
	preserveData bool
	countCalls   bool
	recordCalls  bool
	keyFunc      func() string
}

// Option configures a Cache at construction.
type Option func(*options)

// WithPreserveData skips the namespace flush New performs by default.
func WithPreserveData() Option {
	return func(o *options) { o.preserveData = true }
}

// WithCallCount wraps the write path with the invocation counter.
func WithCallCount() Option {
	return func(o *options) { o.countCalls = true }
}

// WithCallHistory wraps the write path with the call recorder. When
// combined with WithCallCount, recording brackets counting.
func WithCallHistory() Option {
	return func(o *options) { o.recordCalls = true }
}

// WithKeyGenerator replaces the random UUID key source. Tests use this for
// deterministic keys; production code has no reason to.
func WithKeyGenerator(fn func() string) Option {
	return func(o *options) { o.keyFunc = fn }
}

// New creates a Cache over store. Unless WithPreserveData is given it
// synchronously flushes every key in the store's namespace first - a
// destructive, unscoped side effect the caller opts into by constructing
// the facade.
func New(ctx context.Context, store kv.Store, opts ...Option) (*Cache, error) {
	o := options{keyFunc: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.preserveData {
		if err := store.FlushAll(ctx); err != nil {
			return nil, fmt.Errorf("flush store: %w", err)
		}
		slog.Debug("store namespace flushed")
	}

	c := &Cache{store: store, keyFunc: o.keyFunc}
	c.storeOp = trace.Compose(storeWrite{c}, store, o.countCalls, o.recordCalls)
	return c, nil
}

// storeWrite is the raw, uninstrumented write operation: generate a fresh
// key, write the payload, return the key.
type storeWrite struct {
	c *Cache
}

func (storeWrite) Identity() string {
	return StoreIdentity
}

func (w storeWrite) Invoke(ctx context.Context, call trace.Call) (trace.Result, error) {
	key := w.c.keyFunc()
	if err := w.c.store.Set(ctx, key, call.Payload); err != nil {
		return trace.Result{}, err
	}
	slog.Debug("value stored", "key", key, "bytes", len(call.Payload))
	return trace.Result{Text: key}, nil
}

// Store writes v under a fresh random key and returns the key. The write
// passes through whichever instrumentation wrappers the facade was built
// with; retrieval operations are never instrumented.
func (c *Cache) Store(ctx context.Context, v Value) (string, error) {
	res, err := c.storeOp.Invoke(ctx, trace.Call{
		Payload: v.Encode(),
		Text:    v.Text(),
	})
	if err != nil {
		return "", fmt.Errorf("store value: %w", err)
	}
	return res.Text, nil
}

// Get reads the value at key. An absent key returns (nil, false, nil),
// never an error. With a nil decoder the raw bytes are returned as Bytes;
// otherwise decode is applied and its failure surfaces as a DecodeError.
func (c *Cache) Get(ctx context.Context, key string, decode Decoder) (Value, bool, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}

	if decode == nil {
		return Bytes(data), true, nil
	}

	v, err := decode(data)
	if err != nil {
		return nil, false, &DecodeError{Key: key, Err: err}
	}
	return v, true, nil
}

// GetBytes reads the raw bytes at key.
func (c *Cache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := c.Get(ctx, key, nil)
	if err != nil || !ok {
		return nil, ok, err
	}
	return v.(Bytes), true, nil
}

// GetString reads the value at key as UTF-8 text. Fails with DecodeError
// on invalid UTF-8.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := c.Get(ctx, key, DecodeString)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(v.(String)), true, nil
}

// GetInt reads the value at key as a decimal integer. Fails with
// DecodeError on non-numeric content.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	v, ok, err := c.Get(ctx, key, DecodeInt)
	if err != nil || !ok {
		return 0, ok, err
	}
	return int64(v.(Int)), true, nil
}

// GetFloat reads the value at key as a decimal floating point number.
func (c *Cache) GetFloat(ctx context.Context, key string) (float64, bool, error) {
	v, ok, err := c.Get(ctx, key, DecodeFloat)
	if err != nil || !ok {
		return 0, ok, err
	}
	return float64(v.(Float)), true, nil
}

// StoreOp exposes the instrumented write operation for the replay utility.
func (c *Cache) StoreOp() trace.Operation {
	return c.storeOp
}

// Close releases the underlying store handle.
func (c *Cache) Close() error {
	return c.store.Close()
}
