package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
	"github.com/Brandonkhumalo/cachetrace/internal/testutil"
	"github.com/Brandonkhumalo/cachetrace/internal/trace"
)

// setupCache creates a facade over a fresh memory store.
func setupCache(t *testing.T, opts ...Option) (*Cache, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	c, err := New(context.Background(), store, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, store
}

func TestStore_ReturnsUUIDKey(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, String("foo"))
	require.NoError(t, err)
	// Canonical UUID string form: 36 chars with hyphens at fixed spots.
	require.Len(t, key, 36)
	assert.Equal(t, byte('-'), key[8])
	assert.Equal(t, byte('-'), key[13])

	key2, err := c.Store(ctx, String("foo"))
	require.NoError(t, err)
	assert.NotEqual(t, key, key2, "every store call generates a fresh key")
}

func TestRoundTrip_AllKinds(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	tests := []struct {
		name string
		v    Value
	}{
		{"string", String("hello world")},
		{"bytes", Bytes{0x00, 0xff, 0x10}},
		{"int", Int(-42)},
		{"float", Float(3.14159)},
		{"unicode string", String("héllo wörld")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := c.Store(ctx, tt.v)
			require.NoError(t, err)

			got, ok, err := c.Get(ctx, key, nil)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.v.Encode(), got.Encode(), "raw bytes round-trip")
		})
	}
}

func TestGet_MissingKeyIsNotAnError(t *testing.T) {
	c, _ := setupCache(t)

	v, ok, err := c.Get(context.Background(), "91e1bb79-0a34-4d28-b6e8-1ca4157c1915", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestGetString_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, String("foo"))
	require.NoError(t, err)

	s, ok, err := c.GetString(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "foo", s)
}

func TestGetString_InvalidUTF8(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, Bytes{0xff, 0xfe})
	require.NoError(t, err)

	_, _, err = c.GetString(ctx, key)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, key, de.Key)
}

func TestGetInt_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, Int(123))
	require.NoError(t, err)

	n, ok, err := c.GetInt(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(123), n)
}

func TestGetInt_NonNumeric(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, String("not a number"))
	require.NoError(t, err)

	_, _, err = c.GetInt(ctx, key)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestGetFloat_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, Float(2.718281828459045))
	require.NoError(t, err)

	f, ok, err := c.GetFloat(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2.718281828459045, f)
}

func TestGetBytes_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	key, err := c.Store(ctx, Bytes("raw\x00data"))
	require.NoError(t, err)

	b, ok, err := c.GetBytes(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("raw\x00data"), b)
}

func TestNew_FlushesExistingKeys(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	c1, err := New(ctx, store)
	require.NoError(t, err)
	key, err := c1.Store(ctx, String("survivor?"))
	require.NoError(t, err)

	// A second facade over the same store wipes the namespace.
	c2, err := New(ctx, store)
	require.NoError(t, err)

	_, ok, err := c2.Get(ctx, key, nil)
	require.NoError(t, err)
	assert.False(t, ok, "key stored before reconstruction must be gone")
}

func TestNew_PreserveDataSkipsFlush(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	c1, err := New(ctx, store)
	require.NoError(t, err)
	key, err := c1.Store(ctx, String("survivor"))
	require.NoError(t, err)

	c2, err := New(ctx, store, WithPreserveData())
	require.NoError(t, err)

	s, ok, err := c2.GetString(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "survivor", s)
}

func TestStore_WriteFailureSurfaces(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	c, err := New(ctx, store)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = c.Store(ctx, String("doomed"))
	var se *kv.StoreError
	require.ErrorAs(t, err, &se)
}

func TestStore_InstrumentedWritePath(t *testing.T) {
	c, store := setupCache(t, WithCallCount(), WithCallHistory())
	ctx := context.Background()

	k1, err := c.Store(ctx, String("foo"))
	require.NoError(t, err)
	k2, err := c.Store(ctx, Int(123))
	require.NoError(t, err)

	count, err := trace.CallCount(ctx, store, StoreIdentity)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	inputs, outputs, err := trace.History(ctx, store, StoreIdentity)
	require.NoError(t, err)
	require.Equal(t, []string{"foo", "123"}, inputs)
	require.Equal(t, []string{k1, k2}, outputs)
}

func TestGet_IsNeverInstrumented(t *testing.T) {
	c, store := setupCache(t, WithCallCount(), WithCallHistory())
	ctx := context.Background()

	key, err := c.Store(ctx, String("foo"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _, err := c.GetString(ctx, key)
		require.NoError(t, err)
	}

	count, err := trace.CallCount(ctx, store, StoreIdentity)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "reads must not advance the write counter")
}

func TestStore_InjectedKeyGenerator(t *testing.T) {
	keys := testutil.NewSequentialKeys("key")
	c, store := setupCache(t, WithKeyGenerator(keys.Next), WithCallCount(), WithCallHistory())
	ctx := context.Background()

	k1, err := c.Store(ctx, String("a"))
	require.NoError(t, err)
	k2, err := c.Store(ctx, String("b"))
	require.NoError(t, err)
	assert.Equal(t, "key-001", k1)
	assert.Equal(t, "key-002", k2)

	_, outputs, err := trace.History(ctx, store, StoreIdentity)
	require.NoError(t, err)
	assert.Equal(t, []string{"key-001", "key-002"}, outputs)
}

func TestNewValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"string", "s", String("s")},
		{"bytes", []byte("b"), Bytes("b")},
		{"int", 7, Int(7)},
		{"int64", int64(7), Int(7)},
		{"float64", 1.5, Float(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NewValue(struct{}{})
	require.Error(t, err)
}
