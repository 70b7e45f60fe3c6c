package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brandonkhumalo/cachetrace/internal/kv"
)

func TestReplay_EmptyHistory(t *testing.T) {
	store := kv.NewMemory()
	buf := &bytes.Buffer{}

	err := ReplayIdentity(context.Background(), buf, store, "op.test")
	require.NoError(t, err)
	assert.Equal(t, "op.test was called 0 times:\n", buf.String())
}

func TestReplay_TwoCalls(t *testing.T) {
	store := kv.NewMemory()
	base := &fakeOp{identity: "op.test"}
	op := Compose(base, store, true, true)
	ctx := context.Background()

	_, err := op.Invoke(ctx, Call{Text: "foo"})
	require.NoError(t, err)
	_, err = op.Invoke(ctx, Call{Text: "123"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Replay(ctx, buf, store, op))

	want := "op.test was called 2 times:\n" +
		"op.test(foo) -> result-1\n" +
		"op.test(123) -> result-2\n"
	assert.Equal(t, want, buf.String())
}

func TestReplay_TruncatesToShorterList(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	// A history written by a recorder that skipped failure outputs.
	require.NoError(t, store.RPush(ctx, InputsKey("op.test"), "a"))
	require.NoError(t, store.RPush(ctx, InputsKey("op.test"), "b"))
	require.NoError(t, store.RPush(ctx, OutputsKey("op.test"), "out-a"))

	buf := &bytes.Buffer{}
	require.NoError(t, ReplayIdentity(ctx, buf, store, "op.test"))

	want := "op.test was called 0 times:\n" +
		"op.test(a) -> out-a\n"
	assert.Equal(t, want, buf.String())
}

func TestReplay_Golden(t *testing.T) {
	store := kv.NewMemory()
	base := &fakeOp{identity: "cache.Store"}
	op := Compose(base, store, true, true)
	ctx := context.Background()

	for _, arg := range []string{"foo", "98", "bar baz", "3.5"} {
		_, err := op.Invoke(ctx, Call{Text: arg})
		require.NoError(t, err)
	}

	// One failing call in the middle of the history.
	base.fail = assert.AnError
	_, err := op.Invoke(ctx, Call{Text: "doomed"})
	require.Error(t, err)
	base.fail = nil

	_, err = op.Invoke(ctx, Call{Text: "after failure"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Replay(ctx, buf, store, op))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "replay_transcript", buf.Bytes())
}
