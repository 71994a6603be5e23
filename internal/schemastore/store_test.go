package schemastore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "schema.db"),
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLatestOnEmptyStore(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	groups, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.NotNil(t, groups)
}

func TestPutNormalisesWrappedPayloads(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	bare := testsupport.ContactPayload(t)
	first, err := store.Put(ctx, bare)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, 2, first.Fieldsets)

	wrapped := append(append([]byte(`{"data":`), bare...), '}')
	second, err := store.Put(ctx, wrapped)
	require.NoError(t, err)
	assert.Equal(t, first.Payload, second.Payload, "wrapped payloads are stored bare")

	latest, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, wire.ToWire(testsupport.ContactForm()), latest.Groups)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 2, 0, 0, time.UTC), latest.CreatedAt)

	_, err = store.Put(ctx, []byte(`"nope"`))
	assert.ErrorIs(t, err, wire.ErrUnexpectedPayload)
}

func TestHistoryAndPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Push(ctx, wire.ToWire(testsupport.ContactForm()[:i])))
	}

	history, err := store.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{history[0].ID, history[1].ID, history[2].ID})
	assert.Equal(t, 2, history[0].Fieldsets)
	assert.Nil(t, history[0].Payload)

	limited, err := store.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	removed, err := store.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, ok, err := store.Revision(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	rev, ok, err := store.Revision(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, rev.Groups, 2)
}

func TestOpenIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.db")
	first, err := Open(context.Background(), path)
	require.NoError(t, err)

	_, err = Open(context.Background(), path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Close())
	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, second.Close())

	_, _, err = second.Latest(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
