package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/whiplash-bot/internal/store"
	"github.com/Spok95/whiplash-bot/internal/store/memory"
)

func TestLoadJSONMissingKey(t *testing.T) {
	kv := memory.New()
	var v []string
	found, err := store.LoadJSON(context.Background(), kv, "nothing", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()

	type rec struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	want := []rec{{"a", 1}, {"b", 2}}
	require.NoError(t, store.SaveJSON(ctx, kv, "recs", want))

	var got []rec
	found, err := store.LoadJSON(ctx, kv, "recs", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestLoadJSONMalformed(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "recs", "{broken"))

	var got []string
	_, err := store.LoadJSON(ctx, kv, "recs", &got)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
