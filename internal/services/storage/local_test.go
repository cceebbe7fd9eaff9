package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "recordings/2026/standup.wav"
	require.NoError(t, store.Upload(ctx, key, strings.NewReader("audio-bytes"), "audio/wav"))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))
}

func TestLocalStoreUploadReplaces(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "a.wav", strings.NewReader("first"), ""))
	require.NoError(t, store.Upload(ctx, "a.wav", strings.NewReader("second"), ""))

	data, err := store.Download(ctx, "a.wav")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStoreMissingObject(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Download(ctx, "nope.wav")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	exists, err := store.Exists(ctx, "nope.wav")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing object is a no-op
	assert.NoError(t, store.Delete(ctx, "nope.wav"))
}

func TestLocalStoreDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "gone.wav", strings.NewReader("x"), ""))
	require.NoError(t, store.Delete(ctx, "gone.wav"))

	exists, err := store.Exists(ctx, "gone.wav")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Upload(ctx, "../escape.wav", strings.NewReader("x"), "")
	assert.Error(t, err)

	_, err = store.Download(ctx, "/etc/passwd")
	assert.Error(t, err)
}
