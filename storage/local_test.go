package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreLoadNotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Load(context.Background(), RecordsPath)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreSaveThenLoad(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	content := []byte(`[{"id":"1"}]`)
	sha, err := store.Save(ctx, RecordsPath, content, "")
	require.NoError(t, err)
	assert.Equal(t, BlobSHA(content), sha)

	doc, err := store.Load(ctx, RecordsPath)
	require.NoError(t, err)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, sha, doc.SHA)
}

func TestLocalStoreStaleTokenRejected(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	sha, err := store.Save(ctx, RecordsPath, []byte(`[]`), "")
	require.NoError(t, err)

	// Penulis lain maju duluan.
	_, err = store.Save(ctx, RecordsPath, []byte(`[{"id":"x"}]`), sha)
	require.NoError(t, err)

	// Token lama sekarang basi.
	_, err = store.Save(ctx, RecordsPath, []byte(`[{"id":"y"}]`), sha)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestLocalStoreCreateWithTokenRejected(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Save(context.Background(), RecordsPath, []byte(`[]`), "deadbeef")
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestLocalStoreDelete(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Save(ctx, SettingsPath, []byte(`{}`), "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, SettingsPath))
	_, err = store.Load(ctx, SettingsPath)
	assert.ErrorIs(t, err, ErrNotFound)

	// Menghapus yang sudah tidak ada bukan error.
	assert.NoError(t, store.Delete(ctx, SettingsPath))
}

func TestBlobSHAMatchesGitBlobFormat(t *testing.T) {
	// sha1("blob 0\x00") adalah hash blob kosong milik git.
	assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", BlobSHA(nil))
}
