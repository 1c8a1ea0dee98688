package keystore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/keystore"
	"github.com/dmitrymomot/sessionkit/pkg/secrets"
)

func newTestStore(t *testing.T) *keystore.Store {
	t.Helper()

	appKey, err := secrets.GenerateKey()
	require.NoError(t, err)
	installKey, err := secrets.GenerateKey()
	require.NoError(t, err)

	store, err := keystore.New(t.TempDir(), appKey, installKey)
	require.NoError(t, err)
	return store
}

func TestSetGet_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "refreshToken", "token-value-1"))

	value, err := store.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.Equal(t, "token-value-1", value)
}

func TestSet_OverwritesPrevious(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "refreshToken", "old"))
	require.NoError(t, store.Set(ctx, "refreshToken", "new"))

	value, err := store.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Get(context.Background(), "refreshToken")
	assert.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "refreshToken", "value"))
	require.NoError(t, store.Delete(ctx, "refreshToken"))

	_, err := store.Get(ctx, "refreshToken")
	assert.ErrorIs(t, err, keystore.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "refreshToken"))
}

func TestGet_CorruptedFile(t *testing.T) {
	t.Parallel()

	appKey, err := secrets.GenerateKey()
	require.NoError(t, err)
	installKey, err := secrets.GenerateKey()
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := keystore.New(dir, appKey, installKey)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "refreshToken", "value"))

	// Flip bytes on disk to simulate corruption.
	path := filepath.Join(dir, "refreshToken.bin")
	require.NoError(t, os.WriteFile(path, []byte("garbage that is long enough"), 0o600))

	_, err = store.Get(ctx, "refreshToken")
	assert.ErrorIs(t, err, keystore.ErrReadFailed)
}

func TestValuesEncryptedAtRest(t *testing.T) {
	t.Parallel()

	appKey, err := secrets.GenerateKey()
	require.NoError(t, err)
	installKey, err := secrets.GenerateKey()
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := keystore.New(dir, appKey, installKey)
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "refreshToken", "super-secret"))

	raw, err := os.ReadFile(filepath.Join(dir, "refreshToken.bin"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret")
}

func TestInvalidKeys(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "a/b", `a\b`, ".", ".."} {
		assert.ErrorIs(t, store.Set(ctx, key, "v"), keystore.ErrInvalidKey, "key %q", key)
	}
}
