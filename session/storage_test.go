package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageRoundTrip(t *testing.T) {
	run := func(t *testing.T, storage *Storage) {
		_, loaded, err := storage.Load()
		require.NoError(t, err)
		require.Nil(t, loaded, "fresh storage must be empty")

		profile := &Profile{Username: "alice", Email: "alice@example.com"}
		require.NoError(t, storage.Save("tok-1", profile))

		token, loaded, err := storage.Load()
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "tok-1", token)
		assert.Equal(t, "alice", loaded.Username)

		require.NoError(t, storage.Clear())
		_, loaded, err = storage.Load()
		require.NoError(t, err)
		assert.Nil(t, loaded)
	}

	t.Run("bolt-backed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")
		storage, err := NewStorage(path)
		require.NoError(t, err)
		defer storage.Close()
		run(t, storage)
	})

	t.Run("memory-only", func(t *testing.T) {
		storage, err := NewStorage("")
		require.NoError(t, err)
		defer storage.Close()
		run(t, storage)
	})
}

func TestStorageLoadErrors(t *testing.T) {
	t.Run("corrupt profile", func(t *testing.T) {
		storage, err := NewStorage("")
		require.NoError(t, err)
		require.NoError(t, storage.Save("tok-3", &Profile{Username: "carol"}))
		storage.mem[string(keyProfile)] = []byte("{not json")

		_, _, err = storage.Load()
		require.Error(t, err)
	})

	t.Run("closed database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")
		storage, err := NewStorage(path)
		require.NoError(t, err)
		require.NoError(t, storage.Close())

		_, _, err = storage.Load()
		require.Error(t, err)
	})
}

func TestStoragePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	storage, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, storage.Save("tok-2", &Profile{Username: "bob"}))
	require.NoError(t, storage.Close())

	reopened, err := NewStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, profile, err := reopened.Load()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, "bob", profile.Username)
}
