package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"authserver/internal/models"
)

func testRegistry(t *testing.T) (UserRegistry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return NewFileRegistry(path, zap.NewNop()), path
}

func TestLoadMissingFileLeavesRegistryEmpty(t *testing.T) {
	registry, _ := testRegistry(t)

	err := registry.Load()
	require.Error(t, err)
	assert.Empty(t, registry.List())
}

func TestLoadCorruptFileLeavesRegistryEmpty(t *testing.T) {
	registry, path := testRegistry(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	err := registry.Load()
	require.Error(t, err)
	assert.Empty(t, registry.List())
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	registry, path := testRegistry(t)

	registry.Put("admin", models.UserRecord{PasswordHash: "hash-a", IsAdmin: true})
	registry.Put("val", models.UserRecord{PasswordHash: "hash-b"})
	require.NoError(t, registry.Persist())

	// File layout is the flat username -> record object.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]models.UserRecord
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "hash-a", onDisk["admin"].PasswordHash)
	assert.True(t, onDisk["admin"].IsAdmin)
	assert.False(t, onDisk["val"].IsAdmin)

	fresh := NewFileRegistry(path, zap.NewNop())
	require.NoError(t, fresh.Load())
	record, ok := fresh.Get("val")
	require.True(t, ok)
	assert.Equal(t, "hash-b", record.PasswordHash)
}

func TestDeleteThenPersist(t *testing.T) {
	registry, path := testRegistry(t)
	registry.Put("val", models.UserRecord{PasswordHash: "hash"})
	require.NoError(t, registry.Persist())

	registry.Delete("val")
	require.NoError(t, registry.Persist())

	fresh := NewFileRegistry(path, zap.NewNop())
	require.NoError(t, fresh.Load())
	_, ok := fresh.Get("val")
	assert.False(t, ok)
}

func TestPersistFailsWhenDirectoryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "users.json")
	registry := NewFileRegistry(path, zap.NewNop())

	registry.Put("val", models.UserRecord{PasswordHash: "hash"})
	require.Error(t, registry.Persist())
}

func TestPersistReplacesFileCompletely(t *testing.T) {
	registry, path := testRegistry(t)
	registry.Put("val", models.UserRecord{PasswordHash: "hash"})
	require.NoError(t, registry.Persist())

	registry.Delete("val")
	registry.Put("eve", models.UserRecord{PasswordHash: "other"})
	require.NoError(t, registry.Persist())

	// Each persist is a whole-file replacement, never an append or a
	// partial rewrite.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]models.UserRecord
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []string{"eve"}, keysOf(onDisk))
}

func keysOf(m map[string]models.UserRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestListSortedSnapshot(t *testing.T) {
	registry, _ := testRegistry(t)
	registry.Put("zoe", models.UserRecord{PasswordHash: "h"})
	registry.Put("admin", models.UserRecord{PasswordHash: "h", IsAdmin: true})
	registry.Put("mia", models.UserRecord{PasswordHash: "h"})

	users := registry.List()
	require.Len(t, users, 3)
	assert.Equal(t, "admin", users[0].Username)
	assert.True(t, users[0].IsAdmin)
	assert.Equal(t, "mia", users[1].Username)
	assert.Equal(t, "zoe", users[2].Username)
}
