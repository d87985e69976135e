package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPutGet(t *testing.T) {
	c := New(t.TempDir(), time.Hour)

	require.NoError(t, c.Put("file:ABC123", payload{Name: "Design", Count: 3}))

	var got payload
	require.True(t, c.Get("file:ABC123", &got))
	assert.Equal(t, payload{Name: "Design", Count: 3}, got)
}

func TestGetMiss(t *testing.T) {
	c := New(t.TempDir(), time.Hour)
	var got payload
	assert.False(t, c.Get("never-stored", &got))
}

func TestGetExpired(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, time.Minute)

	require.NoError(t, c.Put("stale", payload{Name: "old"}))

	// Age the entry past the TTL.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	old := time.Now().Add(-2 * time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(dir, entries[0].Name()), old, old))

	var got payload
	assert.False(t, c.Get("stale", &got))

	// Expired entries are evicted, not just skipped.
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPutOverwrites(t *testing.T) {
	c := New(t.TempDir(), time.Hour)
	require.NoError(t, c.Put("k", payload{Count: 1}))
	require.NoError(t, c.Put("k", payload{Count: 2}))

	var got payload
	require.True(t, c.Get("k", &got))
	assert.Equal(t, 2, got.Count)
}

func TestClear(t *testing.T) {
	c := New(t.TempDir(), time.Hour)
	require.NoError(t, c.Put("a", payload{}))
	require.NoError(t, c.Put("b", payload{}))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())

	var got payload
	assert.False(t, c.Get("a", &got))
}

func TestClearMissingDir(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "never-created"), time.Hour)
	assert.NoError(t, c.Clear())
}

func TestKeysDoNotCollide(t *testing.T) {
	c := New(t.TempDir(), time.Hour)
	require.NoError(t, c.Put("file:A", payload{Name: "a"}))
	require.NoError(t, c.Put("file:B", payload{Name: "b"}))

	var got payload
	require.True(t, c.Get("file:A", &got))
	assert.Equal(t, "a", got.Name)
	require.True(t, c.Get("file:B", &got))
	assert.Equal(t, "b", got.Name)
}
