package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSQLiteStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "prefs.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "skyline-theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "skyline-theme", "light"))
	v, ok, err := s.Get(ctx, "skyline-theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Set(ctx, "skyline-theme", "dark"))
	v, _, err = s.Get(ctx, "skyline-theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := NewSQLite(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "skyline-theme", "dark"))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "skyline-theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestSQLiteStoreInMemory(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(":memory:", zaptest.NewLogger(t))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemoryStore()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.NoError(t, s.Close())
}
