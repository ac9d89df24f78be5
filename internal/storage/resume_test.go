package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeStore(t *testing.T) {
	t.Run("save then read back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state", "resume.pdf")
		store, err := NewResumeStore(path)
		require.NoError(t, err)
		assert.False(t, store.Exists())

		require.NoError(t, store.Save(strings.NewReader("%PDF-1.7 first")))
		assert.True(t, store.Exists())

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 first", string(data))
	})

	t.Run("a second save replaces the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "resume.pdf")
		store, err := NewResumeStore(path)
		require.NoError(t, err)

		require.NoError(t, store.Save(strings.NewReader("%PDF-1.7 first")))
		require.NoError(t, store.Save(strings.NewReader("%PDF-1.7 second")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 second", string(data))
	})

	t.Run("no leftover temp files after save", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewResumeStore(filepath.Join(dir, "resume.pdf"))
		require.NoError(t, err)
		require.NoError(t, store.Save(strings.NewReader("%PDF-1.7")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "resume.pdf", entries[0].Name())
	})
}
