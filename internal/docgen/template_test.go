package docgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateRender(t *testing.T) {
	ctx := testCtx(t)

	t.Run("returns template bytes unmodified", func(t *testing.T) {
		dir := t.TempDir()
		blank := []byte("%PDF-1.4 blank form")
		err := os.WriteFile(filepath.Join(dir, TemplateAsset), blank, 0o644)
		assert.NoError(t, err)

		store, err := NewFSStore(dir)
		assert.NoError(t, err)

		r, err := NewTemplateRenderer(TemplateRendererConfig{Assets: store})
		assert.NoError(t, err)

		out, err := r.Render(ctx, CanonicalData{Name: "ignored"}, "SAIL-2025-0042")
		assert.NoError(t, err)
		assert.Equal(t, blank, out)
	})

	t.Run("absent asset fails", func(t *testing.T) {
		store, err := NewFSStore(t.TempDir())
		assert.NoError(t, err)

		r, err := NewTemplateRenderer(TemplateRendererConfig{Assets: store})
		assert.NoError(t, err)

		out, err := r.Render(ctx, CanonicalData{}, "")
		assert.Nil(t, out)
		assert.Error(t, err)
	})

	t.Run("needs asset store", func(t *testing.T) {
		r, err := NewTemplateRenderer(TemplateRendererConfig{})
		assert.Nil(t, r)
		assert.Error(t, err)
	})
}

func TestFSStore(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, FontAsset), []byte("font-bytes"), 0o644)
	assert.NoError(t, err)

	store, err := NewFSStore(dir)
	assert.NoError(t, err)

	t.Run("stat reports size", func(t *testing.T) {
		size, ok := store.Stat(FontAsset)
		assert.True(t, ok)
		assert.Equal(t, int64(len("font-bytes")), size)
	})

	t.Run("missing asset", func(t *testing.T) {
		assert.False(t, store.Exists(TemplateAsset))

		_, ok := store.Stat(TemplateAsset)
		assert.False(t, ok)
	})

	t.Run("empty dir rejected", func(t *testing.T) {
		_, err := NewFSStore("")
		assert.Error(t, err)
	})
}
