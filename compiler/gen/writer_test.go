package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/derive/compiler/decl"
)

func TestWriter(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newShowPlugin()))
	require.NoError(t, r.Register(&eqPlugin{}))

	t.Run("one file per plugin", func(t *testing.T) {
		dir := t.TempDir()
		d := testDispatcher(t, r, WithTarget(dir), WithPackage("types"))
		groups, err := d.Generate(forestGroup(), []*decl.Request{
			{Plugin: "show"},
			{Plugin: "eq"},
		})
		require.NoError(t, err)

		w := NewWriter(d.Config())
		require.NoError(t, w.Write(context.Background(), groups))

		show, err := os.ReadFile(filepath.Join(dir, "show_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(show), "package types")
		assert.Contains(t, string(show), DefaultHeader)
		assert.Contains(t, string(show), "func showTree")
		assert.Contains(t, string(show), "func showForest")

		eq, err := os.ReadFile(filepath.Join(dir, "eq_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(eq), "func eqTree")
	})

	t.Run("package defaults to the target base name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "models")
		d := testDispatcher(t, r, WithTarget(dir))
		groups, err := d.Generate(forestGroup(), []*decl.Request{{Plugin: "eq"}})
		require.NoError(t, err)

		require.NoError(t, NewWriter(d.Config()).Write(context.Background(), groups))
		buf, err := os.ReadFile(filepath.Join(dir, "eq_gen.go"))
		require.NoError(t, err)
		assert.Contains(t, string(buf), "package models")
	})

	t.Run("missing target is rejected", func(t *testing.T) {
		w := NewWriter(DefaultConfig())
		err := w.Write(context.Background(), nil)
		assert.Error(t, err)
	})
}
