package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	t.Run("roundtrip preserves structure", func(t *testing.T) {
		g := testGroup()
		g.Decls[0].Annotations = []*Annotation{{Key: "show.skip", Payload: true}}

		buf, err := Snapshot(g)
		require.NoError(t, err)

		restored, err := RestoreSnapshot(buf)
		require.NoError(t, err)
		assert.Equal(t, g.Name, restored.Name)
		require.Len(t, restored.Decls, 2)
		assert.Equal(t, "tree", restored.Decls[0].Name)
		assert.Equal(t, BodyVariant, restored.Decls[0].Body.Kind)
		require.Len(t, restored.Decls[0].Annotations, 1)
		assert.Equal(t, "show.skip", restored.Decls[0].Annotations[0].Key)
	})

	t.Run("nil group is rejected", func(t *testing.T) {
		_, err := Snapshot(nil)
		assert.Error(t, err)
	})
}

func TestFingerprint(t *testing.T) {
	t.Run("stable for identical groups", func(t *testing.T) {
		a, err := Fingerprint(testGroup())
		require.NoError(t, err)
		b, err := Fingerprint(testGroup())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("changes when a declaration changes", func(t *testing.T) {
		a, err := Fingerprint(testGroup())
		require.NoError(t, err)

		g := testGroup()
		g.Decls[1].Body.Fields[0].Name = "items"
		b, err := Fingerprint(g)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
