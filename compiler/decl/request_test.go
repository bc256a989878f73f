package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequests(t *testing.T) {
	t.Run("bare plugin name", func(t *testing.T) {
		reqs, err := ParseRequests("show")
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, "show", reqs[0].Plugin)
		assert.Empty(t, reqs[0].Options)
	})

	t.Run("multiple plugins", func(t *testing.T) {
		reqs, err := ParseRequests("show, eq, ord")
		require.NoError(t, err)
		require.Len(t, reqs, 3)
		assert.Equal(t, "show", reqs[0].Plugin)
		assert.Equal(t, "eq", reqs[1].Plugin)
		assert.Equal(t, "ord", reqs[2].Plugin)
	})

	t.Run("options of each kind", func(t *testing.T) {
		reqs, err := ParseRequests(`ord { affix = "compare", strict = true, depth = 3, fallback = Pervasives.compare }`)
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		req := reqs[0]
		assert.Equal(t, "ord", req.Plugin)
		require.Len(t, req.Options, 4)
		assert.Equal(t, &KV{Key: "affix", Value: "compare"}, req.Options[0])
		assert.Equal(t, &KV{Key: "strict", Value: true}, req.Options[1])
		assert.Equal(t, &KV{Key: "depth", Value: 3}, req.Options[2])
		assert.Equal(t, &KV{Key: "fallback", Value: "Pervasives.compare"}, req.Options[3])
	})

	t.Run("negative integer value", func(t *testing.T) {
		reqs, err := ParseRequests("pad { width = -1 }")
		require.NoError(t, err)
		assert.Equal(t, -1, reqs[0].Options[0].Value)
	})

	t.Run("mixed bare and optioned plugins", func(t *testing.T) {
		reqs, err := ParseRequests(`show { with_path = false }, eq`)
		require.NoError(t, err)
		require.Len(t, reqs, 2)
		assert.Equal(t, "show", reqs[0].Plugin)
		assert.Equal(t, false, reqs[0].Options[0].Value)
		assert.Equal(t, "eq", reqs[1].Plugin)
	})

	t.Run("option order is preserved", func(t *testing.T) {
		reqs, err := ParseRequests("p { b = 1, a = 2, c = 3 }")
		require.NoError(t, err)
		keys := make([]string, 0, 3)
		for _, kv := range reqs[0].Options {
			keys = append(keys, kv.Key)
		}
		assert.Equal(t, []string{"b", "a", "c"}, keys)
	})

	t.Run("missing plugin name", func(t *testing.T) {
		_, err := ParseRequests(", show")
		assert.Error(t, err)
	})

	t.Run("unterminated option block", func(t *testing.T) {
		_, err := ParseRequests(`show { affix = "x"`)
		assert.Error(t, err)
	})

	t.Run("missing equals sign", func(t *testing.T) {
		_, err := ParseRequests("show { affix }")
		assert.Error(t, err)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, err := ParseRequests("show !")
		assert.Error(t, err)
	})
}
