package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMangle(t *testing.T) {
	t.Run("camel style prefixes the fragment", func(t *testing.T) {
		name, err := Mangle("file", "show", CamelStyle)
		require.NoError(t, err)
		assert.Equal(t, "showFile", name)
	})

	t.Run("snake style", func(t *testing.T) {
		name, err := Mangle("file", "show", SnakeStyle)
		require.NoError(t, err)
		assert.Equal(t, "show_file", name)
	})

	t.Run("exported style", func(t *testing.T) {
		name, err := Mangle("file", "show", ExportedStyle)
		require.NoError(t, err)
		assert.Equal(t, "ShowFile", name)
	})

	t.Run("primary type name yields the fragment alone", func(t *testing.T) {
		name, err := Mangle("t", "show", CamelStyle)
		require.NoError(t, err)
		assert.Equal(t, "show", name)

		name, err = Mangle("t", "show", SnakeStyle)
		require.NoError(t, err)
		assert.Equal(t, "show", name)
	})

	t.Run("suffix template puts the type name first", func(t *testing.T) {
		name, err := MangleSuffix("file", "show", SnakeStyle)
		require.NoError(t, err)
		assert.Equal(t, "file_show", name)

		name, err = MangleSuffix("t", "show", CamelStyle)
		require.NoError(t, err)
		assert.Equal(t, "show", name)
	})

	t.Run("multi-word type names", func(t *testing.T) {
		name, err := Mangle("order_item", "show", CamelStyle)
		require.NoError(t, err)
		assert.Equal(t, "showOrderItem", name)
	})

	t.Run("empty fragment is rejected", func(t *testing.T) {
		_, err := Mangle("file", "", CamelStyle)
		assert.Error(t, err)
	})

	t.Run("invalid identifier is rejected", func(t *testing.T) {
		_, err := Mangle("file", "1show", SnakeStyle)
		assert.Error(t, err)
	})
}

func TestHandlerName(t *testing.T) {
	assert.Equal(t, "showA", HandlerName("show", "a"))
	assert.Equal(t, "compareKey", HandlerName("compare", "key"))
}

func TestTypeParamName(t *testing.T) {
	assert.Equal(t, "A", TypeParamName("a"))
	assert.Equal(t, "Key", TypeParamName("key"))
}

func TestParseMangleStyle(t *testing.T) {
	for input, want := range map[string]MangleStyle{
		"":         CamelStyle,
		"camel":    CamelStyle,
		"snake":    SnakeStyle,
		"exported": ExportedStyle,
	} {
		got, err := ParseMangleStyle(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMangleStyle("kebab")
	assert.Error(t, err)
}
