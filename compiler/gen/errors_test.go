package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/derive/compiler/decl"
)

func TestPluginError(t *testing.T) {
	t.Run("unknown plugin message", func(t *testing.T) {
		err := &PluginError{Plugin: "yojson"}
		assert.Contains(t, err.Error(), `no plugin registered for "yojson"`)
		assert.ErrorIs(t, err, ErrUnknownPlugin)
		assert.NotErrorIs(t, err, ErrDuplicateRegistration)
	})

	t.Run("duplicate registration message", func(t *testing.T) {
		err := &PluginError{Plugin: "show", Duplicate: true}
		assert.Contains(t, err.Error(), `plugin "show" already registered`)
		assert.ErrorIs(t, err, ErrDuplicateRegistration)
		assert.NotErrorIs(t, err, ErrUnknownPlugin)
	})

	t.Run("position is attached", func(t *testing.T) {
		err := &PluginError{Plugin: "show", Pos: &decl.Position{File: "types.ml", Line: 3}}
		assert.Contains(t, err.Error(), "at types.ml:3")
	})

	t.Run("IsPluginError helper", func(t *testing.T) {
		assert.True(t, IsPluginError(&PluginError{Plugin: "x"}))
		assert.False(t, IsPluginError(errors.New("other")))
	})
}

func TestOptionError(t *testing.T) {
	err := &OptionError{Plugin: "ord", Option: "bogus", Value: "y", Message: "not declared"}
	assert.Contains(t, err.Error(), `invalid option "bogus"`)
	assert.Contains(t, err.Error(), `plugin "ord"`)
	assert.Contains(t, err.Error(), "value: y")
	assert.Contains(t, err.Error(), "not declared")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.True(t, IsOptionError(err))
}

func TestAnnotationError(t *testing.T) {
	err := &AnnotationError{Plugin: "show", Key: "skip", Message: "ambiguous"}
	assert.Contains(t, err.Error(), `annotation "skip"`)
	assert.Contains(t, err.Error(), "ambiguous")
	assert.ErrorIs(t, err, ErrAmbiguousAnnotation)
	assert.True(t, IsAnnotationError(err))
}

func TestShapeError(t *testing.T) {
	err := &ShapeError{Plugin: "eq", Decl: "status", Shape: "polyvariant", Message: "rows unsupported"}
	assert.Contains(t, err.Error(), `plugin "eq" cannot derive "status"`)
	assert.Contains(t, err.Error(), "shape polyvariant")
	assert.Contains(t, err.Error(), "rows unsupported")
	assert.ErrorIs(t, err, ErrUnsupportedShape)
	assert.True(t, IsShapeError(err))
}

func TestGenerationError(t *testing.T) {
	t.Run("wraps cause with plugin and declaration names", func(t *testing.T) {
		cause := errors.New("boom")
		err := &GenerationError{Plugin: "show", Decl: "tree", Cause: cause}
		assert.Contains(t, err.Error(), `"tree"`)
		assert.Contains(t, err.Error(), `"show"`)
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, cause, err.Unwrap())
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("sentinels pass through the wrapper", func(t *testing.T) {
		err := &GenerationError{
			Plugin: "eq",
			Decl:   "status",
			Cause:  &ShapeError{Plugin: "eq", Decl: "status"},
		}
		assert.ErrorIs(t, err, ErrUnsupportedShape)
		assert.True(t, IsGenerationError(err))
		assert.True(t, IsShapeError(err))
	})
}
