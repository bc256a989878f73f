// Package gen implements the derivation engine: it classifies type
// declarations, resolves metadata annotations per plugin namespace,
// validates request options, and dispatches registered generator plugins
// to assemble recursive binding groups.
package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/derive/compiler/decl"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnknownPlugin indicates a derivation name with no registered plugin.
	ErrUnknownPlugin = errors.New("derive: unknown plugin")
	// ErrDuplicateRegistration indicates a plugin name collision at registration time.
	ErrDuplicateRegistration = errors.New("derive: duplicate plugin registration")
	// ErrInvalidOption indicates an option key outside the plugin's schema,
	// or an option payload of the wrong kind.
	ErrInvalidOption = errors.New("derive: invalid option")
	// ErrAmbiguousAnnotation indicates two conflicting bare-key annotations
	// with the same key on one node.
	ErrAmbiguousAnnotation = errors.New("derive: ambiguous annotation")
	// ErrUnsupportedShape indicates a plugin that cannot handle a type shape.
	ErrUnsupportedShape = errors.New("derive: unsupported shape")
	// ErrMalformedPayload indicates an annotation payload a plugin could not decode.
	ErrMalformedPayload = errors.New("derive: malformed annotation payload")
	// ErrGenerationFailed indicates a failure while assembling bindings.
	ErrGenerationFailed = errors.New("derive: generation failed")
)

// PluginError reports a registry failure: a lookup of an unregistered
// name, or a second registration under an existing name.
type PluginError struct {
	Plugin    string
	Duplicate bool // true for registration collisions, false for missing lookups
	Pos       *decl.Position
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	var b strings.Builder
	if e.Duplicate {
		fmt.Fprintf(&b, "derive: plugin %q already registered", e.Plugin)
	} else {
		fmt.Fprintf(&b, "derive: no plugin registered for %q", e.Plugin)
	}
	writePos(&b, e.Pos)
	return b.String()
}

// Is reports whether the target matches the sentinel for this error.
func (e *PluginError) Is(target error) bool {
	if e.Duplicate {
		return target == ErrDuplicateRegistration
	}
	return target == ErrUnknownPlugin
}

// OptionError reports a request option rejected by a plugin's schema.
type OptionError struct {
	Plugin  string
	Option  string
	Value   any
	Message string
	Pos     *decl.Position
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "derive: invalid option %q", e.Option)
	if e.Plugin != "" {
		fmt.Fprintf(&b, " for plugin %q", e.Plugin)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	writePos(&b, e.Pos)
	return b.String()
}

// Is reports whether the target matches ErrInvalidOption.
func (e *OptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// AnnotationError reports an annotation-resolution failure, typically
// two conflicting bare-key annotations on a single node.
type AnnotationError struct {
	Plugin  string
	Key     string
	Message string
	Pos     *decl.Position
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "derive: annotation %q", e.Key)
	if e.Plugin != "" {
		fmt.Fprintf(&b, " resolved for plugin %q", e.Plugin)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	writePos(&b, e.Pos)
	return b.String()
}

// Is reports whether the target matches ErrAmbiguousAnnotation.
func (e *AnnotationError) Is(target error) bool {
	return target == ErrAmbiguousAnnotation
}

// ShapeError reports a declaration shape a plugin cannot derive code for.
type ShapeError struct {
	Plugin  string
	Decl    string
	Shape   string // shape kind name, e.g. "polyvariant"
	Message string
	Pos     *decl.Position
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "derive: plugin %q cannot derive %q", e.Plugin, e.Decl)
	if e.Shape != "" {
		fmt.Fprintf(&b, " (shape %s)", e.Shape)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	writePos(&b, e.Pos)
	return b.String()
}

// Is reports whether the target matches ErrUnsupportedShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

// GenerationError wraps a failure raised while generating bindings for
// one declaration under one plugin. The wrapped cause is preserved so
// hosts can match plugin-specific sentinels with errors.Is.
type GenerationError struct {
	Plugin string
	Decl   string
	Pos    *decl.Position
	Cause  error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "derive: generation failed for %q under plugin %q", e.Decl, e.Plugin)
	writePos(&b, e.Pos)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// IsPluginError reports whether the error is a PluginError.
func IsPluginError(err error) bool {
	var pe *PluginError
	return errors.As(err, &pe)
}

// IsOptionError reports whether the error is an OptionError.
func IsOptionError(err error) bool {
	var oe *OptionError
	return errors.As(err, &oe)
}

// IsAnnotationError reports whether the error is an AnnotationError.
func IsAnnotationError(err error) bool {
	var ae *AnnotationError
	return errors.As(err, &ae)
}

// IsShapeError reports whether the error is a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

func writePos(b *strings.Builder, pos *decl.Position) {
	if pos == nil {
		return
	}
	b.WriteString(" at ")
	b.WriteString(pos.String())
}
