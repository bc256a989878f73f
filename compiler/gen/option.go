package gen

import (
	"fmt"

	"github.com/syssam/derive/compiler/decl"
)

// OptionKind is the expected payload kind of a request option.
type OptionKind int

const (
	// KindString expects a string payload.
	KindString OptionKind = iota
	// KindBool expects a boolean payload.
	KindBool
	// KindInt expects an integer payload.
	KindInt
	// KindExpr accepts any payload verbatim; interpretation belongs to
	// the plugin (e.g. a custom comparator expression).
	KindExpr
)

// String returns the kind name for diagnostics.
func (k OptionKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindExpr:
		return "expr"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// OptionSpec describes one accepted option: its payload kind and the
// default used when a request omits it.
type OptionSpec struct {
	Kind    OptionKind
	Default any
}

// OptionSchema is a plugin's declared option surface. Parsing is
// strict: a request option outside the schema is rejected even if the
// plugin would ignore it, so malformed derivation requests always
// surface to the user. Every plugin invocation runs Parse, including
// plugins with an empty schema.
type OptionSchema struct {
	specs map[string]*OptionSpec
}

// NewOptionSchema returns an empty schema.
func NewOptionSchema() *OptionSchema {
	return &OptionSchema{specs: make(map[string]*OptionSpec)}
}

// String declares a string option with a default.
func (s *OptionSchema) String(key, def string) *OptionSchema {
	s.specs[key] = &OptionSpec{Kind: KindString, Default: def}
	return s
}

// Bool declares a boolean option with a default.
func (s *OptionSchema) Bool(key string, def bool) *OptionSchema {
	s.specs[key] = &OptionSpec{Kind: KindBool, Default: def}
	return s
}

// Int declares an integer option with a default.
func (s *OptionSchema) Int(key string, def int) *OptionSchema {
	s.specs[key] = &OptionSpec{Kind: KindInt, Default: def}
	return s
}

// Expr declares an option whose payload is passed through verbatim.
// A nil default means "not supplied".
func (s *OptionSchema) Expr(key string, def any) *OptionSchema {
	s.specs[key] = &OptionSpec{Kind: KindExpr, Default: def}
	return s
}

// Parse validates a request's raw options against the schema and
// returns the resolved values with defaults filled in for absent keys.
func (s *OptionSchema) Parse(plugin string, req *decl.Request) (Options, error) {
	out := make(Options, len(s.specs))
	for key, spec := range s.specs {
		out[key] = spec.Default
	}
	if req == nil {
		return out, nil
	}
	for _, kv := range req.Options {
		spec, ok := s.specs[kv.Key]
		if !ok {
			return nil, &OptionError{
				Plugin:  plugin,
				Option:  kv.Key,
				Value:   kv.Value,
				Message: "not declared in the plugin's option schema",
				Pos:     req.Pos,
			}
		}
		val, err := coerce(spec.Kind, kv.Value)
		if err != nil {
			return nil, &OptionError{
				Plugin:  plugin,
				Option:  kv.Key,
				Value:   kv.Value,
				Message: err.Error(),
				Pos:     req.Pos,
			}
		}
		out[kv.Key] = val
	}
	return out, nil
}

// coerce checks a raw payload against the expected kind.
func coerce(kind OptionKind, val any) (any, error) {
	switch kind {
	case KindString:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string payload, got %T", val)
		}
		return s, nil
	case KindBool:
		b, ok := val.(bool)
		if !ok {
			return nil, fmt.Errorf("expected a boolean payload, got %T", val)
		}
		return b, nil
	case KindInt:
		n, ok := val.(int)
		if !ok {
			return nil, fmt.Errorf("expected an integer payload, got %T", val)
		}
		return n, nil
	default:
		return val, nil
	}
}

// Options holds the resolved option values for one plugin invocation.
type Options map[string]any

// String returns the string value of an option, or the empty string if
// absent or of another kind.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Bool returns the boolean value of an option.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Int returns the integer value of an option.
func (o Options) Int(key string) int {
	n, _ := o[key].(int)
	return n
}

// Value returns the raw value of an option.
func (o Options) Value(key string) any {
	return o[key]
}
