package gen

import (
	"fmt"
	"go/token"

	"github.com/go-openapi/inflect"
)

// MangleStyle selects the identifier convention for generated bindings.
type MangleStyle int

const (
	// CamelStyle produces lowerCamelCase names ("showFile"). Default.
	CamelStyle MangleStyle = iota
	// SnakeStyle produces snake_case names ("show_file").
	SnakeStyle
	// ExportedStyle produces UpperCamelCase names ("ShowFile") for
	// bindings that must be visible outside the generated package.
	ExportedStyle
)

// String returns the style name for diagnostics and config files.
func (s MangleStyle) String() string {
	switch s {
	case CamelStyle:
		return "camel"
	case SnakeStyle:
		return "snake"
	case ExportedStyle:
		return "exported"
	default:
		return fmt.Sprintf("MangleStyle(%d)", int(s))
	}
}

// ParseMangleStyle parses a style name as it appears in config files.
func ParseMangleStyle(s string) (MangleStyle, error) {
	switch s {
	case "", "camel":
		return CamelStyle, nil
	case "snake":
		return SnakeStyle, nil
	case "exported":
		return ExportedStyle, nil
	default:
		return CamelStyle, fmt.Errorf("derive: unknown mangle style %q", s)
	}
}

// PrimaryTypeName is the distinguished type name conventionally meaning
// "the primary type of this module". Mangling it yields the plugin
// fragment alone, avoiding a degenerate "show_t".
const PrimaryTypeName = "t"

// Mangle derives a generated binding name from a type name and a plugin
// fragment using the prefix template (fragment first: "showFile").
// The result is always a valid Go identifier; otherwise an error is
// returned so hosts never print unparsable output.
func Mangle(typeName, fragment string, style MangleStyle) (string, error) {
	return mangle(typeName, fragment, style, false)
}

// MangleSuffix is the suffix-template variant of Mangle (type name
// first: "fileShow"). The primary type name still yields the fragment
// alone.
func MangleSuffix(typeName, fragment string, style MangleStyle) (string, error) {
	return mangle(typeName, fragment, style, true)
}

func mangle(typeName, fragment string, style MangleStyle, suffix bool) (string, error) {
	if fragment == "" {
		return "", fmt.Errorf("derive: cannot mangle %q with an empty fragment", typeName)
	}
	raw := fragment
	if typeName != PrimaryTypeName && typeName != "" {
		if suffix {
			raw = typeName + "_" + fragment
		} else {
			raw = fragment + "_" + typeName
		}
	}
	var id string
	switch style {
	case SnakeStyle:
		id = inflect.Underscore(raw)
	case ExportedStyle:
		id = inflect.Camelize(raw)
	default:
		id = inflect.CamelizeDownFirst(raw)
	}
	if !token.IsIdentifier(id) {
		return "", fmt.Errorf("derive: mangled name %q for type %q is not a valid identifier", id, typeName)
	}
	return id, nil
}

// HandlerName returns the conventional parameter name for the handler
// threaded for one type variable: the plugin fragment followed by the
// capitalized variable name (e.g. fragment "show", variable "a" ->
// "showA").
func HandlerName(fragment, typeVar string) string {
	return inflect.CamelizeDownFirst(fragment) + inflect.Camelize(typeVar)
}

// TypeParamName returns the generated type-parameter identifier for a
// declared type variable (e.g. "a" -> "A").
func TypeParamName(typeVar string) string {
	return inflect.Camelize(typeVar)
}
