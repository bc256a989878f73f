package gen

import (
	"github.com/dave/jennifer/jen"
	"github.com/syssam/derive/compiler/decl"
)

// Plugin is the generator contract implemented by each derivation.
// Implementations are registered once at process initialization and are
// invoked once per declaration per request. Plugins must be stateless
// with respect to generation: the same task always produces the same
// function.
type Plugin interface {
	// Name is the unique, case-sensitive derivation name users request.
	Name() string
	// Schema declares the plugin's accepted options. Every invocation
	// is validated against it, so a plugin with no options returns an
	// empty schema rather than nil.
	Schema() *OptionSchema
	// Generate produces the function derived for one declaration.
	Generate(t *Task) (*Func, error)
}

// SignatureGenerator is an optional plugin capability: producing
// declaration stubs for interface-file contexts. The dispatcher detects
// it at registration time via a type assertion.
type SignatureGenerator interface {
	Signature(t *Task) (*Func, error)
}

// BuiltinExtender is an optional plugin capability: extending the
// classifier's builtin-recognition table (name to arity) for requests
// handled by this plugin.
type BuiltinExtender interface {
	Builtins() map[string]int
}

// Func is the generator callback's product for one declaration. The
// dispatcher owns naming and polymorphism threading; the plugin owns
// everything below the handler parameters.
type Func struct {
	// Handlers holds one handler parameter type per declared type
	// variable, in declaration order (conventionally a function
	// operating on that variable's own representation, e.g.
	// func(A) string for a display plugin). The dispatcher names the
	// parameters and places them before all other parameters. Must be
	// empty for monomorphic declarations.
	Handlers []jen.Code
	// Params holds the plugin's own parameter declarations (name and
	// type), placed after the handlers.
	Params []jen.Code
	// Results holds the result types.
	Results []jen.Code
	// Body holds the function body statements. An empty body is only
	// meaningful for signature stubs.
	Body []jen.Code
}

// Task is the invocation context handed to a plugin for one
// declaration: the declaration itself, its classified shape, the
// resolved options, and namespace-scoped attribute views. It also
// carries the naming helpers plugins need to reference sibling and
// abstract types.
type Task struct {
	// Decl is the declaration being derived.
	Decl *decl.TypeDecl
	// Shape is the classified structure of the declaration.
	Shape *Shape
	// Options holds the validated request options with defaults filled.
	Options Options
	// Attrs is the attribute view over the declaration's annotations,
	// scoped to this plugin's namespace.
	Attrs *AttrView

	plugin   string
	fragment string
	style    MangleStyle
	group    *decl.Group
}

// FieldAttrs returns the plugin-scoped attribute view for a record field.
func (t *Task) FieldAttrs(f *decl.Field) *AttrView {
	return NewAttrView(t.plugin, f.Annotations)
}

// CtorAttrs returns the plugin-scoped attribute view for a constructor.
func (t *Task) CtorAttrs(c *decl.Ctor) *AttrView {
	return NewAttrView(t.plugin, c.Annotations)
}

// FuncName returns the mangled name of the binding generated for this
// declaration.
func (t *Task) FuncName() (string, error) {
	return Mangle(t.Decl.Name, t.fragment, t.style)
}

// SiblingName returns the mangled name for a type reference under the
// current fragment and style. For a type declared in the same group it
// names the sibling binding in the same recursive group; for an
// abstract qualified name (e.g. "status.t") the convention is applied
// to the final segment and the qualifier is kept, naming a function
// assumed to already exist in scope.
func (t *Task) SiblingName(typeName string) (string, error) {
	qual, base := splitQualified(typeName)
	id, err := Mangle(base, t.fragment, t.style)
	if err != nil {
		return "", err
	}
	if qual != "" {
		return qual + "." + id, nil
	}
	return id, nil
}

// HandlerName returns the conventional handler parameter name for one
// of the declaration's type variables.
func (t *Task) HandlerName(typeVar string) string {
	return HandlerName(t.fragment, typeVar)
}

// TypeParams returns the generated type-parameter identifiers, one per
// declared type variable, in order.
func (t *Task) TypeParams() []string {
	params := make([]string, len(t.Decl.Params))
	for i, p := range t.Decl.Params {
		params[i] = TypeParamName(p)
	}
	return params
}

// Group returns the enclosing declaration group.
func (t *Task) Group() *decl.Group {
	return t.group
}

// Fragment returns the function-name fragment in effect for this
// request: the plugin name, unless overridden by an affix option.
func (t *Task) Fragment() string {
	return t.fragment
}

// splitQualified splits "pkg.sub.name" into ("pkg.sub", "name").
func splitQualified(name string) (qual, base string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}
