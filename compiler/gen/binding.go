package gen

import (
	"github.com/dave/jennifer/jen"
)

// Binding is one generated function: the mangled name, the generated
// type parameters, the threaded handler parameters, and the plugin's
// own parameters, results, and body.
type Binding struct {
	// Name is the mangled binding name.
	Name string
	// Decl is the name of the declaration this binding was derived from.
	Decl string
	// TypeParams holds the generated type-parameter identifiers.
	TypeParams []string
	// Handlers holds the complete handler parameter declarations, one
	// per type parameter, placed before Params.
	Handlers []jen.Code
	// Params holds the remaining parameter declarations.
	Params []jen.Code
	// Results holds the result types.
	Results []jen.Code
	// Body holds the body statements.
	Body []jen.Code
}

// BindingGroup is the set of bindings one plugin derived across a whole
// declaration group. It is rendered as a single unit: the underlying
// types are mutually recursive, so the generated functions must live in
// one scope where they can reference each other by name.
type BindingGroup struct {
	// Plugin is the derivation name that produced the group.
	Plugin string
	// Bindings holds one binding per declaration, in group order.
	Bindings []*Binding
}

// Render writes the group's bindings into a jennifer file.
func (g *BindingGroup) Render(f *jen.File) {
	for _, b := range g.Bindings {
		f.Add(b.fn(b.Body)).Line()
	}
}

// RenderSignatures writes declaration stubs for the group's bindings.
// Stub bodies panic; they exist for interface-file contexts where only
// the signatures matter.
func (g *BindingGroup) RenderSignatures(f *jen.File) {
	for _, b := range g.Bindings {
		body := b.Body
		if len(body) == 0 {
			body = []jen.Code{jen.Panic(jen.Lit("signature stub"))}
		}
		f.Add(b.fn(body)).Line()
	}
}

// File renders the group into a new file for the given package.
func (g *BindingGroup) File(pkg, header string) *jen.File {
	f := jen.NewFile(pkg)
	if header != "" {
		f.HeaderComment(header)
	}
	g.Render(f)
	return f
}

// fn assembles the function declaration for a binding with the given
// body. Handler parameters always precede the plugin's parameters.
func (b *Binding) fn(body []jen.Code) *jen.Statement {
	fn := jen.Func().Id(b.Name)
	if len(b.TypeParams) > 0 {
		params := make([]jen.Code, len(b.TypeParams))
		for i, tp := range b.TypeParams {
			params[i] = jen.Id(tp).Any()
		}
		fn.Index(jen.List(params...))
	}
	fn.Params(append(append([]jen.Code{}, b.Handlers...), b.Params...)...)
	switch len(b.Results) {
	case 0:
	case 1:
		fn.Add(b.Results[0])
	default:
		fn.Params(b.Results...)
	}
	return fn.Block(body...)
}
