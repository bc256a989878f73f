// Package derive dispatches code generation over annotated type
// declarations. A host parser supplies a group of mutually recursive
// declarations plus the derivation requests attached to it; registered
// generator plugins produce one recursive group of function bindings
// per request.
//
// Plugins register themselves during process initialization:
//
//	func init() {
//		derive.MustRegister(&showPlugin{})
//	}
//
// Hosts then drive generation per compilation unit:
//
//	reqs, err := decl.ParseRequests(`show, ord { affix = "compare" }`)
//	...
//	groups, err := derive.Generate(group, reqs, gen.WithTarget("./out"))
//
// The heavy lifting lives in compiler/decl (the declaration model) and
// compiler/gen (classification, annotation resolution, option parsing,
// the plugin registry, and binding assembly).
package derive

import (
	"github.com/syssam/derive/compiler/decl"
	"github.com/syssam/derive/compiler/gen"
)

// Register adds a plugin to the process-wide registry. Registration
// must complete before any generation request is processed.
func Register(p gen.Plugin) error {
	return gen.Register(p)
}

// MustRegister is Register panicking on duplicate names, for use from
// plugin init functions.
func MustRegister(p gen.Plugin) {
	gen.MustRegister(p)
}

// Generate derives one binding group per request for a declaration
// group, using a dispatcher built from the given options.
func Generate(group *decl.Group, reqs []*decl.Request, opts ...gen.Option) (map[string]*gen.BindingGroup, error) {
	d, err := gen.NewDispatcher(opts...)
	if err != nil {
		return nil, err
	}
	return d.Generate(group, reqs)
}
