// Package decl defines the declaration model handed to the code
// generator by a host parser: groups of mutually recursive type
// declarations, their structural bodies, attached metadata annotations,
// and the derivation requests parsed from the group's annotation.
//
// Values in this package are constructed once per host parse and are
// treated as immutable by the generator.
package decl

import "fmt"

// The following types describe a loaded declaration group. They mirror
// what a host front end produces; the generator never mutates them.
type (
	// Group is an ordered sequence of type declarations treated as
	// mutually recursive. Membership never changes after parsing.
	Group struct {
		// Name is an optional label for the group (e.g. the source
		// module name). Used in diagnostics only.
		Name string `json:"name,omitempty" msgpack:"name"`
		// Decls holds the declarations in source order.
		Decls []*TypeDecl `json:"decls" msgpack:"decls"`
	}

	// TypeDecl is a single type declaration.
	TypeDecl struct {
		// Name of the declared type. The name "t" conventionally means
		// "the primary type of this module" and affects name mangling.
		Name string `json:"name" msgpack:"name"`
		// Params holds the type-parameter names in order. Its length
		// defines the declaration's arity.
		Params []string `json:"params,omitempty" msgpack:"params"`
		// Body is the right-hand side of the declaration.
		Body *Body `json:"body" msgpack:"body"`
		// Annotations attached to the declaration itself.
		Annotations []*Annotation `json:"annotations,omitempty" msgpack:"annotations"`
		// Pos is the source position of the declaration.
		Pos *Position `json:"pos,omitempty" msgpack:"pos"`
	}

	// Body is the right-hand side of a type declaration. Exactly one of
	// the payload fields is set, selected by Kind.
	Body struct {
		Kind BodyKind `json:"kind" msgpack:"kind"`
		// Expr is set for BodyAlias.
		Expr *Expr `json:"expr,omitempty" msgpack:"expr"`
		// Fields is set for BodyRecord. Order is significant and
		// preserved in generated output.
		Fields []*Field `json:"fields,omitempty" msgpack:"fields"`
		// Ctors is set for BodyVariant. Declaration order is the
		// canonical ordering for comparison-style generators.
		Ctors []*Ctor `json:"ctors,omitempty" msgpack:"ctors"`
	}

	// Expr is a structural type expression appearing on a declaration's
	// right-hand side or nested inside one.
	Expr struct {
		Kind ExprKind `json:"kind" msgpack:"kind"`
		// Name holds the (possibly dot-qualified) type name for
		// ExprRef, or the variable name for ExprVar.
		Name string `json:"name,omitempty" msgpack:"name"`
		// Args holds type arguments for ExprRef and the element
		// expressions for ExprTuple.
		Args []*Expr `json:"args,omitempty" msgpack:"args"`
		// Rows holds the row constructors for ExprPolyVariant.
		Rows []*Ctor `json:"rows,omitempty" msgpack:"rows"`
	}

	// Field is a single record field.
	Field struct {
		Name        string        `json:"name" msgpack:"name"`
		Type        *Expr         `json:"type" msgpack:"type"`
		Annotations []*Annotation `json:"annotations,omitempty" msgpack:"annotations"`
		Pos         *Position     `json:"pos,omitempty" msgpack:"pos"`
	}

	// Ctor is a variant constructor or a polymorphic-variant row. An
	// empty argument list means a nullary constructor.
	Ctor struct {
		Name        string        `json:"name" msgpack:"name"`
		Args        []*Expr       `json:"args,omitempty" msgpack:"args"`
		Annotations []*Annotation `json:"annotations,omitempty" msgpack:"annotations"`
		Pos         *Position     `json:"pos,omitempty" msgpack:"pos"`
	}

	// Annotation is a metadata key with an opaque payload. The payload
	// is owned by the host and never interpreted by the generator core;
	// plugins decode it themselves. Keys may be bare ("skip") or
	// namespace-qualified ("show.skip", "deriving.show.skip").
	Annotation struct {
		Key     string    `json:"key" msgpack:"key"`
		Payload any       `json:"payload,omitempty" msgpack:"payload"`
		Pos     *Position `json:"pos,omitempty" msgpack:"pos"`
	}

	// Position is a source location used in diagnostics.
	Position struct {
		File   string `json:"file,omitempty" msgpack:"file"`
		Line   int    `json:"line,omitempty" msgpack:"line"`
		Column int    `json:"column,omitempty" msgpack:"column"`
	}

	// Request is a single derivation request: a plugin name plus the
	// raw, unvalidated option key/value pairs supplied with it.
	Request struct {
		Plugin  string    `json:"plugin" msgpack:"plugin"`
		Options []*KV     `json:"options,omitempty" msgpack:"options"`
		Pos     *Position `json:"pos,omitempty" msgpack:"pos"`
	}

	// KV is one raw option pair on a request. Order is preserved.
	KV struct {
		Key   string `json:"key" msgpack:"key"`
		Value any    `json:"value" msgpack:"value"`
	}
)

// BodyKind discriminates the right-hand side of a declaration.
type BodyKind int

const (
	// BodyAlias is an alias to a type expression.
	BodyAlias BodyKind = iota
	// BodyRecord is a record with named fields.
	BodyRecord
	// BodyVariant is a normal (closed) variant.
	BodyVariant
)

// ExprKind discriminates structural type expressions.
type ExprKind int

const (
	// ExprRef is a named type reference, possibly applied to arguments
	// (e.g. "int", "list" of "string", "M.t").
	ExprRef ExprKind = iota
	// ExprVar is a type variable bound by the enclosing declaration.
	ExprVar
	// ExprTuple is an ordered tuple of expressions.
	ExprTuple
	// ExprPolyVariant is an inline polymorphic-variant row set.
	ExprPolyVariant
)

// String returns the kind name for diagnostics.
func (k BodyKind) String() string {
	switch k {
	case BodyAlias:
		return "alias"
	case BodyRecord:
		return "record"
	case BodyVariant:
		return "variant"
	default:
		return fmt.Sprintf("BodyKind(%d)", int(k))
	}
}

// String returns the kind name for diagnostics.
func (k ExprKind) String() string {
	switch k {
	case ExprRef:
		return "ref"
	case ExprVar:
		return "var"
	case ExprTuple:
		return "tuple"
	case ExprPolyVariant:
		return "polyvariant"
	default:
		return fmt.Sprintf("ExprKind(%d)", int(k))
	}
}

// Ref returns a named type reference applied to the given arguments.
func Ref(name string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprRef, Name: name, Args: args}
}

// Var returns a type-variable expression.
func Var(name string) *Expr {
	return &Expr{Kind: ExprVar, Name: name}
}

// Tuple returns a tuple expression over the given elements.
func Tuple(elems ...*Expr) *Expr {
	return &Expr{Kind: ExprTuple, Args: elems}
}

// PolyVariant returns an inline polymorphic-variant expression.
func PolyVariant(rows ...*Ctor) *Expr {
	return &Expr{Kind: ExprPolyVariant, Rows: rows}
}

// Alias returns an alias body for the given expression.
func Alias(expr *Expr) *Body {
	return &Body{Kind: BodyAlias, Expr: expr}
}

// Record returns a record body over the given fields.
func Record(fields ...*Field) *Body {
	return &Body{Kind: BodyRecord, Fields: fields}
}

// Variant returns a variant body over the given constructors.
func Variant(ctors ...*Ctor) *Body {
	return &Body{Kind: BodyVariant, Ctors: ctors}
}

// Decl returns the declaration with the given name, or nil.
func (g *Group) Decl(name string) *TypeDecl {
	for _, d := range g.Decls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Declares reports whether a type name is declared in the group.
func (g *Group) Declares(name string) bool {
	return g.Decl(name) != nil
}

// String implements fmt.Stringer for diagnostics.
func (p *Position) String() string {
	if p == nil {
		return ""
	}
	if p.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}
