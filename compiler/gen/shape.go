package gen

import (
	"fmt"
	"maps"

	"github.com/syssam/derive/compiler/decl"
)

// ShapeKind discriminates the classified structure of a type. The enum
// is closed: plugins switch over it exhaustively, and a shape outside a
// plugin's support surfaces as an UnsupportedShape error rather than a
// runtime gap.
type ShapeKind int

const (
	// ShapeBuiltin is a recognized primitive or parametric container
	// (int, string, list, option, ...).
	ShapeBuiltin ShapeKind = iota
	// ShapeTuple is an ordered tuple.
	ShapeTuple
	// ShapeRecord is a record with named, ordered fields.
	ShapeRecord
	// ShapeVariant is a normal (closed) variant; generated matching is
	// exhaustive over its constructors in declaration order.
	ShapeVariant
	// ShapePolyVariant is a polymorphic-variant row set; generated
	// matching uses open/closed row semantics rather than exhaustive
	// constructor matching.
	ShapePolyVariant
	// ShapeLocal is a reference to a type declared in the same group.
	// Its derived function lives in the same recursive binding group.
	ShapeLocal
	// ShapeAbstract is a reference to a type declared elsewhere. Its
	// derived function is assumed to already exist in scope under the
	// same mangling convention.
	ShapeAbstract
	// ShapeVar is a type variable bound by the enclosing declaration;
	// generated code delegates to the threaded handler for it.
	ShapeVar
)

// String returns the kind name for diagnostics.
func (k ShapeKind) String() string {
	switch k {
	case ShapeBuiltin:
		return "builtin"
	case ShapeTuple:
		return "tuple"
	case ShapeRecord:
		return "record"
	case ShapeVariant:
		return "variant"
	case ShapePolyVariant:
		return "polyvariant"
	case ShapeLocal:
		return "local"
	case ShapeAbstract:
		return "abstract"
	case ShapeVar:
		return "var"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// The following types form the classified view of a declaration.
type (
	// Shape is the recursive structural classification of a type
	// expression. Exactly the fields relevant to Kind are set.
	Shape struct {
		Kind ShapeKind
		// Name holds the builtin name, the local type name, the
		// abstract qualified name, or the variable name.
		Name string
		// Args holds type arguments (builtin, local, abstract) or
		// tuple elements.
		Args []*Shape
		// Fields holds record fields in declaration order.
		Fields []*FieldShape
		// Ctors holds variant constructors or polymorphic-variant rows
		// in declaration order.
		Ctors []*CtorShape
	}

	// FieldShape pairs a record field with its classified type.
	FieldShape struct {
		Field *decl.Field
		Shape *Shape
	}

	// CtorShape pairs a constructor with its classified arguments.
	CtorShape struct {
		Ctor *decl.Ctor
		Args []*Shape
	}
)

// defaultBuiltins is the fixed recognition table: builtin name to
// type-argument arity.
var defaultBuiltins = map[string]int{
	"int":    0,
	"int32":  0,
	"int64":  0,
	"float":  0,
	"bool":   0,
	"char":   0,
	"string": 0,
	"bytes":  0,
	"list":   1,
	"array":  1,
	"option": 1,
}

// defaultAliases resolves module-qualified spellings of the builtins
// through a single level of indirection.
var defaultAliases = map[string]string{
	"Int.t":    "int",
	"Int32.t":  "int32",
	"Int64.t":  "int64",
	"Float.t":  "float",
	"Bool.t":   "bool",
	"Char.t":   "char",
	"String.t": "string",
	"Bytes.t":  "bytes",
	"List.t":   "list",
	"Array.t":  "array",
	"Option.t": "option",
}

// Classifier inspects declaration right-hand sides and classifies them
// into shapes, recursively for nested type expressions. The builtin and
// alias tables are extensible through config and per-plugin overrides;
// they are copied at construction, so a classifier never observes later
// mutation.
type Classifier struct {
	group    *decl.Group
	vars     map[string]struct{}
	builtins map[string]int
	aliases  map[string]string
}

// NewClassifier builds a classifier for one declaration group. The
// extra builtin and alias tables override the defaults entry-by-entry.
func NewClassifier(group *decl.Group, builtins map[string]int, aliases map[string]string) *Classifier {
	c := &Classifier{
		group:    group,
		builtins: maps.Clone(defaultBuiltins),
		aliases:  maps.Clone(defaultAliases),
	}
	maps.Copy(c.builtins, builtins)
	maps.Copy(c.aliases, aliases)
	return c
}

// Classify classifies a declaration's right-hand side. Type variables
// are resolved against the declaration's own parameter list; an unbound
// variable is an error.
func (c *Classifier) Classify(d *decl.TypeDecl) (*Shape, error) {
	c.vars = make(map[string]struct{}, len(d.Params))
	for _, p := range d.Params {
		c.vars[p] = struct{}{}
	}
	switch d.Body.Kind {
	case decl.BodyAlias:
		return c.classifyExpr(d.Body.Expr)
	case decl.BodyRecord:
		fields := make([]*FieldShape, len(d.Body.Fields))
		for i, f := range d.Body.Fields {
			shape, err := c.classifyExpr(f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields[i] = &FieldShape{Field: f, Shape: shape}
		}
		return &Shape{Kind: ShapeRecord, Fields: fields}, nil
	case decl.BodyVariant:
		ctors, err := c.classifyCtors(d.Body.Ctors)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: ShapeVariant, Ctors: ctors}, nil
	default:
		return nil, fmt.Errorf("derive: unknown body kind %s on %q", d.Body.Kind, d.Name)
	}
}

func (c *Classifier) classifyExpr(e *decl.Expr) (*Shape, error) {
	switch e.Kind {
	case decl.ExprVar:
		if _, ok := c.vars[e.Name]; !ok {
			return nil, fmt.Errorf("derive: unbound type variable %q", e.Name)
		}
		return &Shape{Kind: ShapeVar, Name: e.Name}, nil
	case decl.ExprTuple:
		elems, err := c.classifyArgs(e.Args)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: ShapeTuple, Args: elems}, nil
	case decl.ExprPolyVariant:
		rows, err := c.classifyCtors(e.Rows)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: ShapePolyVariant, Ctors: rows}, nil
	case decl.ExprRef:
		return c.classifyRef(e)
	default:
		return nil, fmt.Errorf("derive: unknown expression kind %s", e.Kind)
	}
}

func (c *Classifier) classifyRef(e *decl.Expr) (*Shape, error) {
	name := e.Name
	// A single level of alias indirection before builtin recognition.
	if target, ok := c.aliases[name]; ok {
		name = target
	}
	args, err := c.classifyArgs(e.Args)
	if err != nil {
		return nil, err
	}
	if arity, ok := c.builtins[name]; ok {
		if len(args) != arity {
			return nil, fmt.Errorf("derive: builtin %q expects %d type argument(s), got %d", name, arity, len(args))
		}
		return &Shape{Kind: ShapeBuiltin, Name: name, Args: args}, nil
	}
	if c.group != nil && c.group.Declares(name) {
		return &Shape{Kind: ShapeLocal, Name: name, Args: args}, nil
	}
	return &Shape{Kind: ShapeAbstract, Name: e.Name, Args: args}, nil
}

func (c *Classifier) classifyArgs(exprs []*decl.Expr) ([]*Shape, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	args := make([]*Shape, len(exprs))
	for i, e := range exprs {
		shape, err := c.classifyExpr(e)
		if err != nil {
			return nil, err
		}
		args[i] = shape
	}
	return args, nil
}

func (c *Classifier) classifyCtors(ctors []*decl.Ctor) ([]*CtorShape, error) {
	out := make([]*CtorShape, len(ctors))
	for i, ct := range ctors {
		args, err := c.classifyArgs(ct.Args)
		if err != nil {
			return nil, fmt.Errorf("constructor %q: %w", ct.Name, err)
		}
		out[i] = &CtorShape{Ctor: ct, Args: args}
	}
	return out, nil
}
