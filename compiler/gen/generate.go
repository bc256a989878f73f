package gen

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dave/jennifer/jen"
	"github.com/syssam/derive/compiler/decl"
)

// affixOption is the reserved option key overriding the plugin's
// function-name fragment. It applies only when the plugin's schema
// declares it.
const affixOption = "affix"

// Dispatcher orchestrates derivation for declaration groups: it
// resolves requests against the registry, validates options, builds
// per-plugin attribute views, classifies declarations, invokes the
// generator callbacks, and assembles the results into one recursive
// binding group per plugin.
//
// A dispatcher is stateless across groups and safe for concurrent use
// once the registry is fully populated.
type Dispatcher struct {
	config *Config
}

// NewDispatcher creates a dispatcher with the given options applied on
// top of the defaults.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return &Dispatcher{config: c}, nil
}

// Config returns the dispatcher's configuration.
func (d *Dispatcher) Config() *Config {
	return d.config
}

// Generate derives one binding group per request for the given group
// of mutually recursive declarations.
//
// Requests naming unregistered plugins abort the whole group before any
// generation happens, so users are never left with a half-derived
// module. After that, each request is processed independently: a
// failure aborts only that request (its partial bindings are
// discarded), sibling requests continue, and all failures are returned
// joined alongside the groups that succeeded.
func (d *Dispatcher) Generate(group *decl.Group, reqs []*decl.Request) (map[string]*BindingGroup, error) {
	records, err := d.resolve(reqs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*BindingGroup, len(reqs))
	var errs []error
	for i, req := range reqs {
		bg, err := d.generateOne(group, req, records[i], false)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[req.Plugin] = bg
	}
	return out, errors.Join(errs...)
}

// GenerateSignatures derives declaration stubs for the requests whose
// plugins implement the companion SignatureGenerator capability.
// Plugins without the capability are skipped. Failure semantics match
// Generate.
func (d *Dispatcher) GenerateSignatures(group *decl.Group, reqs []*decl.Request) (map[string]*BindingGroup, error) {
	records, err := d.resolve(reqs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*BindingGroup, len(reqs))
	var errs []error
	for i, req := range reqs {
		if records[i].Signature() == nil {
			continue
		}
		bg, err := d.generateOne(group, req, records[i], true)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[req.Plugin] = bg
	}
	return out, errors.Join(errs...)
}

// resolve looks up every request before generation starts, failing
// fast on the first unknown or duplicated derivation name.
func (d *Dispatcher) resolve(reqs []*decl.Request) ([]*PluginRecord, error) {
	records := make([]*PluginRecord, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for i, req := range reqs {
		if _, dup := seen[req.Plugin]; dup {
			return nil, fmt.Errorf("derive: plugin %q requested twice on one group", req.Plugin)
		}
		seen[req.Plugin] = struct{}{}
		rec, err := d.config.Registry.Lookup(req.Plugin)
		if err != nil {
			var pe *PluginError
			if errors.As(err, &pe) && req.Pos != nil {
				pe.Pos = req.Pos
			}
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

// generateOne processes a single request over the whole group.
func (d *Dispatcher) generateOne(group *decl.Group, req *decl.Request, rec *PluginRecord, signature bool) (*BindingGroup, error) {
	opts, err := rec.Schema().Parse(rec.Name(), req)
	if err != nil {
		return nil, err
	}
	fragment := rec.Name()
	if affix := opts.String(affixOption); affix != "" {
		fragment = affix
	}
	builtins := rec.Builtins()
	if len(d.config.Builtins) > 0 {
		merged := maps.Clone(d.config.Builtins)
		maps.Copy(merged, builtins)
		builtins = merged
	}
	classifier := NewClassifier(group, builtins, d.config.Aliases)

	bg := &BindingGroup{Plugin: rec.Name(), Bindings: make([]*Binding, 0, len(group.Decls))}
	for _, td := range group.Decls {
		b, err := d.bind(classifier, rec, td, opts, fragment, signature)
		if err != nil {
			return nil, &GenerationError{Plugin: rec.Name(), Decl: td.Name, Pos: td.Pos, Cause: err}
		}
		bg.Bindings = append(bg.Bindings, b)
	}
	return bg, nil
}

// bind derives a single binding for one declaration under one plugin.
func (d *Dispatcher) bind(c *Classifier, rec *PluginRecord, td *decl.TypeDecl, opts Options, fragment string, signature bool) (*Binding, error) {
	shape, err := c.Classify(td)
	if err != nil {
		return nil, err
	}
	task := &Task{
		Decl:     td,
		Shape:    shape,
		Options:  opts,
		Attrs:    NewAttrView(rec.Name(), td.Annotations),
		plugin:   rec.Name(),
		fragment: fragment,
		style:    d.config.Style,
		group:    c.group,
	}
	var fn *Func
	if signature {
		fn, err = rec.Signature().Signature(task)
	} else {
		fn, err = rec.Plugin().Generate(task)
	}
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("plugin returned no function")
	}
	if len(fn.Handlers) != len(td.Params) {
		return nil, fmt.Errorf("plugin supplied %d handler type(s) for %d type parameter(s)", len(fn.Handlers), len(td.Params))
	}
	name, err := task.FuncName()
	if err != nil {
		return nil, err
	}
	b := &Binding{
		Name:       name,
		Decl:       td.Name,
		TypeParams: task.TypeParams(),
		Params:     fn.Params,
		Results:    fn.Results,
		Body:       fn.Body,
	}
	// Handler parameters are threaded first, one per type variable, in
	// declaration order.
	for i, tv := range td.Params {
		b.Handlers = append(b.Handlers, jen.Id(task.HandlerName(tv)).Add(fn.Handlers[i]))
	}
	return b, nil
}
