package gen

import (
	"sort"
	"sync"
)

// PluginRecord is one registry entry: the plugin, its option schema,
// and the optional capabilities detected at registration time.
type PluginRecord struct {
	name      string
	plugin    Plugin
	schema    *OptionSchema
	signature SignatureGenerator
	builtins  map[string]int
}

// Name returns the plugin's unique derivation name.
func (r *PluginRecord) Name() string { return r.name }

// Plugin returns the registered generator.
func (r *PluginRecord) Plugin() Plugin { return r.plugin }

// Schema returns the plugin's option schema.
func (r *PluginRecord) Schema() *OptionSchema { return r.schema }

// Signature returns the companion signature generator, or nil if the
// plugin does not implement the capability.
func (r *PluginRecord) Signature() SignatureGenerator { return r.signature }

// Builtins returns the plugin's builtin-table extensions, or nil.
func (r *PluginRecord) Builtins() map[string]int { return r.builtins }

// Registry maps derivation names to registered plugins. It is intended
// to be populated entirely during process initialization, before any
// generation request is processed, and treated as read-only afterward.
// Registration is guarded so init-time misuse is still detected, but
// steady-state lookups contend only on a read lock.
type Registry struct {
	mu      sync.RWMutex
	records map[string]*PluginRecord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*PluginRecord)}
}

// Register adds a plugin under its name. Names are unique and
// case-sensitive; registering a name twice is a configuration error,
// never a silent overwrite. Optional capabilities (SignatureGenerator,
// BuiltinExtender) are detected here via type assertions.
func (r *Registry) Register(p Plugin) error {
	name := p.Name()
	rec := &PluginRecord{
		name:   name,
		plugin: p,
		schema: p.Schema(),
	}
	if rec.schema == nil {
		rec.schema = NewOptionSchema()
	}
	if sg, ok := p.(SignatureGenerator); ok {
		rec.signature = sg
	}
	if be, ok := p.(BuiltinExtender); ok {
		rec.builtins = be.Builtins()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[name]; exists {
		return &PluginError{Plugin: name, Duplicate: true}
	}
	r.records[name] = rec
	return nil
}

// Lookup returns the record for a derivation name. Lookup is total: an
// unregistered name is a reported error, never a silent no-op.
func (r *Registry) Lookup(name string) (*PluginRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[name]
	if !ok {
		return nil, &PluginError{Plugin: name}
	}
	return rec, nil
}

// Names returns the registered derivation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is the process-wide registry used by the package
// functions and by dispatchers without an explicit registry override.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a plugin to the process-wide registry.
func Register(p Plugin) error {
	return defaultRegistry.Register(p)
}

// MustRegister adds a plugin to the process-wide registry and panics on
// a duplicate name. Intended for use from plugin init functions.
func MustRegister(p Plugin) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

// Lookup resolves a derivation name against the process-wide registry.
func Lookup(name string) (*PluginRecord, error) {
	return defaultRegistry.Lookup(name)
}
