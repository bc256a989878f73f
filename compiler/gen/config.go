package gen

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultHeader is the header comment written at the top of generated
// files.
const DefaultHeader = "Code generated by derive. DO NOT EDIT."

// Config holds the generation settings shared by the dispatcher and
// the writer.
type Config struct {
	// Target is the output directory for generated files.
	Target string
	// Package is the output package name.
	Package string
	// Header is the generated-file header comment.
	Header string
	// Style selects the identifier convention for mangled names.
	Style MangleStyle
	// Workers bounds parallel file writing.
	Workers int
	// Builtins extends the classifier's builtin table (name to arity).
	Builtins map[string]int
	// Aliases extends the classifier's one-level alias table.
	Aliases map[string]string
	// Registry resolves derivation names. Defaults to the process-wide
	// registry.
	Registry *Registry
}

// Option configures code generation.
type Option func(*Config) error

// DefaultConfig returns a config with the package defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Header:   DefaultHeader,
		Style:    CamelStyle,
		Workers:  runtime.GOMAXPROCS(0),
		Registry: DefaultRegistry(),
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return fmt.Errorf("derive: target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the output package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return fmt.Errorf("derive: package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the generated-file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithStyle sets the identifier convention for mangled names.
func WithStyle(style MangleStyle) Option {
	return func(c *Config) error {
		c.Style = style
		return nil
	}
}

// WithWorkers bounds the number of parallel writer workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n > 0 {
			c.Workers = n
		}
		return nil
	}
}

// WithBuiltin adds a builtin name with its type-argument arity to the
// classifier's recognition table.
func WithBuiltin(name string, arity int) Option {
	return func(c *Config) error {
		if c.Builtins == nil {
			c.Builtins = make(map[string]int)
		}
		c.Builtins[name] = arity
		return nil
	}
}

// WithAlias adds a one-level alias resolving to another type name,
// typically a module-qualified spelling of a builtin.
func WithAlias(alias, target string) Option {
	return func(c *Config) error {
		if c.Aliases == nil {
			c.Aliases = make(map[string]string)
		}
		c.Aliases[alias] = target
		return nil
	}
}

// WithRegistry overrides the plugin registry. Useful for tests and for
// hosts that isolate plugin sets per compilation unit.
func WithRegistry(r *Registry) Option {
	return func(c *Config) error {
		if r == nil {
			return fmt.Errorf("derive: registry cannot be nil")
		}
		c.Registry = r
		return nil
	}
}

// configFile is the YAML form of the generation settings.
type configFile struct {
	Target   string            `yaml:"target"`
	Package  string            `yaml:"package"`
	Header   string            `yaml:"header"`
	Style    string            `yaml:"style"`
	Workers  int               `yaml:"workers"`
	Builtins map[string]int    `yaml:"builtins"`
	Aliases  map[string]string `yaml:"aliases"`
}

// FromFile loads settings from a YAML config file. Keys absent from
// the file leave the current values unchanged.
func FromFile(path string) Option {
	return func(c *Config) error {
		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("derive: read config %s: %w", path, err)
		}
		var cf configFile
		if err := yaml.Unmarshal(buf, &cf); err != nil {
			return fmt.Errorf("derive: parse config %s: %w", path, err)
		}
		if cf.Target != "" {
			c.Target = cf.Target
		}
		if cf.Package != "" {
			c.Package = cf.Package
		}
		if cf.Header != "" {
			c.Header = cf.Header
		}
		if cf.Style != "" {
			style, err := ParseMangleStyle(cf.Style)
			if err != nil {
				return err
			}
			c.Style = style
		}
		if cf.Workers > 0 {
			c.Workers = cf.Workers
		}
		for name, arity := range cf.Builtins {
			if c.Builtins == nil {
				c.Builtins = make(map[string]int)
			}
			c.Builtins[name] = arity
		}
		for alias, target := range cf.Aliases {
			if c.Aliases == nil {
				c.Aliases = make(map[string]string)
			}
			c.Aliases[alias] = target
		}
		return nil
	}
}
