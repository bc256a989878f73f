package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer renders binding groups to disk, one file per plugin, with
// parallel execution. Rendered output is normalized through the imports
// processor so files written by different plugins agree on formatting.
type Writer struct {
	config *Config
}

// NewWriter creates a writer for the given config. The config's Target
// and Package must be set before Write is called.
func NewWriter(c *Config) *Writer {
	return &Writer{config: c}
}

// Write renders each binding group into <target>/<plugin>_gen.go.
// Groups are independent once generation has completed, so files are
// written in parallel, bounded by the configured worker count.
func (w *Writer) Write(ctx context.Context, groups map[string]*BindingGroup) error {
	if w.config.Target == "" {
		return fmt.Errorf("derive: missing target directory in config")
	}
	pkg := w.config.Package
	if pkg == "" {
		pkg = filepath.Base(w.config.Target)
	}
	if err := os.MkdirAll(w.config.Target, 0o755); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.config.Workers)
	for _, bg := range groups {
		bg := bg
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeGroup(bg, pkg)
			}
		})
	}
	return eg.Wait()
}

func (w *Writer) writeGroup(bg *BindingGroup, pkg string) error {
	name := strings.ToLower(bg.Plugin) + "_gen.go"
	path := filepath.Join(w.config.Target, name)

	var buf bytes.Buffer
	if err := bg.File(pkg, w.config.Header).Render(&buf); err != nil {
		return fmt.Errorf("derive: render %s: %w", name, err)
	}
	// Normalize imports and formatting across plugin outputs.
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("derive: format %s: %w", name, err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return fmt.Errorf("derive: write %s: %w", name, err)
	}
	return nil
}
