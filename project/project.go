// Package project drives whole-project compilation: it discovers spec files,
// compiles each one independently, enforces cross-unit invariants, and renders
// the generated artifacts through an output sink.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/l2hyunwoo/craby/analyzer"
	"github.com/l2hyunwoo/craby/ir"
)

// SpecFilePrefix marks a TypeScript file as a native module spec.
const SpecFilePrefix = "Native"

// Compiler compiles every spec file under a project's source directory.
type Compiler struct {
	// Root is the project root directory.
	Root string

	// Config is the loaded project configuration.
	Config *Config

	// Workers bounds compilation concurrency. Zero means one worker per CPU.
	Workers int

	// Logger receives progress events. Nil disables logging.
	Logger *slog.Logger
}

// Unit is the compilation result of one spec file.
type Unit struct {
	// Path is the spec file path relative to the project root.
	Path string

	// Schemas holds the unit's compiled module schemas. Empty whenever
	// Diagnostics is not: a failing unit produces no schemas at all.
	Schemas []*ir.Schema

	// Diagnostics holds the unit's analysis problems.
	Diagnostics []analyzer.Diagnostic
}

// Failed reports whether the unit produced any diagnostic.
func (u *Unit) Failed() bool { return len(u.Diagnostics) > 0 }

// UnitError aggregates the diagnostics of every failing unit.
type UnitError struct {
	Units []*Unit
}

func (e *UnitError) Error() string {
	var b strings.Builder
	for i, u := range e.Units {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %d problem(s)", u.Path, len(u.Diagnostics))
		for _, d := range u.Diagnostics {
			fmt.Fprintf(&b, "\n  %s", d)
		}
	}
	return b.String()
}

// Compile discovers and compiles all spec files, returning the project's
// schemas sorted by module name. Any unit diagnostic fails the whole run:
// schemas from clean units are discarded along with the failing ones.
func (c *Compiler) Compile(ctx context.Context) ([]*ir.Schema, error) {
	sourceDir := filepath.Join(c.Root, c.Config.Project.SourceDir)

	paths, err := DiscoverSpecFiles(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no native module specification files found in %s", sourceDir)
	}
	c.log(ctx, "spec files discovered", slog.Int("count", len(paths)))

	units, err := c.compileUnits(ctx, paths)
	if err != nil {
		return nil, err
	}

	var failed []*Unit
	var schemas []*ir.Schema
	for _, u := range units {
		if u.Failed() {
			failed = append(failed, u)
			continue
		}
		schemas = append(schemas, u.Schemas...)
	}
	if len(failed) > 0 {
		return nil, &UnitError{Units: failed}
	}

	if err := checkModuleNames(units); err != nil {
		return nil, err
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("no native modules registered in %d spec file(s)", len(paths))
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].ModuleName < schemas[j].ModuleName
	})
	c.log(ctx, "compilation finished", slog.Int("modules", len(schemas)))

	return schemas, nil
}

// compileUnits runs every unit through a bounded worker pool. Results keep
// the discovery order regardless of which worker finished first.
func (c *Compiler) compileUnits(ctx context.Context, paths []string) ([]*Unit, error) {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	units := make([]*Unit, len(paths))
	errs := make([]error, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				units[i], errs[i] = c.compileUnit(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return units, nil
}

func (c *Compiler) compileUnit(ctx context.Context, path string) (*Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	rel, err := filepath.Rel(c.Root, path)
	if err != nil {
		rel = path
	}

	schemas, diags, err := analyzer.AnalyzeSource(rel, string(src))
	if err != nil {
		return nil, err
	}
	c.log(ctx, "unit compiled",
		slog.String("path", rel),
		slog.Int("schemas", len(schemas)),
		slog.Int("diagnostics", len(diags)))

	return &Unit{Path: rel, Schemas: schemas, Diagnostics: diags}, nil
}

func (c *Compiler) log(ctx context.Context, msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.DebugContext(ctx, msg, args...)
	}
}

// DiscoverSpecFiles walks dir recursively and returns all Native*.ts spec
// files in sorted order.
func DiscoverSpecFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, SpecFilePrefix) && strings.HasSuffix(name, ".ts") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover spec files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// checkModuleNames enforces project-wide module name uniqueness across units.
// Duplicates inside one unit are already caught by the analyzer.
func checkModuleNames(units []*Unit) error {
	seen := make(map[string]string)
	for _, u := range units {
		for _, s := range u.Schemas {
			if prev, ok := seen[s.ModuleName]; ok && prev != u.Path {
				return fmt.Errorf("module %q is registered in both %s and %s", s.ModuleName, prev, u.Path)
			}
			seen[s.ModuleName] = u.Path
		}
	}
	return nil
}
