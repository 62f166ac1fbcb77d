package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/l2hyunwoo/craby/codegen"
	"github.com/l2hyunwoo/craby/ir"
	"github.com/l2hyunwoo/craby/sink"
)

// GeneratedComment marks files that are rewritten on every codegen run.
const GeneratedComment = "Generated by craby. Do not edit this file manually."

// SchemaFileName is the schema dump written alongside the generated code.
const SchemaFileName = "craby-schema.json"

// File is one rendered output file.
type File struct {
	// Path is the slash-separated path relative to the project root.
	Path string

	// Content is the full file content, newline terminated.
	Content string

	// Overwrite distinguishes regenerated files from one-time stubs that
	// preserve user edits.
	Overwrite bool
}

// Render turns compiled schemas into the full set of output files: the Rust
// crate sources, one implementation stub per module, the C++ JSI bindings,
// and the schema dump.
func Render(schemas []*ir.Schema) ([]File, error) {
	gen := codegen.NewGenerator()

	results := make([]*codegen.Result, 0, len(schemas))
	for _, schema := range schemas {
		res, err := gen.Generate(schema)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	var files []File
	add := func(p, content string, overwrite bool) {
		files = append(files, File{Path: p, Content: banner(p, content, overwrite), Overwrite: overwrite})
	}

	add("src/lib.rs", codegen.LibRS(results), true)
	add("src/ffi.rs", codegen.FFIRS(results), true)
	add("src/generated.rs", codegen.GeneratedRS(results), true)

	for _, res := range results {
		add(path.Join("src", res.ImplMod+".rs"), res.ImplCode, false)
		cls := codegen.ClassName(res.ModuleName)
		add(path.Join("cpp", cls+".hpp"), codegen.ModuleHpp(res), true)
		add(path.Join("cpp", cls+".cpp"), codegen.ModuleCpp([]*codegen.Result{res}), true)
	}

	add(path.Join("cpp", "bridging-generated.hpp"), codegen.BridgingHpp(results), true)

	dump, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema dump: %w", err)
	}
	add(SchemaFileName, string(dump), true)

	return files, nil
}

// banner prepends the generated-file comment for regenerated source files.
// Stub files and the JSON dump are left bare.
func banner(p, content string, overwrite bool) string {
	content = strings.TrimSuffix(content, "\n") + "\n"
	if !overwrite {
		return content
	}
	switch path.Ext(p) {
	case ".rs", ".cpp", ".hpp", ".mm":
		return "// " + GeneratedComment + "\n" + content
	case ".txt":
		return "# " + GeneratedComment + "\n" + content
	default:
		return content
	}
}

// WriteFiles writes rendered files through the sinks: regenerated files go to
// out, stubs go to keep, which is expected to reject existing files with
// sink.ErrExists. It returns the number of files actually written; skipped
// stubs do not count.
func WriteFiles(ctx context.Context, files []File, out, keep sink.OutputSink, logger *slog.Logger) (int, error) {
	wrote := 0
	for _, f := range files {
		dst := out
		if !f.Overwrite {
			dst = keep
		}

		err := dst.WriteFile(ctx, f.Path, []byte(f.Content))
		switch {
		case err == nil:
			wrote++
			if logger != nil {
				logger.DebugContext(ctx, "file generated", slog.String("path", f.Path))
			}
		case !f.Overwrite && errors.Is(err, sink.ErrExists):
			if logger != nil {
				logger.DebugContext(ctx, "skipped existing file", slog.String("path", f.Path))
			}
		default:
			return wrote, fmt.Errorf("write %s: %w", f.Path, err)
		}
	}
	return wrote, nil
}
