// Command craby compiles native module spec files and generates the Rust and
// C++ bindings for them.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/l2hyunwoo/craby/ir"
	"github.com/l2hyunwoo/craby/project"
	"github.com/l2hyunwoo/craby/sink"
)

type CLI struct {
	Root    string `help:"Project root directory." default:"." type:"existingdir"`
	Verbose bool   `help:"Enable debug logging." short:"v"`

	Codegen CodegenCmd `cmd:"" help:"Compile specs and write the generated bindings."`
	Check   CheckCmd   `cmd:"" help:"Compile and validate specs without writing files."`
	Show    ShowCmd    `cmd:"" help:"Print compiled module schemas as JSON."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// runEnv carries what every command needs.
type runEnv struct {
	ctx    context.Context
	root   string
	logger *slog.Logger
}

func (e *runEnv) compile() ([]*ir.Schema, error) {
	cfg, err := project.LoadConfig(e.root)
	if err != nil {
		return nil, err
	}
	c := &project.Compiler{Root: e.root, Config: cfg, Logger: e.logger}
	return c.Compile(e.ctx)
}

type CodegenCmd struct{}

func (c *CodegenCmd) Run(env *runEnv) error {
	schemas, err := env.compile()
	if err != nil {
		return err
	}
	env.logger.Info("modules compiled", slog.Int("count", len(schemas)))

	files, err := project.Render(schemas)
	if err != nil {
		return err
	}

	out := sink.NewFilesystemSink(env.root)
	keep := sink.NewFilesystemSink(env.root)
	keep.Overwrite = false

	wrote, err := project.WriteFiles(env.ctx, files, out, keep, env.logger)
	if err != nil {
		return err
	}
	env.logger.Info("files generated", slog.Int("count", wrote))
	return nil
}

type CheckCmd struct{}

func (c *CheckCmd) Run(env *runEnv) error {
	schemas, err := env.compile()
	if err != nil {
		return err
	}
	for _, s := range schemas {
		env.logger.Info("module ok",
			slog.String("module", s.ModuleName),
			slog.Int("methods", len(s.Methods)))
	}
	fmt.Printf("%d module(s) valid\n", len(schemas))
	return nil
}

type ShowCmd struct{}

func (c *ShowCmd) Run(env *runEnv) error {
	schemas, err := env.compile()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(env *runEnv) error {
	fmt.Println(Version())
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("craby"),
		kong.Description("Native module schema compiler and binding generator."),
		kong.UsageOnError(),
	)

	env := &runEnv{
		ctx:    context.Background(),
		root:   cli.Root,
		logger: newLogger(cli.Verbose),
	}
	kctx.FatalIfErrorf(kctx.Run(env))
}
