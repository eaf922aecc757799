package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jtestgen/internal/assembler"
	"github.com/mcncl/jtestgen/internal/config"
	"github.com/mcncl/jtestgen/internal/errors"
	"github.com/mcncl/jtestgen/internal/generator"
	"github.com/mcncl/jtestgen/internal/models"
	"github.com/mcncl/jtestgen/internal/parser"
)

// stdinInput selects standard input instead of a file.
const stdinInput = "-"

// CLI defines the command-line interface
var CLI struct {
	Input         string `arg:"" optional:"" help:"Path to input JSON file, or - for stdin." default:"test.json"`
	Output        string `help:"Path to output file. Defaults to <input>_test.txt." short:"o" type:"path"`
	Stdout        bool   `help:"Write assertions to stdout instead of a file."`
	Config        string `help:"Path to config file. If not specified, searches for .jtestgen.yml." short:"c" type:"path"`
	EscapeStrings bool   `help:"Escape quotes and control characters in string literals."`
	ExactNumbers  bool   `help:"Render numbers as written instead of truncating them to integers."`
	NestedArrays  string `help:"How to handle arrays of arrays: recurse or fail."`
	FieldCase     string `help:"Rewrite JSON keys in paths: verbatim, camel, lower_camel or snake."`
	Backend       string `help:"JSON parser backend: jsontext or orderedmap."`
	Debug         bool   `help:"Enable debug logging." short:"d"`
	Version       bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jtestgen"),
		kong.Description("Generate test assertions from a JSON document"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jtestgen version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	logger := newLogger(cfg.Dev.Debug)
	slog.SetDefault(logger)

	err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jtestgen --help\n")
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig merges the config file, if any, with CLI flags
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		EscapeStrings: CLI.EscapeStrings,
		ExactNumbers:  CLI.ExactNumbers,
		NestedArrays:  CLI.NestedArrays,
		FieldCase:     CLI.FieldCase,
		Backend:       CLI.Backend,
		Debug:         CLI.Debug,
	})
	if err != nil {
		if configPath != "" {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load '%s'", configPath), err)
		}
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.New(slog.DiscardHandler)
	}

	// 1. Parse JSON input
	doc, err := parseInput(ctx)
	if err != nil {
		// Error is already wrapped by the parser
		return err
	}

	// 2. Walk the document
	generatorInst := generator.NewGeneratorWithConfig(ctx.Config, generator.WithLogger(ctx.Logger))
	statements, err := generatorInst.Generate(doc)
	if err != nil {
		return err
	}

	// 3. Join the statements
	code := assembler.NewAssemblerWithSeparator(ctx.Config.LineSeparator()).Assemble(statements)

	// 4. Output the result
	return writeOutput(ctx, code, len(statements))
}

// parseInput reads JSON from the input file or stdin
func parseInput(ctx *Context) (models.Document, error) {
	backend := ctx.Config.Parser.Backend
	if CLI.Input == stdinInput {
		return parser.ParseWith(os.Stdin, backend)
	}
	input := CLI.Input
	if input == "" {
		input = config.DefaultInput
	}
	ctx.Logger.Debug("reading input", slog.String("path", input), slog.String("backend", backend))
	return parser.ParseFileWith(input, backend)
}

// outputPath returns the destination file, or "" for stdout
func outputPath(cfg *config.Config) string {
	if CLI.Stdout {
		return ""
	}
	if CLI.Output != "" {
		return CLI.Output
	}
	if CLI.Input == stdinInput {
		return ""
	}
	input := CLI.Input
	if input == "" {
		input = config.DefaultInput
	}
	return cfg.OutputPath(input)
}

// writeOutput writes code to the output file or stdout
func writeOutput(ctx *Context, code string, count int) error {
	dest := outputPath(ctx.Config)
	if dest == "" {
		if _, err := fmt.Fprint(os.Stdout, code); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if err := writeFileAtomic(dest, []byte(code)); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", dest), err)
	}
	ctx.Logger.Info("assertions written", slog.String("path", dest), slog.Int("count", count))
	return nil
}

// writeFileAtomic writes data next to path and renames it into place,
// so a failure never leaves a partially written destination.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
