package generator

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/jtestgen/internal/config"
	"github.com/mcncl/jtestgen/internal/errors"
	"github.com/mcncl/jtestgen/internal/formatter"
	"github.com/mcncl/jtestgen/internal/models"
	"github.com/mcncl/jtestgen/internal/path"
)

// Statement is one generated assertion line.
type Statement struct {
	Verb    formatter.Verb
	Literal string
	Path    path.Path
	Level   int
}

// String renders the statement including its terminating semicolon.
func (s Statement) String() string {
	if s.Verb == formatter.VerbEquals {
		return fmt.Sprintf("%s(%s, %s);", s.Verb, s.Literal, s.Path)
	}
	return fmt.Sprintf("%s(%s);", s.Verb, s.Path)
}

// Generator walks a parsed document and emits one Statement per leaf
type Generator struct {
	formatter *formatter.Formatter
	namer     path.Namer
	nested    string
	logger    *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithFormatter sets the literal formatter.
func WithFormatter(f *formatter.Formatter) Option {
	return func(g *Generator) { g.formatter = f }
}

// WithNamer sets how JSON keys become accessor names.
func WithNamer(n path.Namer) Option {
	return func(g *Generator) { g.namer = n }
}

// WithNestedArrays sets the arrays-of-arrays policy, config.NestedArraysRecurse or config.NestedArraysFail.
func WithNestedArrays(policy string) Option {
	return func(g *Generator) { g.nested = policy }
}

// WithLogger reports every emitted statement at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a new Generator instance
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		formatter: formatter.NewFormatter(),
		namer:     path.Verbatim,
		nested:    config.NestedArraysRecurse,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGeneratorWithConfig creates a new Generator from configuration
func NewGeneratorWithConfig(cfg *config.Config, opts ...Option) *Generator {
	base := []Option{
		WithFormatter(formatter.NewFormatterWithOptions(formatter.OptionsFromConfig(cfg))),
		WithNamer(path.NewNamer(cfg.Naming)),
		WithNestedArrays(cfg.Arrays.Nested),
	}
	return NewGenerator(append(base, opts...)...)
}

// Generate walks doc depth-first in document order: object members in insertion
// order, array elements in index order. Containers produce no statements of their own.
func (g *Generator) Generate(doc models.Document) ([]Statement, error) {
	w := &walk{g: g, out: make([]Statement, 0)}
	for i, v := range doc.Values {
		root := path.Root(doc.RootIsArray, i)
		var err error
		switch v.Kind {
		case models.KindObject:
			err = w.object(v, root, 1)
		case models.KindArray:
			err = w.nestedArray(v, root, 1)
		default:
			err = w.emit(v, root, 0)
		}
		if err != nil {
			return nil, err
		}
	}
	g.logger.Debug("generated assertions", slog.Int("count", len(w.out)), slog.Bool("root_is_array", doc.RootIsArray))
	return w.out, nil
}

type walk struct {
	g   *Generator
	out []Statement
}

func (w *walk) object(v models.Value, parent path.Path, level int) error {
	for _, m := range v.Members {
		child := path.Child(parent, w.g.namer(m.Key))
		var err error
		switch m.Value.Kind {
		case models.KindObject:
			err = w.object(m.Value, child, level+1)
		case models.KindArray:
			err = w.array(m.Value, child, level+1)
		default:
			err = w.emit(m.Value, child, level)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *walk) array(v models.Value, parent path.Path, level int) error {
	for i, item := range v.Items {
		elem := path.Indexed(parent, i)
		var err error
		switch item.Kind {
		case models.KindObject:
			err = w.object(item, elem, level+1)
		case models.KindArray:
			err = w.nestedArray(item, elem, level+1)
		default:
			err = w.emit(item, elem, level)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// nestedArray handles an array whose parent is itself an array.
func (w *walk) nestedArray(v models.Value, p path.Path, level int) error {
	if w.g.nested == config.NestedArraysFail {
		return errors.NewGenerateError(fmt.Sprintf("array of arrays at %s", p), errors.ErrNestedArray)
	}
	return w.array(v, p, level)
}

func (w *walk) emit(v models.Value, p path.Path, level int) error {
	r, err := w.g.formatter.Format(v)
	if err != nil {
		return errors.NewGenerateError(fmt.Sprintf("failed to render value at %s", p), err)
	}
	s := Statement{Verb: r.Verb, Literal: r.Literal, Path: p, Level: level}
	w.g.logger.Debug("assertion", slog.String("statement", s.String()), slog.Int("level", level))
	w.out = append(w.out, s)
	return nil
}
