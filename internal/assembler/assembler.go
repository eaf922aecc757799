// Package assembler turns generated statements into the final text.
package assembler

import (
	"strings"

	"github.com/mcncl/jtestgen/internal/config"
	"github.com/mcncl/jtestgen/internal/generator"
)

// Assembler joins statements, one per line, with no surrounding scaffolding.
type Assembler struct {
	separator string
}

// NewAssembler uses the platform line separator.
func NewAssembler() *Assembler {
	return &Assembler{separator: config.PlatformLineSeparator()}
}

// NewAssemblerWithSeparator uses sep after every statement.
func NewAssemblerWithSeparator(sep string) *Assembler {
	if sep == "" {
		return NewAssembler()
	}
	return &Assembler{separator: sep}
}

// Assemble returns the statements in order, each followed by the separator.
func (a *Assembler) Assemble(statements []generator.Statement) string {
	var sb strings.Builder
	for _, s := range statements {
		sb.WriteString(s.String())
		sb.WriteString(a.separator)
	}
	return sb.String()
}
