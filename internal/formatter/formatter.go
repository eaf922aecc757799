package formatter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jtestgen/internal/config"
	"github.com/mcncl/jtestgen/internal/models"
)

// Verb is the assertion call a leaf turns into.
type Verb string

const (
	VerbEquals Verb = "assertEquals"
	VerbTrue   Verb = "assertTrue"
	VerbFalse  Verb = "assertFalse"
	VerbNull   Verb = "assertNull"
)

// numericString matches strings emitted without quotes.
var numericString = regexp.MustCompile(`^[0-9]+$`)

// Rendering is a scalar turned into source form. Literal is empty unless Verb is VerbEquals.
type Rendering struct {
	Verb    Verb
	Literal string
}

// Options controls literal rendering
type Options struct {
	// TruncateNumbers renders every number as an integer truncated toward zero,
	// saturating at the 32-bit signed range.
	TruncateNumbers bool
	// NumericStrings emits digit-only strings unquoted.
	NumericStrings bool
	// EscapeStrings escapes quotes, backslashes and control characters.
	EscapeStrings bool
}

// DefaultOptions returns the compatibility settings.
func DefaultOptions() Options {
	return Options{
		TruncateNumbers: true,
		NumericStrings:  true,
		EscapeStrings:   false,
	}
}

// OptionsFromConfig extracts literal settings from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TruncateNumbers: cfg.Literals.TruncateNumbers,
		NumericStrings:  cfg.Literals.NumericStrings,
		EscapeStrings:   cfg.Literals.EscapeStrings,
	}
}

// Formatter renders scalar JSON values as assertion literals
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter with the compatibility settings
func NewFormatter() *Formatter {
	return &Formatter{opts: DefaultOptions()}
}

// NewFormatterWithOptions creates a new Formatter with custom options
func NewFormatterWithOptions(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Format renders a scalar. Arrays and objects are rejected.
func (f *Formatter) Format(v models.Value) (Rendering, error) {
	if v.IsContainer() {
		return Rendering{}, fmt.Errorf("cannot render %s as a literal", v.Kind)
	}
	switch v.Kind {
	case models.KindNull:
		return Rendering{Verb: VerbNull}, nil
	case models.KindBool:
		if v.Bool {
			return Rendering{Verb: VerbTrue}, nil
		}
		return Rendering{Verb: VerbFalse}, nil
	case models.KindNumber:
		return Rendering{Verb: VerbEquals, Literal: f.number(v)}, nil
	case models.KindString:
		return Rendering{Verb: VerbEquals, Literal: f.str(v.Str)}, nil
	default:
		return Rendering{}, fmt.Errorf("unknown value kind %s", v.Kind)
	}
}

func (f *Formatter) number(v models.Value) string {
	if f.opts.TruncateNumbers {
		return strconv.FormatInt(TruncateInt32(v.Number), 10)
	}
	n := v.Number
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	if v.Raw != "" {
		return v.Raw
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// TruncateInt32 drops the fractional part and clamps to the int32 range.
// NaN becomes 0.
func TruncateInt32(n float64) int64 {
	switch {
	case math.IsNaN(n):
		return 0
	case n >= math.MaxInt32:
		return math.MaxInt32
	case n <= math.MinInt32:
		return math.MinInt32
	default:
		return int64(n)
	}
}

func (f *Formatter) str(s string) string {
	if f.opts.NumericStrings && numericString.MatchString(s) {
		return s
	}
	if f.opts.EscapeStrings {
		return `"` + Escape(s) + `"`
	}
	return `"` + s + `"`
}

// Escape renders s for use inside a double-quoted Java or Go string literal.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
