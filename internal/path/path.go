// Package path builds the access expressions that locate a JSON node
// relative to the root test variable, e.g. result.get(0).address.city.
package path

import (
	"strconv"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jtestgen/internal/config"
)

// RootName is the variable every expression starts from.
const RootName = "result"

// Path is an access expression. The empty Path means "no parent yet".
type Path string

// Root returns the path of the i-th top-level value.
func Root(rootIsArray bool, index int) Path {
	if rootIsArray {
		return Indexed(RootName, index)
	}
	return RootName
}

// Child appends an object field access. Field names are not escaped or validated.
func Child(parent Path, field string) Path {
	if parent == "" {
		return Path(field)
	}
	return parent + "." + Path(field)
}

// Indexed appends a list element access.
func Indexed(parent Path, index int) Path {
	if parent == "" {
		return ""
	}
	return parent + ".get(" + Path(strconv.Itoa(index)) + ")"
}

func (p Path) String() string {
	return string(p)
}

// Namer maps a JSON key to the accessor name used in a path.
type Namer func(key string) string

// Verbatim keeps keys as they appear in the document.
func Verbatim(key string) string {
	return key
}

// NewNamer builds a Namer from naming settings. Explicit mappings win over the case rule.
func NewNamer(naming config.NamingConfig) Namer {
	convert := caseFunc(naming.FieldCase)
	if len(naming.FieldMappings) == 0 {
		return convert
	}
	mappings := make(map[string]string, len(naming.FieldMappings))
	for k, v := range naming.FieldMappings {
		mappings[k] = v
	}
	return func(key string) string {
		if mapped, ok := mappings[key]; ok {
			return mapped
		}
		return convert(key)
	}
}

func caseFunc(fieldCase string) Namer {
	switch fieldCase {
	case config.FieldCaseCamel:
		return strcase.ToCamel
	case config.FieldCaseLowerCamel:
		return strcase.ToLowerCamel
	case config.FieldCaseSnake:
		return strcase.ToSnake
	default:
		return Verbatim
	}
}
