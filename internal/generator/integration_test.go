package generator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/jtestgen/internal/assembler"
	"github.com/mcncl/jtestgen/internal/config"
	"github.com/mcncl/jtestgen/internal/generator"
	"github.com/mcncl/jtestgen/internal/parser"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render runs the full pipeline: Parser -> Generator -> Assembler
func render(t *testing.T, jsonInput string, backend string) string {
	t.Helper()

	doc, err := parser.ParseWith(strings.NewReader(jsonInput), backend)
	require.NoError(t, err)

	statements, err := generator.NewGenerator().Generate(doc)
	require.NoError(t, err)

	return assembler.NewAssemblerWithSeparator("\n").Assemble(statements)
}

func TestIntegration_GoldenFiles(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, name := range []string{"user", "orders", "matrix"} {
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(filepath.Join("testdata", name+".json"))
			require.NoError(t, err)

			g.Assert(t, name, []byte(render(t, string(input), config.BackendJSONText)))
		})
	}
}

func TestIntegration_OrderedMapBackendMatchesGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	input, err := os.ReadFile(filepath.Join("testdata", "user.json"))
	require.NoError(t, err)

	g.Assert(t, "user", []byte(render(t, string(input), config.BackendOrderedMap)))
}

func TestIntegration_TestableProperties(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"null field", `{"fieldName": null}`, "assertNull(result.fieldName);\n"},
		{"truncation", `{"score": 3.9}`, "assertEquals(3, result.score);\n"},
		{"numeric string", `{"id": "42"}`, "assertEquals(42, result.id);\n"},
		{"non-numeric string", `{"name": "42a"}`, "assertEquals(\"42a\", result.name);\n"},
		{"true", `{"active": true}`, "assertTrue(result.active);\n"},
		{"false", `{"active": false}`, "assertFalse(result.active);\n"},
		{"nested object", `{"user":{"name":"Ann"}}`, "assertEquals(\"Ann\", result.user.name);\n"},
		{"top-level array of objects", `[{"id":1}]`, "assertEquals(1, result.get(0).id);\n"},
		{
			"array of scalars",
			`["a", "b", "c"]`,
			"assertEquals(\"a\", result.get(0));\nassertEquals(\"b\", result.get(1));\nassertEquals(\"c\", result.get(2));\n",
		},
		{
			"null terminated like other verbs",
			`{"a": null, "b": 1}`,
			"assertNull(result.a);\nassertEquals(1, result.b);\n",
		},
		{"empty object", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.input, config.BackendJSONText))
		})
	}
}

func TestIntegration_Idempotent(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "orders.json"))
	require.NoError(t, err)

	first := render(t, string(input), config.BackendJSONText)
	second := render(t, string(input), config.BackendJSONText)
	assert.Equal(t, first, second)
}
