package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/mcncl/jtestgen/internal/assembler"
	"github.com/mcncl/jtestgen/internal/generator"
	"github.com/mcncl/jtestgen/internal/parser"
	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"id":         fmt.Sprintf("%d", rand.Intn(1000)),
			"count":      rand.Float64() * 100,
			"enabled":    rand.Intn(2) == 1,
			"missing":    nil,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	result["items"] = []interface{}{generateNestedJSON(0, 0), 1, "two"}

	return result
}

// BenchmarkPipeline measures parse, walk and assemble for varying shapes
func BenchmarkPipeline(b *testing.B) {
	shapes := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, shape := range shapes {
		b.Run(shape.name, func(b *testing.B) {
			jsonData, err := json.Marshal(generateNestedJSON(shape.depth, shape.width))
			require.NoError(b, err)
			input := string(jsonData)

			gen := generator.NewGenerator()
			asm := assembler.NewAssemblerWithSeparator("\n")

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				doc, err := parser.Parse(strings.NewReader(input))
				if err != nil {
					b.Fatal(err)
				}
				statements, err := gen.Generate(doc)
				if err != nil {
					b.Fatal(err)
				}
				_ = asm.Assemble(statements)
			}
		})
	}
}
