package path

import (
	"testing"

	"github.com/mcncl/jtestgen/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestRoot(t *testing.T) {
	assert.Equal(t, Path("result"), Root(false, 0))
	assert.Equal(t, Path("result"), Root(false, 3))
	assert.Equal(t, Path("result.get(0)"), Root(true, 0))
	assert.Equal(t, Path("result.get(12)"), Root(true, 12))
}

func TestChild(t *testing.T) {
	tests := []struct {
		name     string
		parent   Path
		field    string
		expected Path
	}{
		{"root field", "result", "id", "result.id"},
		{"nested field", "result.get(0).address", "city", "result.get(0).address.city"},
		{"empty parent", "", "id", "id"},
		{"name kept verbatim", "result", "first name", "result.first name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Child(tt.parent, tt.field))
		})
	}
}

func TestIndexed(t *testing.T) {
	assert.Equal(t, Path("result.tags.get(2)"), Indexed("result.tags", 2))
	assert.Equal(t, Path("result.m.get(0).get(1)"), Indexed(Indexed("result.m", 0), 1))
	assert.Equal(t, Path(""), Indexed("", 4))
}

func TestNewNamer(t *testing.T) {
	tests := []struct {
		name     string
		naming   config.NamingConfig
		key      string
		expected string
	}{
		{"verbatim", config.NamingConfig{FieldCase: config.FieldCaseVerbatim}, "first_name", "first_name"},
		{"unset case is verbatim", config.NamingConfig{}, "First-Name", "First-Name"},
		{"camel", config.NamingConfig{FieldCase: config.FieldCaseCamel}, "first_name", "FirstName"},
		{"lower camel", config.NamingConfig{FieldCase: config.FieldCaseLowerCamel}, "first_name", "firstName"},
		{"snake", config.NamingConfig{FieldCase: config.FieldCaseSnake}, "firstName", "first_name"},
		{
			"mapping wins",
			config.NamingConfig{
				FieldCase:     config.FieldCaseLowerCamel,
				FieldMappings: map[string]string{"user_id": "userID"},
			},
			"user_id",
			"userID",
		},
		{
			"unmapped key falls back to case",
			config.NamingConfig{
				FieldCase:     config.FieldCaseLowerCamel,
				FieldMappings: map[string]string{"user_id": "userID"},
			},
			"created_at",
			"createdAt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewNamer(tt.naming)(tt.key))
		})
	}
}
