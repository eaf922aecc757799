package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Parser backends
const (
	BackendJSONText   = "jsontext"
	BackendOrderedMap = "orderedmap"
)

// Field name cases
const (
	FieldCaseVerbatim   = "verbatim"
	FieldCaseCamel      = "camel"
	FieldCaseLowerCamel = "lower_camel"
	FieldCaseSnake      = "snake"
)

// Nested array policies
const (
	NestedArraysRecurse = "recurse"
	NestedArraysFail    = "fail"
)

// DefaultInput is read when no input path is given.
const DefaultInput = "test.json"

// Config represents the complete configuration for jtestgen
type Config struct {
	Parser   ParserConfig   `yaml:"parser"`
	Literals LiteralsConfig `yaml:"literals"`
	Naming   NamingConfig   `yaml:"naming"`
	Arrays   ArraysConfig   `yaml:"arrays"`
	Output   OutputConfig   `yaml:"output"`
	Dev      DevConfig      `yaml:"dev"`
}

// ParserConfig selects the JSON decoding backend
type ParserConfig struct {
	Backend string `yaml:"backend"`
}

// LiteralsConfig controls how scalar values are rendered
type LiteralsConfig struct {
	TruncateNumbers bool `yaml:"truncate_numbers"`
	NumericStrings  bool `yaml:"numeric_strings"`
	EscapeStrings   bool `yaml:"escape_strings"`
}

// NamingConfig controls how JSON keys become accessor names
type NamingConfig struct {
	FieldCase     string            `yaml:"field_case"`
	FieldMappings map[string]string `yaml:"field_mappings"`
}

// ArraysConfig controls array handling
type ArraysConfig struct {
	Nested string `yaml:"nested"`
}

// OutputConfig controls where and how the assertions are written
type OutputConfig struct {
	Suffix        string `yaml:"suffix"`
	LineSeparator string `yaml:"line_separator"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Backend: BackendJSONText,
		},
		Literals: LiteralsConfig{
			TruncateNumbers: true,
			NumericStrings:  true,
			EscapeStrings:   false,
		},
		Naming: NamingConfig{
			FieldCase:     FieldCaseVerbatim,
			FieldMappings: make(map[string]string),
		},
		Arrays: ArraysConfig{
			Nested: NestedArraysRecurse,
		},
		Output: OutputConfig{
			Suffix:        "_test.txt",
			LineSeparator: "",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jtestgen.yml", ".jtestgen.yaml", "jtestgen.yml", "jtestgen.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.Parser.Backend {
	case BackendJSONText, BackendOrderedMap:
	default:
		return fmt.Errorf("invalid parser backend '%s'", c.Parser.Backend)
	}

	switch c.Naming.FieldCase {
	case FieldCaseVerbatim, FieldCaseCamel, FieldCaseLowerCamel, FieldCaseSnake:
	default:
		return fmt.Errorf("invalid field_case '%s'", c.Naming.FieldCase)
	}

	switch c.Arrays.Nested {
	case NestedArraysRecurse, NestedArraysFail:
	default:
		return fmt.Errorf("invalid nested arrays policy '%s'", c.Arrays.Nested)
	}

	if c.Output.Suffix == "" {
		return fmt.Errorf("output suffix must not be empty")
	}

	return nil
}

// LineSeparator returns the configured separator or the platform default.
func (c *Config) LineSeparator() string {
	if c.Output.LineSeparator != "" {
		return c.Output.LineSeparator
	}
	return PlatformLineSeparator()
}

// PlatformLineSeparator mirrors the host convention.
func PlatformLineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// OutputPath derives the destination file from the input path.
func (c *Config) OutputPath(inputPath string) string {
	return inputPath + c.Output.Suffix
}

// CLIOverrides holds the flags that can override file settings.
// Boolean flags only switch features on; empty strings leave the file value alone.
type CLIOverrides struct {
	EscapeStrings bool
	ExactNumbers  bool
	NestedArrays  string
	FieldCase     string
	Backend       string
	Debug         bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.EscapeStrings {
		cfg.Literals.EscapeStrings = true
	}
	if cli.ExactNumbers {
		cfg.Literals.TruncateNumbers = false
	}
	if cli.NestedArrays != "" {
		cfg.Arrays.Nested = cli.NestedArrays
	}
	if cli.FieldCase != "" {
		cfg.Naming.FieldCase = cli.FieldCase
	}
	if cli.Backend != "" {
		cfg.Parser.Backend = cli.Backend
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
