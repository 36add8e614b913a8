package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for gdb-fzf configuration
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate validates the config file at path against the schema
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	return ValidateWithSchema(path, content)
}

// ValidateWithSchema validates config content against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "syntax",
				Message: fmt.Sprintf("Invalid YAML syntax: %v", err),
			})
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "syntax",
				Message: fmt.Sprintf("Invalid JSON syntax: %v", err),
			})
			return result, nil
		}
	case ".toml":
		// TOML goes through the koanf loader and is re-checked as a map
		cfg, err := LoadBytes(content, "toml")
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "syntax",
				Message: fmt.Sprintf("Invalid TOML syntax: %v", err),
			})
			return result, nil
		}
		data = snapshotToMap(cfg)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", path)
	}

	if data == nil {
		// Empty config file: nothing to validate
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if !validationResult.Valid() {
		result.Valid = false
		for _, desc := range validationResult.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
	}

	return result, nil
}

func snapshotToMap(s *Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"log_level": s.LogLevel,
		"gdb":       map[string]interface{}{"path": s.GDB.Path},
		"finder": map[string]interface{}{
			"command":    s.Finder.Command,
			"args":       s.Finder.Args,
			"extra_args": s.Finder.ExtraArgs,
		},
		"preview": map[string]interface{}{
			"enabled":  s.Preview.Enabled,
			"template": s.Preview.Template,
			"pager":    s.Preview.Pager,
		},
		"completion": map[string]interface{}{
			"lcp":             s.Completion.LCP,
			"last_field_only": s.Completion.LastFieldOnly,
		},
		"keys": map[string]interface{}{
			"history": s.Keys.History,
			"command": s.Keys.Command,
		},
	}
}
