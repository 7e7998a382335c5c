package question

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	setSchemaURL    = "schema://question-set.json"
	recordSchemaURL = "schema://question-record.json"
)

var setSchemaDef = map[string]any{
	"type": "object",
}

var recordSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"q_num":         map[string]any{"type": []any{"integer", "number", "string", "null"}},
		"question":      map[string]any{"type": []any{"string", "null"}},
		"answer_block":  map[string]any{"type": []any{"string", "null"}},
		"answer_choice": map[string]any{"type": []any{"string", "null"}},
	},
}

var (
	schemaOnce   sync.Once
	setSchema    *jsonschema.Schema
	recordSchema *jsonschema.Schema
	schemaErr    error
)

func compileSchemas() {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(setSchemaURL, setSchemaDef); err != nil {
		schemaErr = fmt.Errorf("add set schema: %w", err)
		return
	}
	if err := c.AddResource(recordSchemaURL, recordSchemaDef); err != nil {
		schemaErr = fmt.Errorf("add record schema: %w", err)
		return
	}
	if setSchema, schemaErr = c.Compile(setSchemaURL); schemaErr != nil {
		return
	}
	recordSchema, schemaErr = c.Compile(recordSchemaURL)
}

// validateSet checks the top-level shape. Any failure is ErrDataMissing.
func validateSet(values map[string]any) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return fmt.Errorf("compile question schema: %w", schemaErr)
	}
	if err := setSchema.Validate(any(values)); err != nil {
		return fmt.Errorf("%w: %v", ErrDataMissing, err)
	}
	return nil
}

// validateRecord checks field types of a single record.
func validateRecord(fields map[string]any) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}
	return recordSchema.Validate(any(fields))
}
