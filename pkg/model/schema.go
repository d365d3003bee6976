package model

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

func planSchema(instance *Instance) map[string]any {
	lesson := map[string]any{
		"type":     "object",
		"required": []string{"subject"},
		"properties": map[string]any{
			"subject": map[string]any{"type": "string"},
		},
	}
	day := map[string]any{
		"type":     "array",
		"minItems": FixedLessonsPerDay,
		"maxItems": FixedLessonsPerDay,
		"items":    lesson,
	}
	return classDaySchema(instance, day)
}

func studySchema(instance *Instance) map[string]any {
	subjects := append([]string{""}, instance.Subjects...)
	slot := map[string]any{"type": "string", "enum": subjects}

	properties := make(map[string]any, len(Sessions))
	for _, session := range Sessions {
		properties[session.String()] = slot
	}
	day := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	return classDaySchema(instance, day)
}

// classDaySchema builds the class -> day -> value schema shared by the input formats
func classDaySchema(instance *Instance, value map[string]any) map[string]any {
	days := make(map[string]any, len(instance.Days))
	for _, day := range instance.Days {
		days[day] = value
	}
	class := map[string]any{
		"type":                 "object",
		"required":             instance.Days,
		"properties":           days,
		"additionalProperties": false,
	}

	classes := make(map[string]any, len(instance.Classes))
	for _, name := range instance.Classes {
		classes[name] = class
	}
	return map[string]any{
		"type":                 "object",
		"required":             instance.Classes,
		"properties":           classes,
		"additionalProperties": false,
	}
}

// compileSchema turns a schema definition into a validator
func compileSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, marshal then unmarshal to get one
	definitionBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(definitionBytes, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := compiler.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

func validateAgainst(name string, definition map[string]any, document any) error {
	schema, err := compileSchema(name, definition)
	if err != nil {
		return err
	}
	if err := schema.Validate(document); err != nil {
		return &MalformedInputError{Reason: fmt.Sprintf("%v does not match its schema: %v", name, err)}
	}
	return nil
}
