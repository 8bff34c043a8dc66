package drill

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// problemSchemaDef is the JSON Schema a generated problem object must
// satisfy before it is accepted.
var problemSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"minLength":   1,
			"description": "The problem prompt shown to the learner",
		},
		"answer": map[string]any{
			"type":        "string",
			"minLength":   1,
			"description": "The bare correct answer",
		},
	},
	"required": []any{"question", "answer"},
}

var (
	problemSchemaOnce sync.Once
	problemSchema     *jsonschema.Schema
	problemSchemaErr  error
)

// validateProblem validates a raw JSON span against the problem schema.
func validateProblem(raw string) error {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledProblemSchema()
	if err != nil {
		return err
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledProblemSchema compiles the schema once and caches it.
func compiledProblemSchema() (*jsonschema.Schema, error) {
	problemSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(problemSchemaDef)
		if err != nil {
			problemSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			problemSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://math-problem.json"
		if err := c.AddResource(url, defParsed); err != nil {
			problemSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		problemSchema, problemSchemaErr = c.Compile(url)
	})
	return problemSchema, problemSchemaErr
}
