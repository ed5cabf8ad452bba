package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/tasks.schema.json
var tasksSchemaSource string

const tasksSchemaURL = "tasks.schema.json"

var (
	tasksSchemaOnce sync.Once
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
)

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaSource)); err != nil {
			tasksSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		tasksSchema, tasksSchemaErr = compiler.Compile(tasksSchemaURL)
	})
	return tasksSchema, tasksSchemaErr
}

// ValidateTasksDocument checks a persisted task collection against the
// embedded schema before it is decoded. Violations are reported per path.
func ValidateTasksDocument(data []byte) error {
	schema, err := compiledTasksSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		validationError := NewValidationError()
		validationError.AddError("document", ErrorTypeSchema, fmt.Sprintf("not valid JSON: %v", err), nil)
		return validationError
	}

	if err := schema.Validate(doc); err != nil {
		validationError := NewValidationError()
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			validationError.AddError("document", ErrorTypeSchema, err.Error(), nil)
			return validationError
		}
		collectSchemaErrors(validationError, ve)
		return validationError
	}

	return nil
}

func collectSchemaErrors(result *ValidationError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.AddError(jsonPointerToPath(err.InstanceLocation), ErrorTypeSchema, err.Message, nil)
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "document"
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
