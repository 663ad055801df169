package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

// Validate checks the database against the bundled JSON Schema and returns
// one warning per violation. Validation is advisory: the loader accepts
// whatever parsed, including status/priority values outside the known
// range, so problems are reported here instead of failing the load.
func (f *File) Validate() []string {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("data.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return []string{fmt.Sprintf("schema unavailable: %v", err)}
	}
	schema, err := compiler.Compile("data.schema.json")
	if err != nil {
		return []string{fmt.Sprintf("schema unavailable: %v", err)}
	}

	data, err := json.Marshal(f)
	if err != nil {
		return []string{fmt.Sprintf("marshal for validation: %v", err)}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("unmarshal for validation: %v", err)}
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var warnings []string
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	collectWarnings(&warnings, ve)
	return warnings
}

func collectWarnings(warnings *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		path := pointerToPath(err.InstanceLocation)
		if path == "" {
			*warnings = append(*warnings, err.Message)
		} else {
			*warnings = append(*warnings, fmt.Sprintf("%s: %s", path, err.Message))
		}
		return
	}
	for _, cause := range err.Causes {
		collectWarnings(warnings, cause)
	}
}

// pointerToPath converts a JSON pointer like /tasks/0/status into the
// friendlier tasks[0].status form used in warnings.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path string
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
