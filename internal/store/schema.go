package store

import (
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaBaseURL namespaces in-memory schemas so the compiler never tries to
// load them from disk.
const schemaBaseURL = "mem://schemas/"

// CompileSchema compiles a JSON Schema document held in memory. The name
// identifies the schema in error messages.
func CompileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	url := schemaBaseURL + name
	if err := compiler.AddResource(url, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

// MustCompileSchema is like CompileSchema but panics on error. It is meant
// for schemas embedded in the binary.
func MustCompileSchema(name, source string) *jsonschema.Schema {
	schema, err := CompileSchema(name, source)
	if err != nil {
		panic(err)
	}
	return schema
}

// schemaError converts a schema validation failure into a *ParseError
// pointing at the first offending location.
func schemaError(path string, err error) *ParseError {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ParseError{Path: path, Err: err}
	}

	leaves := leafErrors(ve, nil)
	if len(leaves) == 0 {
		return &ParseError{Path: path, Err: fmt.Errorf("%s", ve.Message)}
	}

	first := leaves[0]
	msg := first.Message
	if len(leaves) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(leaves)-1)
	}
	return &ParseError{
		Path:     path,
		Location: jsonPointerToPath(first.InstanceLocation),
		Err:      fmt.Errorf("%s", msg),
	}
}

func leafErrors(err *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if err == nil {
		return out
	}
	if len(err.Causes) == 0 {
		return append(out, err)
	}
	for _, cause := range err.Causes {
		out = leafErrors(cause, out)
	}
	return out
}

// jsonPointerToPath converts a JSON Pointer such as "/0/id" to "[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
