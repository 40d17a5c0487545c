package encoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const boardSchemaURL = "https://kboard.dev/schema/board.v2.json"

// boardSchema is the strict shape of an exported board. Import does not
// require it; it reports what normalization will have to default.
const boardSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "lists", "cards"],
  "properties": {
    "version": {"const": 2},
    "lists": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "cardIds"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "cardIds": {"type": "array", "items": {"type": "string"}, "uniqueItems": true}
        }
      }
    },
    "cards": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["id", "title", "createdAt", "category"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "createdAt": {"type": "string", "format": "date-time"},
          "category": {"enum": ["assignment", "lab", "project", "mod", "unfinished"]},
          "dueDate": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// ValidationError is one schema violation at a JSON path.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}

	return e.Message
}

// ValidationResult lists every violation of the strict board schema.
type ValidationResult struct {
	Valid  bool
	Legacy bool
	Errors []*ValidationError
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true

		if err := compiler.AddResource(boardSchemaURL, strings.NewReader(boardSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}

		schema, schemaErr = compiler.Compile(boardSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})

	return schema, schemaErr
}

// Validate checks data against the strict board schema. Documents that
// import would reject outright return ErrNotJSON or ErrNotObject.
func Validate(data []byte) (*ValidationResult, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrNotJSON
	}

	if _, ok := doc.(map[string]any); !ok {
		return nil, ErrNotObject
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{Valid: true}

	if v, ok := Version(data); !ok || v != 2 {
		result.Legacy = IsLegacyDocument(data)
	}

	if err := s.Validate(doc); err != nil {
		result.Valid = false

		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			result.Errors = append(result.Errors, &ValidationError{Message: err.Error()})
			return result, nil
		}

		collectSchemaErrors(ve, &result.Errors)
	}

	return result, nil
}

// collectSchemaErrors flattens the cause tree into its leaves.
func collectSchemaErrors(err *jsonschema.ValidationError, out *[]*ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})

		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}

// pointerToPath turns "/lists/0/title" into "lists[0].title".
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}

	var b strings.Builder

	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")

		if isIndex(tok) {
			b.WriteString("[" + tok + "]")
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('.')
		}

		b.WriteString(tok)
	}

	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
