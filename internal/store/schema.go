package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformed is matched by errors.Is when a persisted blob cannot be read
// back as an item sequence.
var ErrMalformed = errors.New("malformed item blob")

// MalformedError describes why the blob under Key was rejected.
type MalformedError struct {
	Key     string
	Path    string
	Message string
}

func (e *MalformedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("blob %q invalid at %s: %s", e.Key, e.Path, e.Message)
	}
	return fmt.Sprintf("blob %q invalid: %s", e.Key, e.Message)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

const blobSchemaURL = "tickbox://items.schema.json"

const blobSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "isComplete", "isSelected"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "text": {"type": "string"},
      "isComplete": {"type": "boolean"},
      "isSelected": {"type": "boolean"}
    }
  }
}`

var compiledBlobSchema = jsonschema.MustCompileString(blobSchemaURL, blobSchema)

// validateBlob checks raw against the item sequence schema.
func validateBlob(key string, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return &MalformedError{Key: key, Message: err.Error()}
	}
	if err := compiledBlobSchema.Validate(doc); err != nil {
		return schemaError(key, err)
	}
	return nil
}

// schemaError reports the first leaf cause of a validation failure.
func schemaError(key string, err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &MalformedError{Key: key, Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &MalformedError{
		Key:     key,
		Path:    pointerToPath(ve.InstanceLocation),
		Message: ve.Message,
	}
}

// pointerToPath turns "/0/id" into "[0].id".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
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
