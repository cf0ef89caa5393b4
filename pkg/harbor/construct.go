package harbor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// Model is a typed payload with a declarative schema.
type Model interface {
	Schema() *spec.Schema
}

// modelPtr constrains PT to be a pointer to T that implements Model.
type modelPtr[T any] interface {
	*T
	Model
}

// Construct validates raw against T's schema and decodes it into a new T.
// Validation is strict on types and required fields and ignores unknown
// members. On failure no value is returned and the *ValidationError lists
// every offending field.
func Construct[T any, PT modelPtr[T]](raw []byte) (*T, error) {
	out := new(T)
	name := modelName(out)

	data, err := decodeDocument(name, raw)
	if err != nil {
		return nil, err
	}

	if err := validateDocument(name, PT(out).Schema(), data, ""); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return nil, &ValidationError{
			Model:  name,
			Fields: []FieldError{{Message: err.Error()}},
			Cause:  err,
		}
	}

	return out, nil
}

// ConstructList validates every element of a JSON array against T's schema.
// Field paths in the returned error are prefixed with the element index.
func ConstructList[T any, PT modelPtr[T]](raw []byte) ([]T, error) {
	var probe T
	name := "[]" + modelName(&probe)
	schema := PT(&probe).Schema()

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ValidationError{
			Model:  name,
			Fields: []FieldError{{Message: "expected a JSON array: " + err.Error()}},
			Cause:  err,
		}
	}

	verr := &ValidationError{Model: name}

	for i, item := range items {
		data, err := decodeDocument(name, item)
		if err == nil {
			err = validateDocument(name, schema, data, strconv.Itoa(i))
		}

		var itemErr *ValidationError
		if errors.As(err, &itemErr) {
			verr.Fields = append(verr.Fields, itemErr.Fields...)
			verr.Cause = itemErr.Cause
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	out := make([]T, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &out[i]); err != nil {
			return nil, &ValidationError{
				Model:  name,
				Fields: []FieldError{{Path: strconv.Itoa(i), Message: err.Error()}},
				Cause:  err,
			}
		}
	}

	return out, nil
}

// Validate checks a model value against its own schema, as it would be sent
// on the wire.
func Validate(model Model) error {
	name := modelName(model)

	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	data, err := decodeDocument(name, raw)
	if err != nil {
		return err
	}

	return validateDocument(name, model.Schema(), data, "")
}

func decodeDocument(name string, raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ValidationError{
			Model:  name,
			Fields: []FieldError{{Message: "empty document"}},
		}
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ValidationError{
			Model:  name,
			Fields: []FieldError{{Message: "invalid JSON: " + err.Error()}},
			Cause:  err,
		}
	}

	return data, nil
}

func validateDocument(name string, schema *spec.Schema, data any, prefix string) error {
	verr := &ValidationError{Model: name}

	var causes []error
	validateNode(schema, data, prefix, verr, &causes)

	if len(causes) == 0 {
		return nil
	}

	verr.Cause = errors.Join(causes...)

	return verr
}

// validateNode checks data against schema, descending into array elements and
// nested objects itself so every reported path carries its element index.
func validateNode(schema *spec.Schema, data any, prefix string, verr *ValidationError, causes *[]error) {
	switch value := data.(type) {
	case []any:
		if hasItemSchema(schema) {
			shallow := *schema
			shallow.Items = nil
			checkNode(&shallow, data, prefix, verr, causes)

			for i, item := range value {
				validateNode(schema.Items.Schema, item, joinFieldPath(prefix, strconv.Itoa(i)), verr, causes)
			}

			return
		}
	case map[string]any:
		if schema.Type.Contains("object") && len(schema.Properties) > 0 {
			shallow := *schema
			shallow.Properties = make(spec.SchemaProperties, len(schema.Properties))

			var nested []string

			for propName, prop := range schema.Properties {
				if child, ok := value[propName]; ok && child != nil && hasChildSchemas(&prop) {
					nested = append(nested, propName)

					continue
				}

				shallow.Properties[propName] = prop
			}

			checkNode(&shallow, data, prefix, verr, causes)
			sort.Strings(nested)

			for _, propName := range nested {
				prop := schema.Properties[propName]
				validateNode(&prop, value[propName], joinFieldPath(prefix, propName), verr, causes)
			}

			return
		}
	}

	checkNode(schema, data, prefix, verr, causes)
}

func checkNode(schema *spec.Schema, data any, prefix string, verr *ValidationError, causes *[]error) {
	err := validate.AgainstSchema(schema, data, strfmt.Default)
	if err == nil {
		return
	}

	*causes = append(*causes, err)
	collectFieldErrors(err, prefix, verr)
}

func hasItemSchema(schema *spec.Schema) bool {
	return schema.Type.Contains("array") && schema.Items != nil && schema.Items.Schema != nil
}

func hasChildSchemas(schema *spec.Schema) bool {
	if hasItemSchema(schema) {
		return true
	}

	return schema.Type.Contains("object") && len(schema.Properties) > 0
}

func modelName(v any) string {
	name := fmt.Sprintf("%T", v)
	name = strings.TrimPrefix(name, "*")

	return strings.TrimPrefix(name, "harbor.")
}
