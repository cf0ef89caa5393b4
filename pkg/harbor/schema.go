package harbor

import (
	"github.com/go-openapi/spec"
)

// props is the property set of an object schema.
type props map[string]*spec.Schema

// object declares an object schema. Properties not listed in requiredNames accept
// null, matching how Harbor omits or nulls optional fields. Unknown
// properties are allowed.
func object(requiredNames []string, properties props) *spec.Schema {
	schema := new(spec.Schema).Typed("object", "")

	isRequired := make(map[string]bool, len(requiredNames))
	for _, name := range requiredNames {
		isRequired[name] = true
	}

	for name, property := range properties {
		prop := *property
		if !isRequired[name] {
			prop.Nullable = true
		}

		schema.SetProperty(name, prop)
	}

	return schema.WithRequired(requiredNames...)
}

func required(names ...string) []string {
	return names
}

func str() *spec.Schema {
	return spec.StringProperty()
}

func integer() *spec.Schema {
	return spec.Int64Property()
}

func number() *spec.Schema {
	return spec.Float64Property()
}

func boolean() *spec.Schema {
	return spec.BoolProperty()
}

func dateTime() *spec.Schema {
	return spec.DateTimeProperty()
}

func arrayOf(items *spec.Schema) *spec.Schema {
	return spec.ArrayProperty(items)
}

func mapOf(values *spec.Schema) *spec.Schema {
	return spec.MapProperty(values)
}

// anyValue accepts any JSON value, including null.
func anyValue() *spec.Schema {
	return new(spec.Schema).AsNullable()
}

// freeForm is an object with arbitrary members.
func freeForm() *spec.Schema {
	return new(spec.Schema).Typed("object", "")
}

// strOrInt accepts a JSON string or integer.
func strOrInt() *spec.Schema {
	schema := new(spec.Schema)
	schema.Type = spec.StringOrArray{"string", "integer"}

	return schema
}
