package routedoc

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Schema is a Swagger 2.0 schema object (the subset routedoc emits).
type Schema struct {
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema           `json:"items,omitempty" yaml:"items,omitempty"`
	Required    []string          `json:"required,omitempty" yaml:"required,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Ref         string            `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	AdditionalProperties *Schema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}

// definitionRef is the JSON pointer of a named definition.
func definitionRef(name string) string {
	return "#/definitions/" + name
}

// schemaRegistry collects named struct definitions while converting types.
// Each type gets one definition name; distinct types never share one.
type schemaRegistry struct {
	defs  map[string]Schema
	names map[reflect.Type]string
	owner map[string]reflect.Type
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{
		defs:  make(map[string]Schema),
		names: make(map[reflect.Type]string),
		owner: make(map[string]reflect.Type),
	}
}

// qualifier matches package paths such as "github.com/acme/api." inside
// the type arguments of a generic type name.
var qualifier = regexp.MustCompile(`(?:[\w.-]+/)*[\w-]+\.`)

// definitionBase turns a Go type name into a JSON pointer safe definition
// name: Page[example.com/api.User] becomes Page_User.
func definitionBase(name string) string {
	name = qualifier.ReplaceAllString(name, "")
	return strings.NewReplacer(
		"[", "_",
		",", "_",
		"]", "",
		" ", "",
		"*", "",
		"/", "_",
		"~", "_",
	).Replace(name)
}

// packageName is the last element of t's package path as an identifier.
func packageName(t reflect.Type) string {
	pkg := t.PkgPath()
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}
	return strings.NewReplacer(".", "_", "-", "_").Replace(pkg)
}

// definitionName returns the name t is stored under, assigning one on
// first use. A name already held by another type is qualified with the
// package name, then numbered.
func (sr *schemaRegistry) definitionName(t reflect.Type) string {
	if name, ok := sr.names[t]; ok {
		return name
	}

	base := definitionBase(t.Name())
	name := base
	if _, taken := sr.owner[name]; taken {
		if pkg := packageName(t); pkg != "" {
			name = pkg + "_" + base
		}
		for i := 2; ; i++ {
			if _, taken := sr.owner[name]; !taken {
				break
			}
			name = base + strconv.Itoa(i)
		}
	}

	sr.names[t] = name
	sr.owner[name] = t
	return name
}

// typeToSchema converts t to a schema. Named structs are stored once as
// definitions and referenced by $ref.
func (sr *schemaRegistry) typeToSchema(t reflect.Type) Schema {
	if t.Kind() == reflect.Pointer {
		return sr.typeToSchema(t.Elem())
	}

	//exhaustive:ignore
	switch t {
	case reflect.TypeFor[time.Time]():
		return Schema{Type: "string", Format: "date-time"}
	case reflect.TypeFor[time.Duration]():
		return Schema{Type: "string", Format: "duration"}
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.String:
		return Schema{Type: "string"}
	case reflect.Bool:
		return Schema{Type: "boolean"}
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Schema{Type: "integer", Format: "int32"}
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return Schema{Type: "integer", Format: "int64"}
	case reflect.Float32:
		return Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return Schema{Type: "number", Format: "double"}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return Schema{Type: "string", Format: "byte"}
		}
		items := sr.typeToSchema(t.Elem())
		return Schema{Type: "array", Items: &items}
	case reflect.Array:
		items := sr.typeToSchema(t.Elem())
		return Schema{Type: "array", Items: &items}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Schema{Type: "object"}
		}
		val := sr.typeToSchema(t.Elem())
		return Schema{Type: "object", AdditionalProperties: &val}
	case reflect.Struct:
		if t.Name() == "" {
			return sr.structToSchema(t)
		}
		name := sr.definitionName(t)
		if _, ok := sr.defs[name]; !ok {
			// Placeholder first so self-referencing types terminate.
			sr.defs[name] = Schema{Type: "object"}
			sr.defs[name] = sr.structToSchema(t)
		}
		return Schema{Ref: definitionRef(name)}
	default:
		return Schema{}
	}
}

// structToSchema converts a struct type to an object schema with properties.
func (sr *schemaRegistry) structToSchema(t reflect.Type) Schema {
	schema := Schema{
		Type:       "object",
		Properties: make(map[string]Schema),
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, opts := jsonFieldName(f)
		if name == "-" {
			continue
		}

		prop := sr.typeToSchema(f.Type)
		if tagContains(opts, "string") && prop.Type != "" && prop.Type != "object" && prop.Type != "array" {
			prop = Schema{Type: "string"}
		}
		if doc := f.Tag.Get("doc"); doc != "" && prop.Ref == "" {
			prop.Description = doc
		}
		schema.Properties[name] = prop

		if f.Tag.Get("required") == "true" {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// bodySchema is the schema for a request or response type, wrapped in an
// array when documented as a collection.
func (sr *schemaRegistry) bodySchema(t reflect.Type, collection bool) *Schema {
	s := sr.typeToSchema(t)
	if collection {
		s = Schema{Type: "array", Items: &s}
	}
	return &s
}
