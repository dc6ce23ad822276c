package routedoc

import (
	"context"
	"reflect"
)

// Test-only exports for internal functions.
var (
	ComposePath    = composePath
	ToDocPath      = toDocPath
	PathParamNames = pathParamNames
	VerbFor        = verbFor
	Accepts        = accepts
	MuxPattern     = muxPattern
	UIFolders      = uiFolders
	JSONFieldName  = jsonFieldName
	TagOptions     = tagOptions
	TagContains    = tagContains
	DefinitionBase = definitionBase
)

// User shares its name with a type in the external test package.
type User struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

// ResolveHost exposes host resolution.
func ResolveHost(ctx context.Context, host string, ips IPResolver) (string, error) {
	return resolveHost(ctx, host, ips)
}

// TestSchemaRegistry wraps schemaRegistry for external tests.
type TestSchemaRegistry struct {
	reg  *schemaRegistry
	Defs map[string]Schema
}

// NewSchemaRegistry creates a TestSchemaRegistry for testing.
func NewSchemaRegistry() *TestSchemaRegistry {
	r := newSchemaRegistry()
	return &TestSchemaRegistry{reg: r, Defs: r.defs}
}

// TypeToSchema delegates to the internal registry.
func (t *TestSchemaRegistry) TypeToSchema(typ reflect.Type) Schema {
	return t.reg.typeToSchema(typ)
}

// BodySchema delegates to the internal registry.
func (t *TestSchemaRegistry) BodySchema(typ reflect.Type, collection bool) *Schema {
	return t.reg.bodySchema(typ, collection)
}
