package routedoc

// Document is a Swagger 2.0 API description.
type Document struct {
	Swagger      string              `json:"swagger" yaml:"swagger"`
	Info         Info                `json:"info" yaml:"info"`
	Host         string              `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath     string              `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Schemes      []string            `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Tags         []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths        map[string]PathItem `json:"paths" yaml:"paths"`
	Definitions  map[string]Schema   `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	ExternalDocs *ExternalDocs       `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Info holds API metadata.
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Version        string   `json:"version,omitempty" yaml:"version,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty"`
}

// PathItem maps lowercase HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary      string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description  string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID  string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Consumes     []string            `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces     []string            `json:"produces,omitempty" yaml:"produces,omitempty"`
	Parameters   []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses    map[string]Response `json:"responses" yaml:"responses"`
	Deprecated   bool                `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	ExternalDocs *ExternalDocs       `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Parameter is a documented operation parameter. Body parameters carry a
// Schema; all others carry a primitive Type.
type Parameter struct {
	Name             string  `json:"name" yaml:"name"`
	In               string  `json:"in" yaml:"in"`
	Description      string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required         bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Type             string  `json:"type,omitempty" yaml:"type,omitempty"`
	Format           string  `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	CollectionFormat string  `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`
	Schema           *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response describes a single response.
type Response struct {
	Description string  `json:"description" yaml:"description"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}
