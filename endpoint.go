package routedoc

import (
	"slices"
	"strings"
)

// Tag names and describes an endpoint group in the document.
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// EndpointDescriptor groups method descriptors under one path. Its
// namespace is fixed when the endpoint is created.
type EndpointDescriptor struct {
	path        string
	namespace   string
	tag         Tag
	description string
	methods     []*MethodDescriptor
}

// Path returns the endpoint path relative to the service prefix.
func (e *EndpointDescriptor) Path() string { return e.path }

// Namespace returns the prefix under which the endpoint's routes and
// filters are registered.
func (e *EndpointDescriptor) Namespace() string { return e.namespace }

// Tag returns the endpoint tag.
func (e *EndpointDescriptor) Tag() Tag { return e.tag }

// Methods returns the bound method descriptors in binding order.
func (e *EndpointDescriptor) Methods() []*MethodDescriptor { return slices.Clone(e.methods) }

func (e *EndpointDescriptor) addMethod(d *MethodDescriptor) {
	e.methods = append(e.methods, d)
}

// EndpointOption configures an endpoint descriptor.
type EndpointOption func(*EndpointDescriptor)

// WithTag sets the endpoint tag. All operations of the endpoint carry it.
func WithTag(name, description string) EndpointOption {
	return func(e *EndpointDescriptor) {
		e.tag.Name = name
		e.tag.Description = description
	}
}

// WithTagExternalDocs links the endpoint tag to external documentation.
func WithTagExternalDocs(url, description string) EndpointOption {
	return func(e *EndpointDescriptor) {
		e.tag.ExternalDocs = &ExternalDocs{URL: url, Description: description}
	}
}

// WithEndpointDescription sets a description used when an operation has none.
func WithEndpointDescription(d string) EndpointOption {
	return func(e *EndpointDescriptor) {
		e.description = d
	}
}

// EndpointBuilder collects options for an EndpointDescriptor.
type EndpointBuilder struct {
	path string
	opts []EndpointOption
}

// Path starts an endpoint descriptor for the given group path.
func Path(path string, opts ...EndpointOption) *EndpointBuilder {
	return &EndpointBuilder{path: path, opts: opts}
}

// build creates the descriptor and fixes its namespace under prefix.
func (b *EndpointBuilder) build(prefix string) (*EndpointDescriptor, error) {
	if b == nil {
		return nil, configErrorf("endpoint descriptor is required")
	}

	e := &EndpointDescriptor{
		path:      b.path,
		namespace: composePath(prefix, b.path),
	}
	for _, opt := range b.opts {
		opt(e)
	}
	if e.tag.Name == "" {
		e.tag.Name = defaultTagName(b.path)
	}
	return e, nil
}

// defaultTagName derives a tag from the endpoint path: "/v1/users" -> "v1/users".
func defaultTagName(path string) string {
	name := strings.Trim(path, "/")
	if name == "" {
		return "default"
	}
	return name
}
