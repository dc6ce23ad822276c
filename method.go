package routedoc

import (
	"maps"
	"reflect"
	"slices"
)

// ExternalDocs points at documentation hosted elsewhere.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// ResponseSpec documents one response status.
type ResponseSpec struct {
	Description string
	Type        reflect.Type
	Collection  bool
}

// GenericResponse is the envelope documented by WithGenericResponse.
type GenericResponse struct {
	Status  int    `json:"status" doc:"HTTP status code"`
	Message string `json:"message,omitempty" doc:"Human readable message"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
}

// MethodDescriptor is the documentation of one bound operation. It is
// read-only once built; only the binder sets its verb and final path.
type MethodDescriptor struct {
	verb Verb
	path string
	info methodInfo
}

type methodInfo struct {
	summary      string
	description  string
	operationID  string
	tags         []string
	params       []Param
	responses    map[int]ResponseSpec
	consumes     []string
	produces     []string
	reqType      reflect.Type
	reqList      bool
	respType     reflect.Type
	respList     bool
	externalDocs *ExternalDocs
	deprecated   bool
}

// Verb returns the documented verb, VerbNone for filter-style bindings.
func (d *MethodDescriptor) Verb() Verb { return d.verb }

// Path returns the method path composed onto its endpoint path.
func (d *MethodDescriptor) Path() string { return d.path }

// Summary returns the operation summary.
func (d *MethodDescriptor) Summary() string { return d.info.summary }

// Description returns the operation description.
func (d *MethodDescriptor) Description() string { return d.info.description }

// Tags returns the operation's own tags (the endpoint tag is added at assembly).
func (d *MethodDescriptor) Tags() []string { return slices.Clone(d.info.tags) }

// Params returns the declared parameters with location rules applied.
func (d *MethodDescriptor) Params() []Param {
	out := make([]Param, len(d.info.params))
	for i, p := range d.info.params {
		out[i] = p.Resolved()
	}
	return out
}

// Responses returns the explicitly declared responses by status code.
func (d *MethodDescriptor) Responses() map[int]ResponseSpec { return maps.Clone(d.info.responses) }

// MethodOption configures a method descriptor.
type MethodOption func(*methodInfo)

// MethodBuilder collects options for a MethodDescriptor. A nil builder is
// rejected by every binder call.
type MethodBuilder struct {
	path string
	opts []MethodOption
}

// Method starts a descriptor for the given sub-path, relative to the
// endpoint path. An empty sub-path binds at the endpoint path itself.
func Method(subPath string, opts ...MethodOption) *MethodBuilder {
	return &MethodBuilder{path: subPath, opts: opts}
}

// With appends options and returns the builder.
func (b *MethodBuilder) With(opts ...MethodOption) *MethodBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build validates the collected options and returns the descriptor.
func (b *MethodBuilder) Build() (*MethodDescriptor, error) {
	if b == nil {
		return nil, configErrorf("method descriptor is required")
	}

	d := &MethodDescriptor{path: b.path}
	for _, opt := range b.opts {
		opt(&d.info)
	}

	for i, p := range d.info.params {
		if p.Name == "" {
			return nil, configErrorf("method %q: parameter %d has no name", b.path, i)
		}
		if !p.In.valid() {
			return nil, configErrorf("method %q: parameter %q has unknown location %q", b.path, p.Name, p.In)
		}
	}
	for status := range d.info.responses {
		if status < 100 || status > 599 {
			return nil, configErrorf("method %q: invalid response status %d", b.path, status)
		}
	}

	return d, nil
}

// WithSummary sets the operation summary.
func WithSummary(s string) MethodOption {
	return func(m *methodInfo) {
		m.summary = s
	}
}

// WithDescription sets the operation description.
func WithDescription(d string) MethodOption {
	return func(m *methodInfo) {
		m.description = d
	}
}

// WithOperationID sets a custom operationId.
func WithOperationID(id string) MethodOption {
	return func(m *methodInfo) {
		m.operationID = id
	}
}

// WithTags adds tags to the operation.
func WithTags(tags ...string) MethodOption {
	return func(m *methodInfo) {
		m.tags = append(m.tags, tags...)
	}
}

// WithParams adds parameters to the operation.
func WithParams(params ...Param) MethodOption {
	return func(m *methodInfo) {
		m.params = append(m.params, params...)
	}
}

// WithConsumes sets the media types the operation accepts.
func WithConsumes(types ...string) MethodOption {
	return func(m *methodInfo) {
		m.consumes = types
	}
}

// WithProduces sets the media types the operation returns.
func WithProduces(types ...string) MethodOption {
	return func(m *methodInfo) {
		m.produces = types
	}
}

// WithRequestType documents T as the request body.
func WithRequestType[T any]() MethodOption {
	return func(m *methodInfo) {
		m.reqType = reflect.TypeFor[T]()
		m.reqList = false
	}
}

// WithRequestAsCollection documents an array of T as the request body.
func WithRequestAsCollection[T any]() MethodOption {
	return func(m *methodInfo) {
		m.reqType = reflect.TypeFor[T]()
		m.reqList = true
	}
}

// WithResponseType documents T as the 200 response body.
func WithResponseType[T any]() MethodOption {
	return func(m *methodInfo) {
		m.respType = reflect.TypeFor[T]()
		m.respList = false
	}
}

// WithResponseAsCollection documents an array of T as the 200 response body.
func WithResponseAsCollection[T any]() MethodOption {
	return func(m *methodInfo) {
		m.respType = reflect.TypeFor[T]()
		m.respList = true
	}
}

// WithGenericResponse documents the GenericResponse envelope as the 200 response body.
func WithGenericResponse() MethodOption {
	return WithResponseType[GenericResponse]()
}

// WithResponse documents an additional response status.
func WithResponse(status int, description string) MethodOption {
	return func(m *methodInfo) {
		if m.responses == nil {
			m.responses = make(map[int]ResponseSpec)
		}
		m.responses[status] = ResponseSpec{Description: description}
	}
}

// WithTypedResponse documents a response status whose body is T.
func WithTypedResponse[T any](status int, description string) MethodOption {
	return func(m *methodInfo) {
		if m.responses == nil {
			m.responses = make(map[int]ResponseSpec)
		}
		m.responses[status] = ResponseSpec{Description: description, Type: reflect.TypeFor[T]()}
	}
}

// WithMethodExternalDocs links the operation to external documentation.
func WithMethodExternalDocs(url, description string) MethodOption {
	return func(m *methodInfo) {
		m.externalDocs = &ExternalDocs{URL: url, Description: description}
	}
}

// WithDeprecated marks the operation as deprecated.
func WithDeprecated() MethodOption {
	return func(m *methodInfo) {
		m.deprecated = true
	}
}
