package routedoc

import (
	"io"
	"net/http"
)

// Route handles a request. The returned value is rendered by the delegate:
// through the template engine or response transformer when one was given
// at binding time, otherwise by content negotiation. A route that writes
// to w directly may return nil.
type Route func(w http.ResponseWriter, r *http.Request) (any, error)

// Filter runs before or after the routes matching its pattern. Returning
// an error stops the request; use Halt to control the status and body.
type Filter func(w http.ResponseWriter, r *http.Request) error

// ExceptionHandler writes the response for an error returned by a route or filter.
type ExceptionHandler func(err error, w http.ResponseWriter, r *http.Request)

// ResponseTransformer renders a route result to the response body.
type ResponseTransformer func(v any) ([]byte, error)

// ModelAndView is the result a route returns when bound with a template engine.
type ModelAndView struct {
	Model any
	View  string
}

// TemplateEngine renders a ModelAndView.
type TemplateEngine interface {
	Render(w io.Writer, mv ModelAndView) error
}

// FilterStage selects when a filter runs.
type FilterStage int

// Filter stages. AfterAfter filters run even when the request was halted.
const (
	StageBefore FilterStage = iota
	StageAfter
	StageAfterAfter
)

func (s FilterStage) String() string {
	switch s {
	case StageBefore:
		return "before"
	case StageAfter:
		return "after"
	case StageAfterAfter:
		return "afterAfter"
	default:
		return "unknown"
	}
}

// DispatchOptions are secondary dispatch parameters. The binder forwards
// them to the delegate without inspecting them.
type DispatchOptions struct {
	AcceptType  string
	Transformer ResponseTransformer
	Engine      TemplateEngine
}

// DispatchOption sets a field of DispatchOptions.
type DispatchOption func(*DispatchOptions)

// WithAcceptType restricts the binding to requests whose Accept header
// admits the given media type.
func WithAcceptType(mediaType string) DispatchOption {
	return func(o *DispatchOptions) {
		o.AcceptType = mediaType
	}
}

// WithTransformer renders route results with t.
func WithTransformer(t ResponseTransformer) DispatchOption {
	return func(o *DispatchOptions) {
		o.Transformer = t
	}
}

// WithTemplate renders route results, which must be ModelAndView values, with engine.
func WithTemplate(engine TemplateEngine) DispatchOption {
	return func(o *DispatchOptions) {
		o.Engine = engine
	}
}

func dispatchOptions(opts []DispatchOption) DispatchOptions {
	var o DispatchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Delegate is the router that actually serves requests. Mux is the
// package's implementation; any router can be adapted to it.
type Delegate interface {
	Route(method, pattern string, h Route, opts DispatchOptions) error
	Filter(stage FilterStage, pattern string, f Filter, opts DispatchOptions) error
	Exception(target error, h ExceptionHandler)
}
