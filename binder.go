package routedoc

import (
	"log/slog"
	"net/http"
)

// Endpoint binds methods to one EndpointDescriptor. It is the handle
// returned by Service.Endpoint; every binding call records onto it.
type Endpoint struct {
	svc  *Service
	desc *EndpointDescriptor
}

// Descriptor returns the endpoint's descriptor.
func (e *Endpoint) Descriptor() *EndpointDescriptor { return e.desc }

// And returns the owning service.
func (e *Endpoint) And() *Service { return e.svc }

// bind is the single binding path shared by every verb and filter.
// The route is registered before the descriptor is recorded, so a
// rejected registration never shows up in the document.
func (e *Endpoint) bind(verb Verb, b *MethodBuilder, register func(pattern string) error) error {
	if b == nil {
		return configErrorf("method descriptor is required for %s %s", verbLabel(verb), e.desc.path)
	}
	d, err := b.Build()
	if err != nil {
		return err
	}

	d.verb = verb
	d.path = composePath(e.desc.path, d.path)

	pattern := composePath(e.svc.prefix, d.path)
	if err := register(pattern); err != nil {
		return err
	}

	e.desc.addMethod(d)
	e.svc.logger.Debug("method bound",
		slog.String("verb", verbLabel(verb)),
		slog.String("route", pattern),
		slog.String("doc_path", d.path),
	)
	return nil
}

// Handle binds route to method at the descriptor's path. Methods other
// than GET, POST, PUT, PATCH, DELETE, HEAD and OPTIONS dispatch normally
// but are recorded without a documented verb.
func (e *Endpoint) Handle(method string, b *MethodBuilder, route Route, opts ...DispatchOption) error {
	o := dispatchOptions(opts)
	return e.bind(verbFor(method), b, func(pattern string) error {
		return e.svc.delegate.Route(method, pattern, route, o)
	})
}

// Get binds a GET route.
func (e *Endpoint) Get(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodGet, b, route, opts...)
}

// Post binds a POST route.
func (e *Endpoint) Post(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodPost, b, route, opts...)
}

// Put binds a PUT route.
func (e *Endpoint) Put(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodPut, b, route, opts...)
}

// Patch binds a PATCH route.
func (e *Endpoint) Patch(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodPatch, b, route, opts...)
}

// Delete binds a DELETE route.
func (e *Endpoint) Delete(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodDelete, b, route, opts...)
}

// Head binds a HEAD route.
func (e *Endpoint) Head(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodHead, b, route, opts...)
}

// Options binds an OPTIONS route.
func (e *Endpoint) Options(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodOptions, b, route, opts...)
}

// Trace binds a TRACE route. It is not documented under a verb.
func (e *Endpoint) Trace(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodTrace, b, route, opts...)
}

// Connect binds a CONNECT route. It is not documented under a verb.
func (e *Endpoint) Connect(b *MethodBuilder, route Route, opts ...DispatchOption) error {
	return e.Handle(http.MethodConnect, b, route, opts...)
}

func (e *Endpoint) filter(stage FilterStage, b *MethodBuilder, f Filter, opts []DispatchOption) error {
	o := dispatchOptions(opts)
	return e.bind(VerbNone, b, func(pattern string) error {
		return e.svc.delegate.Filter(stage, pattern, f, o)
	})
}

// Before registers a filter that runs before routes at the descriptor's path.
func (e *Endpoint) Before(b *MethodBuilder, f Filter, opts ...DispatchOption) error {
	return e.filter(StageBefore, b, f, opts)
}

// After registers a filter that runs after routes at the descriptor's path.
func (e *Endpoint) After(b *MethodBuilder, f Filter, opts ...DispatchOption) error {
	return e.filter(StageAfter, b, f, opts)
}

// AfterAfter registers a filter that runs last at the descriptor's path,
// even for halted requests.
func (e *Endpoint) AfterAfter(b *MethodBuilder, f Filter, opts ...DispatchOption) error {
	return e.filter(StageAfterAfter, b, f, opts)
}

// BeforeAll registers a filter for every route under the endpoint namespace.
// Nothing is documented.
func (e *Endpoint) BeforeAll(f Filter) error {
	return e.svc.delegate.Filter(StageBefore, composePath(e.desc.namespace, "*"), f, DispatchOptions{})
}

// AfterAll registers an after filter for every route under the endpoint namespace.
func (e *Endpoint) AfterAll(f Filter) error {
	return e.svc.delegate.Filter(StageAfter, composePath(e.desc.namespace, "*"), f, DispatchOptions{})
}

// AfterAfterAll registers an after-after filter for every route under the
// endpoint namespace.
func (e *Endpoint) AfterAfterAll(f Filter) error {
	return e.svc.delegate.Filter(StageAfterAfter, composePath(e.desc.namespace, "*"), f, DispatchOptions{})
}

func verbLabel(v Verb) string {
	if v == VerbNone {
		return "-"
	}
	return string(v)
}
