package routedoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Mux is the default Delegate. It routes with http.ServeMux patterns and
// adds what the binder expects from a delegate: accept-type variants of
// one route, path-scoped filters, exception handlers and halts.
//
// Responses are buffered until after filters have run, so routes that
// stream large bodies should be served by another handler.
type Mux struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     map[string]*routeSet
	filters    []*filterEntry
	exceptions []exceptionEntry
	codecs     *codecRegistry
	logger     *slog.Logger

	mu sync.RWMutex
}

// MuxOption configures a Mux.
type MuxOption func(*muxConfig)

type muxConfig struct {
	logger   *slog.Logger
	encoders []Encoder
}

// WithMuxLogger sets the logger for filter failures.
func WithMuxLogger(l *slog.Logger) MuxOption {
	return func(c *muxConfig) {
		c.logger = l
	}
}

// WithEncoder registers an additional response encoder.
func WithEncoder(enc Encoder) MuxOption {
	return func(c *muxConfig) {
		c.encoders = append(c.encoders, enc)
	}
}

// NewMux creates an empty Mux.
func NewMux(opts ...MuxOption) *Mux {
	cfg := muxConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Mux{
		mux:    http.NewServeMux(),
		routes: make(map[string]*routeSet),
		codecs: newCodecRegistry(cfg.encoders),
		logger: cfg.logger,
	}
}

type routeVariant struct {
	route Route
	opts  DispatchOptions
}

// routeSet holds every variant bound to one method and pattern.
type routeSet struct {
	m        *Mux
	variants []routeVariant
}

type filterEntry struct {
	stage   FilterStage
	all     bool
	matcher *http.ServeMux
	filter  Filter
	accept  string
}

type exceptionEntry struct {
	target  error
	handler ExceptionHandler
}

// Use adds middleware around the whole Mux. Middleware is applied in the order added.
func (m *Mux) Use(mw ...Middleware) {
	m.middleware = append(m.middleware, mw...)
}

// Route implements Delegate. A second binding of the same method and
// pattern is a variant selected by accept type; repeating the same accept
// type fails with ErrDuplicateRoute.
func (m *Mux) Route(method, pattern string, h Route, opts DispatchOptions) error {
	if h == nil {
		return fmt.Errorf("%w: nil route for %s %s", ErrConfig, method, pattern)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := method + " " + muxPattern(pattern)
	rs, ok := m.routes[key]
	if !ok {
		rs = &routeSet{m: m}
		if err := handle(m.mux, key, rs); err != nil {
			return err
		}
		m.routes[key] = rs
	}

	for _, v := range rs.variants {
		if normalizeAccept(v.opts.AcceptType) == normalizeAccept(opts.AcceptType) {
			return fmt.Errorf("%w: %s %s (accept %q)", ErrDuplicateRoute, method, pattern, opts.AcceptType)
		}
	}
	rs.variants = append(rs.variants, routeVariant{route: h, opts: opts})
	return nil
}

// Filter implements Delegate. A pattern ending in "/*" matches everything
// below it; "*" matches every request.
func (m *Mux) Filter(stage FilterStage, pattern string, f Filter, opts DispatchOptions) error {
	if f == nil {
		return fmt.Errorf("%w: nil %s filter for %s", ErrConfig, stage, pattern)
	}

	fe := &filterEntry{stage: stage, filter: f, accept: opts.AcceptType}
	switch {
	case pattern == "" || pattern == "*" || pattern == "/*":
		fe.all = true
	default:
		fe.matcher = http.NewServeMux()
		for _, p := range filterPatterns(pattern) {
			if err := handle(fe.matcher, p, filterTarget{}); err != nil {
				return err
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = append(m.filters, fe)
	return nil
}

// Exception implements Delegate. Handlers are tried in registration order
// with errors.Is.
func (m *Mux) Exception(target error, h ExceptionHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exceptions = append(m.exceptions, exceptionEntry{target: target, handler: h})
}

// Static serves files from fsys under urlPath. The route is not documented.
func (m *Mux) Static(urlPath string, fsys fs.FS) error {
	prefix := strings.TrimSuffix(urlPath, "/")
	handler := http.StripPrefix(prefix, http.FileServerFS(fsys))

	m.mu.Lock()
	defer m.mu.Unlock()
	return handle(m.mux, "GET "+composePath(prefix, "{path...}"), handler)
}

// ServeHTTP implements http.Handler.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := http.Handler(http.HandlerFunc(m.serve))
	for i := len(m.middleware) - 1; i >= 0; i-- {
		handler = m.middleware[i](handler)
	}
	handler.ServeHTTP(w, r)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (m *Mux) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// serve runs before filters, the matched route, after filters and
// after-after filters, then writes the buffered response.
func (m *Mux) serve(w http.ResponseWriter, r *http.Request) {
	buf := newBufferedResponse()
	d := dispatchFrom(r.Context())

	if err := m.runFilters(StageBefore, buf, r); err != nil {
		d.filterFailed(StageBefore)
		m.writeError(buf, r, err)
	} else {
		m.mux.ServeHTTP(buf, r)
		if err := m.runFilters(StageAfter, buf, r); err != nil {
			d.filterFailed(StageAfter)
			m.writeError(buf, r, err)
		}
	}

	if err := m.runFilters(StageAfterAfter, buf, r); err != nil {
		d.filterFailed(StageAfterAfter)
		m.logger.WarnContext(r.Context(), "after-after filter failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	}

	if err := buf.flush(w); err != nil {
		m.logger.DebugContext(r.Context(), "write response", slog.Any("err", err))
	}
}

func (m *Mux) runFilters(stage FilterStage, w http.ResponseWriter, r *http.Request) error {
	m.mu.RLock()
	filters := m.filters
	m.mu.RUnlock()

	accept := r.Header.Get("Accept")
	for _, fe := range filters {
		if fe.stage != stage || !fe.matches(r) {
			continue
		}
		if fe.accept != "" && !accepts(accept, fe.accept) {
			continue
		}
		if err := fe.filter(w, r); err != nil {
			return err
		}
	}
	return nil
}

// filterTarget marks a filter pattern match. Redirects and not-found
// handlers returned by the matcher are not matches.
type filterTarget struct{}

func (filterTarget) ServeHTTP(http.ResponseWriter, *http.Request) {}

func (fe *filterEntry) matches(r *http.Request) bool {
	if fe.all {
		return true
	}
	h, _ := fe.matcher.Handler(r)
	_, ok := h.(filterTarget)
	return ok
}

// writeError renders err: halts verbatim, then the first matching
// exception handler, then a problem details body.
func (m *Mux) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if buf, ok := w.(*bufferedResponse); ok {
		buf.reset()
	}

	var halt *HaltError
	if errors.As(err, &halt) {
		w.WriteHeader(halt.Status)
		//nolint:errcheck,gosec // best-effort after WriteHeader
		io.WriteString(w, halt.Body)
		return
	}

	m.mu.RLock()
	exceptions := m.exceptions
	m.mu.RUnlock()

	for _, ex := range exceptions {
		if errors.Is(err, ex.target) {
			ex.handler(err, w, r)
			return
		}
	}
	writeErrorResponse(w, err)
}

// ServeHTTP dispatches to the variant that fits the request's Accept header.
func (rs *routeSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v, ok := rs.pick(r.Header.Get("Accept"))
	dispatchFrom(r.Context()).matched(r.Pattern, v.opts.AcceptType)
	if !ok {
		rs.m.writeError(w, r, Halt(http.StatusNotAcceptable, ""))
		return
	}

	result, err := v.route(w, r)
	if err != nil {
		rs.m.writeError(w, r, err)
		return
	}
	if err := rs.m.codecs.render(w, r, result, v.opts); err != nil {
		rs.m.writeError(w, r, err)
	}
}

// pick returns the first variant whose accept type the request admits,
// falling back to the first variant bound without one. A request without
// an Accept header gets the fallback when there is one.
func (rs *routeSet) pick(accept string) (routeVariant, bool) {
	rs.m.mu.RLock()
	defer rs.m.mu.RUnlock()

	var fallback *routeVariant
	for i := range rs.variants {
		if normalizeAccept(rs.variants[i].opts.AcceptType) == "" {
			fallback = &rs.variants[i]
			break
		}
	}
	if fallback != nil && strings.TrimSpace(accept) == "" {
		return *fallback, true
	}

	for _, v := range rs.variants {
		if normalizeAccept(v.opts.AcceptType) != "" && accepts(accept, v.opts.AcceptType) {
			return v, true
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return routeVariant{}, false
}

func normalizeAccept(t string) string {
	if t == "*/*" {
		return ""
	}
	return t
}

// muxPattern maps a composed route to a ServeMux pattern. A trailing
// slash matches only itself, and a trailing "/*" matches the subtree.
func muxPattern(pattern string) string {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return prefix + "/{rest...}"
	}
	if strings.HasSuffix(pattern, "/") {
		return pattern + "{$}"
	}
	return pattern
}

// filterPatterns returns the matcher patterns for a filter. A subtree
// filter also covers the subtree root, so "/api/users/*" runs for
// "/api/users" as well.
func filterPatterns(pattern string) []string {
	if root, ok := strings.CutSuffix(pattern, "/*"); ok && root != "" {
		return []string{root, muxPattern(pattern)}
	}
	return []string{muxPattern(pattern)}
}

// handle registers h on mux, turning ServeMux's conflict panics into errors.
func handle(mux *http.ServeMux, pattern string, h http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrRouteConflict, rec)
		}
	}()
	mux.Handle(pattern, h)
	return nil
}
