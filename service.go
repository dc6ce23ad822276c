package routedoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Service owns the configuration, the delegate router and every endpoint
// declared against it. Declarations are expected during start-up, from
// one goroutine.
type Service struct {
	cfg      Config
	delegate Delegate
	prefix   string

	logger   *slog.Logger
	version  string
	ips      IPResolver
	versions VersionResolver
	ignored  []string

	endpoints []*Endpoint

	hostMu sync.Mutex
	host   string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for registration and assembly events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithVersion sets the documented API version, overriding Config.Version.
func WithVersion(v string) Option {
	return func(s *Service) {
		s.version = v
	}
}

// WithIPResolver sets how "localhost:PORT" hosts are resolved.
func WithIPResolver(r IPResolver) Option {
	return func(s *Service) {
		s.ips = r
	}
}

// WithVersionResolver sets how the version is found when none is configured.
func WithVersionResolver(r VersionResolver) Option {
	return func(s *Service) {
		s.versions = r
	}
}

// WithIgnoredPaths hides endpoints at or below any of the given paths from
// the document. Matching is by whole path segment. Their routes are still
// served.
func WithIgnoredPaths(prefixes ...string) Option {
	return func(s *Service) {
		s.ignored = append(s.ignored, prefixes...)
	}
}

// New creates a Service bound to delegate. It performs no I/O.
func New(delegate Delegate, cfg Config, opts ...Option) (*Service, error) {
	if delegate == nil {
		return nil, configErrorf("delegate router is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		delegate: delegate,
		prefix:   cfg.prefix(),
		logger:   slog.Default(),
		version:  cfg.Version,
		ips:      &HTTPIPResolver{},
		versions: BuildInfoVersion{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns a copy of the service configuration.
func (s *Service) Config() Config { return s.cfg }

// Prefix returns the route prefix (service name + base path).
func (s *Service) Prefix() string { return s.prefix }

// Endpoint creates an endpoint for the descriptor. A non-nil filter runs
// before every route under the endpoint namespace.
func (s *Service) Endpoint(b *EndpointBuilder, filter Filter) (*Endpoint, error) {
	if s.cfg.BasePath == "" {
		return nil, configErrorf("base path must be set before declaring endpoints")
	}
	desc, err := b.build(s.prefix)
	if err != nil {
		return nil, err
	}

	e := &Endpoint{svc: s, desc: desc}
	if filter != nil {
		if err := e.BeforeAll(filter); err != nil {
			return nil, err
		}
	}
	s.endpoints = append(s.endpoints, e)

	s.logger.Debug("endpoint declared",
		slog.String("path", desc.path),
		slog.String("namespace", desc.namespace),
	)
	return e, nil
}

// Define creates an endpoint and passes it to fn for its bindings.
func (s *Service) Define(b *EndpointBuilder, filter Filter, fn func(e *Endpoint) error) error {
	e, err := s.Endpoint(b, filter)
	if err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn(e)
}

// Binder declares its routes on a service. Packages implement it to keep
// their endpoint declarations next to their handlers.
type Binder interface {
	Bind(s *Service) error
}

// BinderFunc adapts a function to Binder.
type BinderFunc func(s *Service) error

// Bind calls f.
func (f BinderFunc) Bind(s *Service) error { return f(s) }

// Register binds each binder in order and stops at the first error.
func (s *Service) Register(binders ...Binder) error {
	for i, b := range binders {
		if b == nil {
			return configErrorf("binder %d is nil", i)
		}
		if err := b.Bind(s); err != nil {
			return err
		}
	}
	return nil
}

// Before registers a filter for every route under the service prefix.
func (s *Service) Before(f Filter) error {
	return s.delegate.Filter(StageBefore, composePath(s.prefix, "*"), f, DispatchOptions{})
}

// After registers an after filter for every route under the service prefix.
func (s *Service) After(f Filter) error {
	return s.delegate.Filter(StageAfter, composePath(s.prefix, "*"), f, DispatchOptions{})
}

// Exception registers h for errors matching target (errors.Is).
func (s *Service) Exception(target error, h ExceptionHandler) {
	s.delegate.Exception(target, h)
}

// Endpoints returns the declared endpoint descriptors in declaration order.
func (s *Service) Endpoints() []*EndpointDescriptor {
	out := make([]*EndpointDescriptor, len(s.endpoints))
	for i, e := range s.endpoints {
		out[i] = e.desc
	}
	return out
}

// Document assembles the API document from every endpoint declared so far.
// A host that cannot be resolved fails the assembly; a version that cannot
// be resolved is left out.
func (s *Service) Document(ctx context.Context) (*Document, error) {
	host, err := s.resolvedHost(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssembly, err)
	}

	meta := docMeta{
		cfg:      s.cfg,
		host:     host,
		basePath: s.prefix,
		version:  s.resolveVersion(ctx),
	}

	doc := assemble(meta, s.Endpoints(), s.isIgnored)
	s.logger.DebugContext(ctx, "document assembled",
		slog.Int("endpoints", len(s.endpoints)),
		slog.Int("paths", len(doc.Paths)),
	)
	return doc, nil
}

// resolvedHost resolves the configured host on first success and reuses
// it afterwards. Failures are not cached.
func (s *Service) resolvedHost(ctx context.Context) (string, error) {
	s.hostMu.Lock()
	defer s.hostMu.Unlock()

	if s.host != "" {
		return s.host, nil
	}
	host, err := resolveHost(ctx, s.cfg.Host, s.ips)
	if err != nil {
		return "", err
	}
	s.logger.DebugContext(ctx, "host resolved", slog.String("host", host))
	s.host = host
	return host, nil
}

func (s *Service) resolveVersion(ctx context.Context) string {
	if s.version != "" || s.cfg.Project == nil || s.versions == nil {
		return s.version
	}
	v, err := s.versions.ResolveVersion(*s.cfg.Project)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrVersionNotFound) {
			level = slog.LevelDebug
		}
		s.logger.Log(ctx, level, "version not resolved",
			slog.String("module", s.cfg.Project.Module),
			slog.Any("err", err),
		)
		return ""
	}
	return v
}

func (s *Service) isIgnored(path string) bool {
	return slices.ContainsFunc(s.ignored, func(p string) bool {
		return path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/")
	})
}
