package routedoc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjaus/routedoc"
)

// call is one delegate invocation seen by recordingDelegate.
type call struct {
	kind    string // "route", "filter" or "exception"
	method  string
	stage   routedoc.FilterStage
	pattern string
	opts    routedoc.DispatchOptions
}

// recordingDelegate records calls and optionally fails them.
type recordingDelegate struct {
	calls []call
	err   error
}

func (d *recordingDelegate) Route(method, pattern string, _ routedoc.Route, opts routedoc.DispatchOptions) error {
	d.calls = append(d.calls, call{kind: "route", method: method, pattern: pattern, opts: opts})
	return d.err
}

func (d *recordingDelegate) Filter(stage routedoc.FilterStage, pattern string, _ routedoc.Filter, opts routedoc.DispatchOptions) error {
	d.calls = append(d.calls, call{kind: "filter", stage: stage, pattern: pattern, opts: opts})
	return d.err
}

func (d *recordingDelegate) Exception(_ error, _ routedoc.ExceptionHandler) {
	d.calls = append(d.calls, call{kind: "exception"})
}

var errBoom = errors.New("boom")

var staticIP = routedoc.IPResolverFunc(func(context.Context) (string, error) {
	return "203.0.113.7", nil
})

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() routedoc.Config {
	return routedoc.Config{
		BasePath: "/api",
		Host:     "api.example.com",
		Title:    "Test API",
		Version:  "1.0.0",
		Schemes:  []string{"https"},
	}
}

func newService(t *testing.T, d routedoc.Delegate, cfg routedoc.Config, opts ...routedoc.Option) *routedoc.Service {
	t.Helper()
	opts = append([]routedoc.Option{
		routedoc.WithLogger(quietLogger()),
		routedoc.WithIPResolver(staticIP),
	}, opts...)
	svc, err := routedoc.New(d, cfg, opts...)
	require.NoError(t, err)
	return svc
}

func okRoute(body any) routedoc.Route {
	return func(http.ResponseWriter, *http.Request) (any, error) {
		return body, nil
	}
}

func noopFilter(http.ResponseWriter, *http.Request) error { return nil }
