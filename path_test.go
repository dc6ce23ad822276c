package routedoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/routedoc"
)

func TestComposePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		segments []string
		want     string
	}{
		"no segments":           {segments: nil, want: "/"},
		"all empty":             {segments: []string{"", ""}, want: "/"},
		"single slash":          {segments: []string{"/"}, want: "/"},
		"leading slash added":   {segments: []string{"api"}, want: "/api"},
		"joins two":             {segments: []string{"/api", "/users"}, want: "/api/users"},
		"empty segment skipped": {segments: []string{"/api", "", "/users"}, want: "/api/users"},
		"no double slash":       {segments: []string{"/api/", "/users"}, want: "/api/users"},
		"bare joint":            {segments: []string{"svc", "api"}, want: "/svc/api"},
		"trailing slash kept":   {segments: []string{"/api", "/users/"}, want: "/api/users/"},
		"param segment":         {segments: []string{"/api", "/users", "/{id}"}, want: "/api/users/{id}"},
		"wildcard":              {segments: []string{"/api/users", "*"}, want: "/api/users/*"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, routedoc.ComposePath(tc.segments...))
		})
	}
}

func TestComposePath_routeMatchesDocumentKey(t *testing.T) {
	t.Parallel()

	prefixes := []string{"/api", "/svc/v1", "/"}
	paths := []string{"/users", "/users/{id}", "/orders/", "users/{id}/items"}

	for _, prefix := range prefixes {
		for _, p := range paths {
			route := routedoc.ComposePath(prefix, p)
			assert.Equal(t, route, routedoc.ComposePath(prefix, routedoc.ToDocPath(p)), "prefix %q path %q", prefix, p)
		}
	}
}

func TestToDocPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want string
	}{
		"plain":         {path: "/users/{id}", want: "/users/{id}"},
		"exact match":   {path: "/users/{$}", want: "/users/"},
		"rest wildcard": {path: "/files/{path...}", want: "/files/{path}"},
		"nothing to do": {path: "/", want: "/"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, routedoc.ToDocPath(tc.path))
		})
	}
}

func TestPathParamNames(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want []string
	}{
		"none":       {path: "/users", want: nil},
		"one":        {path: "/users/{id}", want: []string{"id"}},
		"two":        {path: "/users/{id}/orders/{orderID}", want: []string{"id", "orderID"}},
		"rest":       {path: "/files/{path...}", want: []string{"path"}},
		"end marker": {path: "/users/{$}", want: nil},
		"unclosed":   {path: "/users/{id", want: nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, routedoc.PathParamNames(tc.path))
		})
	}
}

func TestVerbFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		method string
		want   routedoc.Verb
	}{
		"get":       {method: "GET", want: routedoc.VerbGet},
		"lowercase": {method: "post", want: routedoc.VerbPost},
		"options":   {method: "OPTIONS", want: routedoc.VerbOptions},
		"trace":     {method: "TRACE", want: routedoc.VerbNone},
		"connect":   {method: "CONNECT", want: routedoc.VerbNone},
		"custom":    {method: "PURGE", want: routedoc.VerbNone},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, routedoc.VerbFor(tc.method))
		})
	}
}
