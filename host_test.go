package routedoc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routedoc"
)

func TestResolveHost(t *testing.T) {
	t.Parallel()

	failing := routedoc.IPResolverFunc(func(context.Context) (string, error) {
		return "", errBoom
	})

	tests := map[string]struct {
		host      string
		resolver  routedoc.IPResolver
		want      string
		wantErrIs error
	}{
		"named host": {
			host:     "api.example.com",
			resolver: failing,
			want:     "api.example.com",
		},
		"named host with port": {
			host:     "api.example.com:8443",
			resolver: failing,
			want:     "api.example.com:8443",
		},
		"localhost with port": {
			host:     "localhost:8080",
			resolver: staticIP,
			want:     "203.0.113.7:8080",
		},
		"localhost without port": {
			host:      "localhost",
			resolver:  staticIP,
			wantErrIs: routedoc.ErrConfig,
		},
		"localhost with empty port": {
			host:      "localhost:",
			resolver:  staticIP,
			wantErrIs: routedoc.ErrConfig,
		},
		"empty": {
			host:      "",
			resolver:  staticIP,
			wantErrIs: routedoc.ErrConfig,
		},
		"resolver failure": {
			host:      "localhost:8080",
			resolver:  failing,
			wantErrIs: errBoom,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := routedoc.ResolveHost(context.Background(), tc.host, tc.resolver)
			if tc.wantErrIs != nil {
				require.ErrorIs(t, err, tc.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveHost_ipv6(t *testing.T) {
	t.Parallel()

	v6 := routedoc.IPResolverFunc(func(context.Context) (string, error) {
		return "2001:db8::1", nil
	})
	got, err := routedoc.ResolveHost(context.Background(), "localhost:8080", v6)
	require.NoError(t, err)
	assert.Equal(t, "[2001:db8::1]:8080", got)
}

func TestHTTPIPResolver(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status  int
		body    string
		want    string
		wantErr bool
	}{
		"plain ip":       {status: http.StatusOK, body: "198.51.100.4\n", want: "198.51.100.4"},
		"server error":   {status: http.StatusBadGateway, body: "oops", wantErr: true},
		"not an address": {status: http.StatusOK, body: "<html>", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			r := &routedoc.HTTPIPResolver{URL: srv.URL, Client: srv.Client()}
			got, err := r.ResolveIP(context.Background())
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
