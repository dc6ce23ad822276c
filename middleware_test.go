package routedoc_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routedoc"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := routedoc.NewMux()
	m.Use(routedoc.Recovery(logger))
	require.NoError(t, m.Route(http.MethodGet, "/panic", func(http.ResponseWriter, *http.Request) (any, error) {
		panic("kaboom")
	}, routedoc.DispatchOptions{}))

	rec := serve(m, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var pd routedoc.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pd))
	assert.Equal(t, http.StatusInternalServerError, pd.Status)
	assert.Equal(t, "Internal Server Error", pd.Title)
	assert.Empty(t, pd.Detail)
	assert.NotContains(t, rec.Body.String(), "kaboom")

	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaboom")
	assert.Contains(t, buf.String(), "/panic")
}

func TestLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		target     string
		accept     string
		wantSubstr []string
		absent     []string
	}{
		"request is logged": {
			target: "/items/3",
			wantSubstr: []string{
				"msg=request",
				"method=GET",
				"path=/items/3",
				"status=200",
				`pattern="GET /items/{id}"`,
			},
			absent: []string{"accept_type=", "failed_stage="},
		},
		"status code is captured": {
			target:     "/missing",
			wantSubstr: []string{"status=404"},
			absent:     []string{"pattern="},
		},
		"accept variant is logged": {
			target:     "/report",
			accept:     "text/csv",
			wantSubstr: []string{"status=200", "accept_type=text/csv"},
		},
		"failed filter stage is logged": {
			target:     "/locked",
			wantSubstr: []string{"status=403", "failed_stage=before"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			m := routedoc.NewMux(routedoc.WithMuxLogger(quietLogger()))
			m.Use(routedoc.Logger(logger))
			require.NoError(t, m.Route(http.MethodGet, "/items/{id}", okRoute("item"), routedoc.DispatchOptions{}))
			require.NoError(t, m.Route(http.MethodGet, "/report", okRoute("a,b"), routedoc.DispatchOptions{AcceptType: "text/csv"}))
			require.NoError(t, m.Route(http.MethodGet, "/locked", okRoute("secret"), routedoc.DispatchOptions{}))
			require.NoError(t, m.Filter(routedoc.StageBefore, "/locked", func(http.ResponseWriter, *http.Request) error {
				return routedoc.Halt(http.StatusForbidden, "forbidden")
			}, routedoc.DispatchOptions{}))

			serve(m, http.MethodGet, tc.target, tc.accept)

			for _, want := range tc.wantSubstr {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tc.absent {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}
