package apitest_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routedoc"
	"github.com/bjaus/routedoc/apitest"
)

type greeting struct {
	Message string `json:"message"`
}

type greetRequest struct {
	Name string `json:"name"`
}

func newClient(t *testing.T) *apitest.Client {
	t.Helper()

	m := routedoc.NewMux()
	require.NoError(t, m.Route(http.MethodGet, "/hello", func(http.ResponseWriter, *http.Request) (any, error) {
		return greeting{Message: "hello"}, nil
	}, routedoc.DispatchOptions{}))
	require.NoError(t, m.Route(http.MethodGet, "/hello", func(http.ResponseWriter, *http.Request) (any, error) {
		return "hello", nil
	}, routedoc.DispatchOptions{AcceptType: "text/plain"}))
	require.NoError(t, m.Route(http.MethodPost, "/hello", func(_ http.ResponseWriter, r *http.Request) (any, error) {
		var in greetRequest
		if err := decodeJSON(r, &in); err != nil {
			return nil, routedoc.Halt(http.StatusBadRequest, err.Error())
		}
		return greeting{Message: "hello " + in.Name}, nil
	}, routedoc.DispatchOptions{}))
	require.NoError(t, m.Route(http.MethodDelete, "/hello", func(http.ResponseWriter, *http.Request) (any, error) {
		return nil, &routedoc.ProblemDetail{Status: http.StatusForbidden, Title: "Forbidden"}
	}, routedoc.DispatchOptions{}))

	return apitest.NewClient(t, m)
}

func TestClient(t *testing.T) {
	t.Parallel()

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		c := newClient(t)
		resp := apitest.Get[greeting](t, c, "/hello")
		assert.Equal(t, http.StatusOK, resp.Status)
		require.NotNil(t, resp.Body)
		assert.Equal(t, "hello", resp.Body.Message)
	})

	t.Run("accept header", func(t *testing.T) {
		t.Parallel()

		c := newClient(t)
		c.Accept = "text/plain"
		resp := apitest.Get[greeting](t, c, "/hello")
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Nil(t, resp.Body)
		assert.Equal(t, "hello", resp.Text)
	})

	t.Run("post", func(t *testing.T) {
		t.Parallel()

		c := newClient(t)
		resp := apitest.Post[greetRequest, greeting](t, c, "/hello", &greetRequest{Name: "Ada"})
		assert.Equal(t, http.StatusOK, resp.Status)
		require.NotNil(t, resp.Body)
		assert.Equal(t, "hello Ada", resp.Body.Message)
	})

	t.Run("problem", func(t *testing.T) {
		t.Parallel()

		c := newClient(t)
		resp := apitest.Delete[routedoc.ProblemDetail](t, c, "/hello")
		assert.Equal(t, http.StatusForbidden, resp.Status)
		require.NotNil(t, resp.Body)
		assert.Equal(t, "Forbidden", resp.Body.Title)
	})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
