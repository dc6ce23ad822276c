package routedoc_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/routedoc"
)

func sampleDocument(t *testing.T) *routedoc.Document {
	t.Helper()

	svc := newService(t, &recordingDelegate{}, testConfig())
	ep, err := svc.Endpoint(routedoc.Path("/users", routedoc.WithTag("users", "User accounts")), nil)
	require.NoError(t, err)
	require.NoError(t, ep.Get(routedoc.Method("",
		routedoc.WithSummary("List users"),
		routedoc.WithParams(routedoc.QueryParam("ids", routedoc.ParamArray("integer"))),
		routedoc.WithResponseAsCollection[User](),
	), okRoute(nil)))
	require.NoError(t, ep.Post(routedoc.Method("",
		routedoc.WithRequestType[CreateUser](),
		routedoc.WithTypedResponse[User](201, "Created"),
	), okRoute(nil)))
	require.NoError(t, ep.Get(routedoc.Method("/{id}",
		routedoc.WithParams(routedoc.PathParam("id", routedoc.ParamType("integer", "int64"))),
		routedoc.WithResponseType[User](),
		routedoc.WithResponse(404, "Not found"),
	), okRoute(nil)))

	doc, err := svc.Document(context.Background())
	require.NoError(t, err)
	return doc
}

func TestDocument_WriteJSON(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteJSON(&buf))
	assert.Contains(t, buf.String(), "\n  \"swagger\": \"2.0\"")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "/api", raw["basePath"])

	paths, ok := raw["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/users")
	assert.Contains(t, paths, "/users/{id}")

	list := paths["/users"].(map[string]any)["get"].(map[string]any)
	params := list["parameters"].([]any)
	require.Len(t, params, 1)
	ids := params[0].(map[string]any)
	assert.Equal(t, "csv", ids["collectionFormat"])
	assert.Equal(t, map[string]any{"type": "integer"}, ids["items"])
}

func TestDocument_WriteYAML(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteYAML(&buf))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "2.0", raw["swagger"])
	assert.Equal(t, "api.example.com", raw["host"])

	defs, ok := raw["definitions"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, defs, "User")
	assert.Contains(t, defs, "CreateUser")
}

func TestDocument_OpenAPI3(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)

	doc3, err := doc.OpenAPI3(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Test API", doc3.Info.Title)
	require.NotNil(t, doc3.Paths)
	assert.NotNil(t, doc3.Paths.Find("/users"))
	assert.NotNil(t, doc3.Paths.Find("/users/{id}"))
	require.NotEmpty(t, doc3.Servers)
	assert.Equal(t, "https://api.example.com/api", doc3.Servers[0].URL)

	data, err := json.Marshal(doc3)
	require.NoError(t, err)
	var raw struct {
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw.Components.Schemas, "User")
	assert.Contains(t, raw.Components.Schemas, "CreateUser")
}

func TestDocument_OpenAPI3_definitionNames(t *testing.T) {
	t.Parallel()

	svc := newService(t, &recordingDelegate{}, testConfig())
	ep, err := svc.Endpoint(routedoc.Path("/users"), nil)
	require.NoError(t, err)
	require.NoError(t, ep.Get(routedoc.Method("", routedoc.WithResponseType[Page[User]]()), okRoute(nil)))
	require.NoError(t, ep.Get(routedoc.Method("/a", routedoc.WithResponseType[User]()), okRoute(nil)))
	require.NoError(t, ep.Get(routedoc.Method("/b", routedoc.WithResponseType[routedoc.User]()), okRoute(nil)))

	doc, err := svc.Document(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#/definitions/routedoc_User", doc.Paths["/users/b"]["get"].Responses["200"].Schema.Ref)

	doc3, err := doc.OpenAPI3(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(doc3)
	require.NoError(t, err)
	var raw struct {
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw.Components.Schemas, "Page_User")
	assert.Contains(t, raw.Components.Schemas, "User")
	assert.Contains(t, raw.Components.Schemas, "routedoc_User")
}

func TestDocument_OpenAPI3_invalid(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)
	doc.Info.Version = ""

	_, err := doc.OpenAPI3(context.Background())
	require.ErrorIs(t, err, routedoc.ErrAssembly)
}
