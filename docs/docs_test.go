package docs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/swaggo/swag"

	"quirkit/docs"
)

type openAPIDoc struct {
	Swagger string `json:"swagger"`
	Info    struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) openAPIDoc {
	t.Helper()
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc openAPIDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestDoc_CoversEveryRoute(t *testing.T) {
	doc := readDoc(t)

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Quirkit API", doc.Info.Title)

	routes := map[string][]string{
		"/api/excuse":        {"get"},
		"/api/joke":          {"get"},
		"/api/quote":         {"get"},
		"/api/showerthought": {"get"},
		"/api/holiday":       {"get"},
		"/api/drink":         {"get"},
		"/api/timer":         {"get"},
		"/api/spinner":       {"post"},
		"/api/compliment":    {"get", "post"},
	}
	assert.Len(t, doc.Paths, len(routes))
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		assert.Len(t, ops, len(methods), path)
		for _, m := range methods {
			assert.Contains(t, ops, m, path)
		}
	}
}

func TestDoc_ReferencesResolve(t *testing.T) {
	doc := readDoc(t)
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var walk func(v any)
	walk = func(v any) {
		switch v := v.(type) {
		case map[string]any:
			if ref, ok := v["$ref"].(string); ok {
				name := ref[len("#/definitions/"):]
				assert.Contains(t, doc.Definitions, name)
			}
			for _, child := range v {
				walk(child)
			}
		case []any:
			for _, child := range v {
				walk(child)
			}
		}
	}
	var tree any
	require.NoError(t, json.Unmarshal([]byte(raw), &tree))
	walk(tree)
}

func TestSwaggerUI_ServesDoc(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/api/compliment"`)
}
