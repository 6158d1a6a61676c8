package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger     string                            `json:"swagger"`
		BasePath    string                            `json:"basePath"`
		Paths       map[string]map[string]interface{} `json:"paths"`
		Definitions map[string]interface{}            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api", doc.BasePath)

	routes := map[string][]string{
		"/login":              {"post"},
		"/logout":             {"post"},
		"/me":                 {"get"},
		"/user":               {"get", "post"},
		"/user/{id}":          {"get", "put", "delete"},
		"/user-password/{id}": {"put"},
	}
	for path, methods := range routes {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, "%s %s", m, path)
		}
	}
	assert.Len(t, doc.Paths, len(routes))
	assert.Contains(t, doc.Definitions, "errors.ErrorResponse")
}
