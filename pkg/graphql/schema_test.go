package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/shashiranjanraj/sudoku/pkg/graphql"
)

func echoSchema(t *testing.T) graphql.Schema {
	t.Helper()
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"double": &graphql.Field{
				Type: graphql.Int,
				Args: graphql.FieldConfigArgument{
					"n": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Args["n"].(int) * 2, nil
				},
			},
		},
	})
	schema, err := gql.NewSchema(query, nil)
	require.NoError(t, err)
	return schema
}

type result struct {
	Data   map[string]interface{}   `json:"data"`
	Errors []map[string]interface{} `json:"errors"`
}

func TestHandlerPostWithVariables(t *testing.T) {
	h := gql.Handler(echoSchema(t))
	body := `{"query":"query($n: Int!) { double(n: $n) }","variables":{"n":21}}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Errors)
	assert.EqualValues(t, 42, res.Data["double"])
}

func TestHandlerGet(t *testing.T) {
	h := gql.Handler(echoSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bdouble(n%3A4)%7D", nil))

	var res result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.EqualValues(t, 8, res.Data["double"])
}

func TestHandlerRejects(t *testing.T) {
	h := gql.Handler(echoSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/graphql", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
