package testkit_test

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sudoku/pkg/testkit"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestSubset(t *testing.T) {
	actual := decode(t, `{"status":200,"data":{"id":3,"input_value":5,"extra":true},"list":[1,2]}`)

	assert.Empty(t, testkit.Subset("", decode(t, `{"data":{"input_value":5}}`), actual))
	assert.Empty(t, testkit.Subset("", decode(t, `{"list":[1,2]}`), actual))
	assert.Len(t, testkit.Subset("", decode(t, `{"data":{"input_value":6}}`), actual), 1)
	assert.Len(t, testkit.Subset("", decode(t, `{"list":[1]}`), actual), 1)
	assert.Len(t, testkit.Subset("", decode(t, `{"missing":1}`), actual), 1)
	assert.Len(t, testkit.Subset("", decode(t, `{"status":{"code":200}}`), actual), 1)
}

func TestLoadScenariosValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x","requestUrl":"/"}]`), 0o600))

	_, err := testkit.LoadScenarios(path)
	assert.ErrorContains(t, err, "expectedCode")
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "req.json"), []byte(`{"n":2}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echo.json"), []byte(`[
		{"name": "inline", "requestMethod": "POST", "requestUrl": "/echo",
		 "requestBody": {"n": 1}, "expectedCode": 200, "expectedBody": {"n": 1}},
		{"name": "from file", "requestMethod": "POST", "requestUrl": "/echo",
		 "requestFileName": "req.json", "expectedCode": 200, "expectedBody": {"n": 2}},
		{"name": "no body", "requestUrl": "/echo", "expectedCode": 204}
	]`), 0o600))

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(body) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})

	testkit.RunFile(t, echo, filepath.Join(dir, "echo.json"))
}
