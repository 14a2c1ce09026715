package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// RunFile loads the scenarios in path and runs them in order, each as a
// subtest against handler.
func RunFile(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	scenarios, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			Run(t, handler, s)
		})
	}
}

// Run fires one scenario at handler and checks its status and body.
func Run(t *testing.T, handler http.Handler, s *Scenario) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var body io.Reader
	if len(raw) > 0 {
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.expectedBody()
	if err != nil {
		t.Errorf("[%s] read expected body: %v", s.Name, err)
		return rec
	}
	AssertJSONBody(t, s, expected, rec.Body.Bytes())
	return rec
}
