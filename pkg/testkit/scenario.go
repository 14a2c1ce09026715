// Package testkit runs JSON-described HTTP scenarios against a handler.
//
// A scenario file holds an ordered array of requests that share one
// handler, so later steps can read what earlier steps wrote:
//
//	[
//	  {"name": "store", "requestMethod": "POST", "requestUrl": "/api/cells",
//	   "requestBody": {"input_value": 5}, "expectedCode": 201,
//	   "expectedBody": {"data": {"id": 1, "input_value": 5}}},
//	  {"name": "show", "requestUrl": "/api/cells/1", "expectedCode": 200}
//	]
//
// expectedBody is matched as a subset: objects may carry extra keys, arrays
// and scalars must match exactly. Bodies can also live in side files named
// by requestFileName / responseFileName, resolved next to the scenario file.
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunFile(t, handler, "testdata/cells.json")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario is one request and its expected outcome.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"` // defaults to GET
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"`
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int             `json:"expectedCode"`
	ExpectedBody     json.RawMessage `json:"expectedBody"`
	ResponseFileName string          `json:"responseFileName"`

	dir string
}

// LoadScenarios reads an array of scenarios from path.
func LoadScenarios(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	for i, s := range scenarios {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: %q item %d: %w", abs, i, err)
		}
		s.dir = filepath.Dir(abs)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if len(s.RequestBody) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("requestBody and requestFileName are exclusive")
	}
	if len(s.ExpectedBody) > 0 && s.ResponseFileName != "" {
		return fmt.Errorf("expectedBody and responseFileName are exclusive")
	}
	return nil
}

// requestBody returns the raw request body, or nil for none.
func (s *Scenario) requestBody() ([]byte, error) {
	if s.RequestFileName != "" {
		return os.ReadFile(s.resolve(s.RequestFileName))
	}
	return s.RequestBody, nil
}

// expectedBody returns the raw expected body, or nil when unchecked.
func (s *Scenario) expectedBody() ([]byte, error) {
	if s.ResponseFileName != "" {
		return os.ReadFile(s.resolve(s.ResponseFileName))
	}
	return s.ExpectedBody, nil
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
