// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/sudoku/config"
	"github.com/shashiranjanraj/sudoku/pkg/validate"
)

const defaultMaxBodyBytes = 1 << 20

// maxBodyBytes returns the configured request body size limit.
func maxBodyBytes() int64 {
	n := config.Int("MAX_BODY_BYTES", defaultMaxBodyBytes)
	if n <= 0 {
		return defaultMaxBodyBytes
	}
	return int64(n)
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Numbers decode as json.Number so integer checks see the literal the
// client sent. Returns (errs, nil) when there are validation failures and
// (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
