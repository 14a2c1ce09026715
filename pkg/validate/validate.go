// Package validate provides struct-tag validation and the ValidationError
// returned whenever user input is rejected.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	between=min,max     number or string length between min and max (inclusive)
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Value int    `json:"input_value" validate:"required,between=1,9"`
//	    Mode  string `json:"mode"        validate:"nullable,in=fast,full"`
//	}
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ─── ValidationError ──────────────────────────────────────────────────────────

// ValidationError reports rejected input as a field → message map.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds a single-field ValidationError.
func NewError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// Check runs Struct and wraps any failures in a *ValidationError.
func Check(v interface{}) error {
	if errs := Struct(v); HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// Integer coerces a loosely-typed input (as decoded from JSON, a form or a
// CLI argument) into an int. A nil value is reported as missing; strings,
// fractional numbers and other kinds are reported as non-integer.
func Integer(field string, raw interface{}) (int, error) {
	notInt := NewError(field, fmt.Sprintf("The %s field must be an integer.", field))

	switch t := raw.(type) {
	case nil:
		return 0, NewError(field, fmt.Sprintf("The %s field is required.", field))
	case int:
		return t, nil
	case int8:
		return int(t), nil
	case int16:
		return int(t), nil
	case int32:
		return int(t), nil
	case int64:
		if t < math.MinInt || t > math.MaxInt {
			return 0, notInt
		}
		return int(t), nil
	case uint8:
		return int(t), nil
	case uint16:
		return int(t), nil
	case uint32:
		return int(t), nil
	case uint:
		if uint64(t) > math.MaxInt {
			return 0, notInt
		}
		return int(t), nil
	case uint64:
		if t > math.MaxInt {
			return 0, notInt
		}
		return int(t), nil
	case float32:
		return wholeFloat(float64(t), notInt)
	case float64:
		return wholeFloat(t, notInt)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Integer(field, n)
		}
		f, err := t.Float64()
		if err != nil {
			return 0, notInt
		}
		return wholeFloat(f, notInt)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, NewError(field, fmt.Sprintf("The %s field is required.", field))
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, notInt
		}
		return n, nil
	}
	return 0, notInt
}

func wholeFloat(f float64, notInt error) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, notInt
	}
	return int(f), nil
}

// ─── Rules ────────────────────────────────────────────────────────────────────

// ruleFunc returns a message when v breaks the rule, "" otherwise.
type ruleFunc func(field, param string, v reflect.Value) string

var ruleSet = map[string]ruleFunc{
	"required": func(field, _ string, v reflect.Value) string {
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	},
	"numeric": func(field, _ string, v reflect.Value) string {
		if _, err := strconv.ParseFloat(text(v), 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		return ""
	},
	"integer": func(field, _ string, v reflect.Value) string {
		if _, err := strconv.ParseInt(text(v), 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
		return ""
	},
	"min": func(field, param string, v reflect.Value) string {
		if size, unit := measure(v); size < number(param) {
			return fmt.Sprintf("The %s must be at least %s%s.", field, param, unit)
		}
		return ""
	},
	"max": func(field, param string, v reflect.Value) string {
		if size, unit := measure(v); size > number(param) {
			return fmt.Sprintf("The %s must not be greater than %s%s.", field, param, unit)
		}
		return ""
	},
	"gte": func(field, param string, v reflect.Value) string {
		if size, _ := measure(v); size < number(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
		return ""
	},
	"lte": func(field, param string, v reflect.Value) string {
		if size, _ := measure(v); size > number(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
		return ""
	},
	"between": func(field, param string, v reflect.Value) string {
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return ""
		}
		if size, unit := measure(v); size < number(lo) || size > number(hi) {
			return fmt.Sprintf("The %s must be between %s and %s%s.", field, lo, hi, unit)
		}
		return ""
	},
	"in": func(field, param string, v reflect.Value) string {
		raw := text(v)
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
}

func applyRule(rule, field string, v reflect.Value) string {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	name, param, _ := strings.Cut(rule, "=")
	if fn, ok := ruleSet[name]; ok {
		return fn(field, param, v)
	}
	return ""
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	}
	if v.CanInt() || v.CanUint() || v.CanFloat() {
		f, _ := measure(v)
		return f == 0
	}
	return false
}

// measure returns a number's value, or a string's rune count (or any
// other value's length) with the unit used in messages.
func measure(v reflect.Value) (float64, string) {
	switch {
	case v.CanInt():
		return float64(v.Int()), ""
	case v.CanUint():
		return float64(v.Uint()), ""
	case v.CanFloat():
		return v.Float(), ""
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(v.Len()), " items"
	}
	return float64(len([]rune(text(v)))), " characters"
}

func text(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	return fmt.Sprintf("%v", v.Interface())
}

func number(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

// splitRules splits a validate tag on commas. A piece that does not start
// with a known rule name continues the previous rule's parameter, so
// "required,between=1,9,in=a,b" gives [required between=1,9 in=a,b].
func splitRules(tag string) []string {
	var rules []string
	for _, piece := range strings.Split(tag, ",") {
		piece = strings.TrimSpace(piece)
		if len(rules) > 0 && !isRuleName(piece) {
			rules[len(rules)-1] += "," + piece
			continue
		}
		rules = append(rules, piece)
	}
	return rules
}

func isRuleName(piece string) bool {
	name, _, _ := strings.Cut(piece, "=")
	_, ok := ruleSet[name]
	return ok || name == "nullable"
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if r == target {
			return true
		}
	}
	return false
}
