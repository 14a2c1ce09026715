// Package response writes the JSON envelope every endpoint answers with:
//
//	{"status": 422, "message": "Validation failed", "errors": {"input_value": "..."}}
//	{"status": 200, "data": {...}}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/sudoku/pkg/orm"
)

// Body is the envelope. Status repeats the HTTP status code.
type Body struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Page is the data of a paginated listing.
type Page struct {
	Items      interface{}    `json:"items"`
	Pagination orm.Pagination `json:"pagination"`
}

// JSON writes body with the given status; body.Status is filled in.
func JSON(w http.ResponseWriter, status int, body Body) {
	body.Status = status
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Body{Data: data})
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, Body{Data: data})
}

// Paginated sends one page of items with its pagination metadata.
func Paginated(w http.ResponseWriter, items interface{}, p orm.Pagination) {
	JSON(w, http.StatusOK, Body{Data: Page{Items: items, Pagination: p}})
}

// Error sends a message-only error.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Body{Message: message})
}

// ValidationError sends 422 with a field → message map.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, Body{Message: "Validation failed", Errors: fields})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
