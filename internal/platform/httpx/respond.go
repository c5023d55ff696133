// Package httpx renders the API response envelope shared by every endpoint.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/campdir/campdir/internal/shared"
)

// Envelope is the uniform response body:
// {success, message, data?, error?, count?, totalPages?, pagination?}.
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       any               `json:"data,omitempty"`
	Error      any               `json:"error,omitempty"`
	Count      *int              `json:"count,omitempty"`
	TotalPages *int              `json:"totalPages,omitempty"`
	Pagination *shared.PageLinks `json:"pagination,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK sends a success envelope carrying an optional data payload.
func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Collection sends an unpaginated match set with its count.
func Collection[T any](w http.ResponseWriter, message string, data []T) {
	if data == nil {
		data = []T{}
	}
	count := len(data)
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

// PageResult sends one page of results with pagination metadata.
func PageResult[T any](w http.ResponseWriter, message string, page shared.Page[T]) {
	count := page.Count
	totalPages := page.TotalPages
	links := page.Links
	JSON(w, http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Count:      &count,
		TotalPages: &totalPages,
		Pagination: &links,
		Data:       page.Data,
	})
}

// Fail sends a failure envelope with an explicit status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
