package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// errNotJSON is returned by decodeJSON for a body that does not parse as
// the expected JSON shape.
var errNotJSON = errors.New("Request body is not valid JSON for this endpoint.")

// WriteJSON writes data as a JSON response with the given status code.
// The Content-Type header is set before the status is written.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // nothing useful to do with a write error here
}

// errorResponse is the error envelope returned by every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes the standard error envelope with the given status,
// machine-readable code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// decodeJSON strictly decodes the request body into v, rejecting unknown
// fields. Content-Type enforcement happens in the router middleware before
// any handler runs, so a failure here means the body itself is malformed
// or does not match the expected shape.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errNotJSON
	}
	return nil
}
