package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// apiError is the wire shape for JSON error responses. Error is a stable
// machine-readable code (e.g. a FailureKind); Message is the user-facing
// text, already in the portal's language.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
// Returns false after writing the error response, so handlers can bail with
// a single check.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// WriteJSON encodes v and writes it with the given status code. Encoding
// happens into a buffer first so an encode failure can still produce a clean
// 500 instead of a half-written body.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Nothing left to do on a write failure (client gone).
		return
	}
}

// WriteAPIError writes a classified error as a JSON apiError body.
func WriteAPIError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, apiError{Error: code, Message: message})
}
