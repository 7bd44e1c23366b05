// Package httpx holds the shared JSON response helpers used by all handler
// packages. Failure bodies always carry a human-readable `message`; the raw
// error detail is attached only in development mode.
package httpx

import (
	"encoding/json"
	"net/http"
)

var devMode bool

// SetDevMode toggles inclusion of the `error` detail field in failure bodies.
// Called once at startup.
func SetDevMode(on bool) {
	devMode = on
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a `{message}` failure body.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{Message: message})
}

// ErrorWith writes a `{message}` failure body, adding the underlying error
// as `error` when running in development mode.
func ErrorWith(w http.ResponseWriter, status int, message string, err error) {
	body := errorBody{Message: message}
	if devMode && err != nil {
		body.Error = err.Error()
	}
	WriteJSON(w, status, body)
}
