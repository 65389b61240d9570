// Package respond centralizes the JSON envelope every handler writes, so
// success and failure bodies have one shape across the API.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a response using the common envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response. The message is the only detail clients
// receive; anything sensitive stays in the server log.
func Error(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{Code: status, Message: message})
}

func writeEnvelope(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
