package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the normalized response shape every endpoint renders, matching
// the upstream SnapURL API contract so the dashboard handles one format only.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Envelope{Success: false, Error: message, Message: message})
}

func RespondWithData(w http.ResponseWriter, code int, message string, data interface{}) {
	RespondWithJSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
