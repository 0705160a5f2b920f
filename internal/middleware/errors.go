package middleware

import (
	"encoding/json"
	"net/http"
)

// writeDescription writes the same {"description": "..."} body the API
// handlers use, so rejections made here look like any other API error.
func writeDescription(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"description": msg})
}
