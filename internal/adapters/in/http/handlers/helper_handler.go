// internal/adapters/in/http/handlers/helper_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr answers in the storefront's error shape: {success:false, message}.
func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": strings.TrimSpace(msg),
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFoundRoute(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not found")
}
