// internal/controller/respond.go
package controller

import (
    "encoding/json"
    "net/http"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload map[string]any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

// respondError maps the error taxonomy onto status codes and the
// success/error envelope every operation returns.
func respondError(w http.ResponseWriter, err error) {
    status := http.StatusInternalServerError
    switch {
    case appErrors.IsInvalidInput(err):
        status = http.StatusBadRequest
    case appErrors.IsNotFound(err):
        status = http.StatusNotFound
    }
    respondJSON(w, status, map[string]any{
        "success": false,
        "error":   err.Error(),
    })
}

func respondBadRequest(w http.ResponseWriter, msg string) {
    respondJSON(w, http.StatusBadRequest, map[string]any{
        "success": false,
        "error":   msg,
    })
}
