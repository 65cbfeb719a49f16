package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"deslimste/internal/service"
)

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service sentinels onto HTTP statuses so that
// validation failures are never reported as server errors.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrWrongPIN),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrRoundLocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrRoundNotActive):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyTeamName),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrNotConfigured),
		errors.Is(err, service.ErrAlreadyStarted),
		errors.Is(err, service.ErrNotStarted),
		errors.Is(err, service.ErrAlreadyFound),
		errors.Is(err, service.ErrRoundComplete),
		errors.Is(err, service.ErrNoContent),
		errors.Is(err, service.ErrMissingOptions),
		errors.Is(err, service.ErrInvalidSubmission):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
