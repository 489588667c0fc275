package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Reply 405 and report false unless the request is a GET.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// Map engine errors to status codes. Internal failures are logged and
// reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrReferenceNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		obs.Logger(r.Context()).WithError(err).WithField("op", op).Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// Parse an optional uint64 query parameter.
func queryUint(r *http.Request, key string, fallback uint64) (uint64, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback, true
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
