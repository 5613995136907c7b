package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"bulletinboard/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serviceError maps the sentinel taxonomy onto HTTP statuses. A wrong
// edit token answers 404 like a missing ad so the two cases are
// indistinguishable to a token guesser.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrAdNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrImageNotFound),
		errors.Is(err, models.ErrInvalidEditToken):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrDuplicateCategoryName):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID reads a pat route parameter as an int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(":" + name)
	return strconv.ParseInt(raw, 10, 64)
}

// clientIP extracts the originating address, trusting proxy headers in
// the order the deployment sets them.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return strings.TrimSpace(rip)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
