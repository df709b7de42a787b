package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/observability/middleware"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged and answered with an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, dto.Error{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, dto.Error{Error: err.Error()})
	case errors.Is(err, domain.ErrNoSuchUser), errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrUsernameExists),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, dto.Error{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err,
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, dto.Error{Error: "internal error"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Error{Error: "bad request"})
		return false
	}
	return true
}
