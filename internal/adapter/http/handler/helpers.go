package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
)

// decodeJSON decodes a JSON request body.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDenied reports an expected business denial. The bank has already
// logged the reason; the API surfaces the outcome only.
func writeDenied(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "operation denied", message)
}

// mapDomainError maps hard domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownAccountType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateAccountID):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseCountQuery parses the optional "count" query parameter; zero means the
// full history.
func parseCountQuery(r *http.Request) int {
	val := r.URL.Query().Get("count")
	if val == "" {
		return 0
	}

	count, err := strconv.Atoi(val)
	if err != nil || count < 0 {
		return 0
	}

	return count
}
