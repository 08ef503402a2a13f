package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteError writes an ErrorResponse with the given status code.
func WriteError(w http.ResponseWriter, status int, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Details: details}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

// Known Postgres error codes translated to user-facing messages. Anything not
// listed here falls back to a generic message so raw SQL errors never reach
// the client.
var pgErrorMessages = map[string]string{
	"23505": "A record with the same values already exists",
	"23503": "This record is referenced by other data and cannot be changed",
	"23502": "A required field is missing",
	"23514": "One of the provided values is out of the allowed range",
}

const genericDBErrorMessage = "Something went wrong while saving your data"

// TranslateDBError maps a database error to a message suitable for end users.
func TranslateDBError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if msg, ok := pgErrorMessages[pgErr.Code]; ok {
			return msg
		}
	}
	return genericDBErrorMessage
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
