package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned to clients.
const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInternal         = "INTERNAL"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func Unauthenticated() *Error {
	return &Error{Code: CodeUnauthenticated, Message: "must be signed in"}
}

// NotFound covers both a missing id and a row owned by another user.
// The two cases are never distinguished to the caller.
func NotFound(entity string) *Error {
	return &Error{Code: CodeNotFound, Message: entity + " not found"}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func status(code string) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type envelope struct {
	Error *Error `json:"error"`
}

// Write renders err as the JSON error envelope. Anything that is not an
// *Error (store unreachable, bad scan) surfaces as INTERNAL rather than
// being mapped to a logical failure.
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Code: CodeInternal, Message: "internal error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status(apiErr.Code))
	json.NewEncoder(w).Encode(envelope{Error: apiErr})
}
