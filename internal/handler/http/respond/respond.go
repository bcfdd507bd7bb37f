// Package respond writes JSON responses and sanitized error bodies.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as JSON with the given status code. A nil v writes headers only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes {"error": err.Error()} with the given status code.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// Message writes {"error": msg} with the given status code.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// safeFragments mark messages that are fine to show to clients.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"must not",
	"too large",
	"rate limit",
	"unknown",
}

// SafeError writes err when it reads like a client error and a generic message otherwise.
// 5xx responses always carry the generic message; the sanitized cause is logged.
// An *AppError writes its user message with its own status code.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("application error",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		Message(w, appErr.Code, appErr.UserMsg)
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		Message(w, code, msg)
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	Message(w, code, "internal server error")
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, fragment := range safeFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// AppError carries a fixed user-facing message alongside the internal cause.
type AppError struct {
	UserMsg string
	Err     error
	Code    int
}

// Error returns the internal cause, or the user message when there is none.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the internal cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}
