package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/gatekeeper/pkg/validator"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Status  string       `json:"status"` // "success", "fail" (4xx) or "error" (5xx)
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries error information in the response envelope. Debug is
// only populated in development mode and must never reach production
// clients.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
	Debug   string              `json:"debug,omitempty"`
}

// WriteJSON renders the envelope with the given HTTP status.
func WriteJSON(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteSuccess renders a success envelope carrying data.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, JSONResponse{Status: "success", Data: data})
}

// WriteMessage renders a success envelope carrying only a message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, JSONResponse{Status: "success", Message: message})
}

// WriteError maps an error to the envelope. Validation failures become a
// 400 with per-field details; HTTPError values keep their code and key;
// anything else is an internal error rendered as an opaque 500. When dev
// is true the underlying error string is echoed in the Debug field.
func WriteError(w http.ResponseWriter, err error, dev bool) {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: "Something went wrong",
	}

	var (
		ve      validator.ValidationErrors
		httpErr HTTPError
	)
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		detail.Code = "validation_error"
		detail.Message = "Validation failed"
		detail.Details = make(map[string][]string, len(ve.Fields()))
		for _, field := range ve.Fields() {
			detail.Details[field] = ve.Get(field)
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail.Code = httpErr.Key
		detail.Message = http.StatusText(httpErr.Code)
	}

	if dev && err != nil {
		detail.Debug = err.Error()
	}

	statusWord := "fail"
	if status >= http.StatusInternalServerError {
		statusWord = "error"
	}

	WriteJSON(w, status, JSONResponse{Status: statusWord, Error: detail})
}
