package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/laporinfra/laporinfra/pkg/errors"
	"github.com/laporinfra/laporinfra/pkg/i18n"
)

// Response is the envelope shared with the upstream reporting API:
// {success, message, data}. Errors add an error body.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody represents an error in the response
type ErrorBody struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
	NextStep string            `json:"next_step,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	JSONWithMessage(w, statusCode, "", data)
}

// JSONWithMessage sends a JSON response with a user-facing message
func JSONWithMessage(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Message: message,
		Data:    data,
	}

	json.NewEncoder(w).Encode(response)
}

// ErrorLocalized sends a localized error response using request context
func ErrorLocalized(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		w.WriteHeader(appErr.StatusCode)

		message := appErr.Localize(r.Context())

		json.NewEncoder(w).Encode(Response{
			Success: false,
			Message: message,
			Error: &ErrorBody{
				Code:     appErr.Code,
				Message:  message,
				Details:  appErr.Details,
				NextStep: appErr.NextStep,
			},
		})
		return
	}

	localizer := i18n.LocalizerFromContext(r.Context())
	w.WriteHeader(http.StatusInternalServerError)

	json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: localizer.T("errors.internal"),
		Error: &ErrorBody{
			Code:    "INTERNAL_ERROR",
			Message: localizer.T("errors.internal"),
		},
	})
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Created sends a 201 Created response
func Created(w http.ResponseWriter, message string, data interface{}) {
	JSONWithMessage(w, http.StatusCreated, message, data)
}

// DecodeJSONLocalized decodes the request body with localized error
func DecodeJSONLocalized(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		localizer := i18n.LocalizerFromContext(r.Context())
		return errors.BadRequest(localizer.T("errors.invalid_json"))
	}
	return nil
}
