package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"order-dashboard/internal/client"
	"order-dashboard/internal/middleware"
	"order-dashboard/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 16

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to report.
		return
	}
}

// writeError writes a standard error body tagged with the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("request_id", correlationID).
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error onto an HTTP status. Upstream
// failures carry the backend message when there is one, otherwise fallback.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == model.ErrCodeSyncInProgress {
			status = http.StatusConflict
		}
		writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) || errors.Is(err, client.ErrTransport) {
		message := fallback
		if msg, ok := client.MessageOf(err); ok {
			message = msg
		}
		writeError(w, r, http.StatusBadGateway, model.ErrCodeUpstreamFailure, message, logger)
		return
	}

	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and reports whether the caller may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		message := "validation failed"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			message = "invalid value for field " + verrs[0].Field() + ": failed " + verrs[0].Tag()
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, message, logger)
		return false
	}

	return true
}
