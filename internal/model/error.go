package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeOrderIDRequired   = "ORDER_ID_REQUIRED"
	ErrCodeInvalidPage       = "INVALID_PAGE"
	ErrCodeInvalidTheme      = "INVALID_THEME"
	ErrCodeSyncInProgress    = "SYNC_IN_PROGRESS"
	ErrCodeUpstreamFailure   = "UPSTREAM_FAILURE"
	ErrCodeExportFailed      = "EXPORT_FAILED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeSettingsUnchanged = "SETTINGS_UNCHANGED"
)

// Domain errors for dashboard logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOrderIDRequired   = NewDomainError(ErrCodeOrderIDRequired, "Order ID is required")
	ErrInvalidPage       = NewDomainError(ErrCodeInvalidPage, "Page must be greater than zero")
	ErrInvalidTheme      = NewDomainError(ErrCodeInvalidTheme, "Theme must be either light or dark")
	ErrSyncInProgress    = NewDomainError(ErrCodeSyncInProgress, "A sync is already in progress")
	ErrSettingsUnchanged = NewDomainError(ErrCodeSettingsUnchanged, "Settings update contains no changes")
)
