package errors

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNoFilePart     = errors.New("no file part")
	ErrNoFilename     = errors.New("no selected file")
	ErrDisallowedType = errors.New("file type not allowed")
	ErrFileTooLarge   = errors.New("file too large")
	ErrStorageWrite   = errors.New("storage write failure")
	ErrNotFound       = errors.New("not found")
	ErrInternalServer = errors.New("internal server error")
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIError is the JSON body returned for every failed request.
// Message is omitted for failures the client is only told about by status.
type APIError struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return e.Message
}

// NewAPIError converts a domain error into the response body and status
// code for it. Unknown errors become an internal server error.
func NewAPIError(err error) *APIError {
	return &APIError{
		Status:  StatusError,
		Message: messageFromError(err),
		Code:    HTTPStatusFromError(err),
	}
}

// Validation failures are reported with 200 and a status field so that
// existing polling clients keep working.
func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrNoFilePart),
		errors.Is(err, ErrNoFilename),
		errors.Is(err, ErrDisallowedType):
		return http.StatusOK
	case errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func messageFromError(err error) string {
	switch {
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrInvalidPayload):
		return ""
	case errors.Is(err, ErrNoFilePart):
		return "No file part"
	case errors.Is(err, ErrNoFilename):
		return "No selected file"
	case errors.Is(err, ErrDisallowedType):
		return "File type not allowed"
	case errors.Is(err, ErrFileTooLarge):
		return "File too large"
	case errors.Is(err, ErrStorageWrite):
		return "Failed to store file"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	default:
		return "Internal server error"
	}
}
