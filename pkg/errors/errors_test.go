package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrEmptyMessage, http.StatusOK},
		{ErrNoFilePart, http.StatusOK},
		{ErrNoFilename, http.StatusOK},
		{ErrDisallowedType, http.StatusOK},
		{ErrInvalidPayload, http.StatusBadRequest},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrNotFound, http.StatusNotFound},
		{ErrStorageWrite, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatusFromError(tc.err), tc.err.Error())
	}
}

func TestNewAPIErrorUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("save photo.png: %w", ErrStorageWrite)

	apiErr := NewAPIError(err)

	assert.Equal(t, StatusError, apiErr.Status)
	assert.Equal(t, "Failed to store file", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
}

func TestNewAPIErrorOmitsMessageForEmptyText(t *testing.T) {
	apiErr := NewAPIError(ErrEmptyMessage)

	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "error", apiErr.Error())
}
