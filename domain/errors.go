package domain

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested repository does not exist
	ErrNotFound = errors.New("repository not found")
	// ErrInvalidID will throw if the given repository id is not a valid UUID
	ErrInvalidID = errors.New("invalid repository id")
)

// Messages written to clients for domain errors.
const (
	MsgInvalidID      = "Invalid repository id."
	MsgNotFound       = "Repository not found!"
	MsgGetNotFound    = "Repository not found!!!"
	MsgInternalServer = "Internal server error."
)

// ResponseError represent the response error struct
type ResponseError struct {
	Error  string                                 `json:"error"`
	Fields validator.ValidationErrorsTranslations `json:"fields,omitempty"`
}

// GetStatusCode gets http code from error
func GetStatusCode(err error, logger *zap.Logger) int {
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusBadRequest
	}

	if logger != nil {
		logger.Error("Server error: ", zap.Error(err))
	}
	return http.StatusInternalServerError
}

// GetMessage gets client message from error, notFound is used for ErrNotFound
func GetMessage(err error, notFound string) string {
	switch {
	case errors.Is(err, ErrInvalidID):
		return MsgInvalidID
	case errors.Is(err, ErrNotFound):
		return notFound
	default:
		return MsgInternalServer
	}
}
