package common

import (
	"fmt"
	"io"

	"go-atm-engine/logger"

	"github.com/sirupsen/logrus"
)

// Codes reuse the HTTP status numbers the terminal operators already know.
const (
	CodeInvalidInput = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeInternal     = 500
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Send logs the internal cause, if any, and writes the user-facing message.
func (e *AppError) Send(w io.Writer) {
	if e.Err != nil {
		entry := logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		})
		if e.Code >= CodeInternal {
			entry.Error(e.Message)
		} else {
			entry.Warn(e.Message)
		}
	}

	fmt.Fprintf(w, "Error: %s\n", e.Message)
}
