package common

import (
	"bytes"
	"errors"
	"testing"

	"go-atm-engine/logger"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("insufficient funds")
	appErr := NewAppError(CodeConflict, "Insufficient balance.", cause)

	assert.Equal(t, "Insufficient balance.", appErr.Error())
	assert.ErrorIs(t, appErr, cause)

	var logs, out bytes.Buffer
	logger.InitWithOutput("warn", "text", &logs)
	t.Cleanup(func() { logger.Init("info", "text") })

	appErr.Send(&out)
	assert.Equal(t, "Error: Insufficient balance.\n", out.String())
	assert.Contains(t, logs.String(), "internal_error=\"insufficient funds\"")
	assert.Contains(t, logs.String(), "status_code=409")
}

func TestAppError_SendWithoutCause(t *testing.T) {
	var logs, out bytes.Buffer
	logger.InitWithOutput("debug", "text", &logs)
	t.Cleanup(func() { logger.Init("info", "text") })

	NewAppError(CodeNotFound, "Unknown command.", nil).Send(&out)
	assert.Equal(t, "Error: Unknown command.\n", out.String())
	assert.Empty(t, logs.String())
}
