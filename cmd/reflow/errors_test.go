package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode_DefaultsToFailureForPlainErrors(t *testing.T) {
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}

func TestExitCode_NilIsSuccess(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
}

func TestExitCode_UsesExitErrorCode(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad args")
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestExitCode_UnwrapsWrappedExitError(t *testing.T) {
	inner := NewExitError(ExitCommandError, "bad args")
	wrapped := errors.Join(errors.New("context"), inner)
	assert.Equal(t, ExitCommandError, ExitCode(wrapped))
}

func TestWrapExitError_IncludesUnderlyingError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to write", inner)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "failed to write")
	assert.ErrorIs(t, err, inner)
}
