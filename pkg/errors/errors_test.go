package errors

import (
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyNotFoundSentinel(t *testing.T) {
	err := ErrKeyNotFound
	require.True(t, IsKeyNotFound(err))
	require.False(t, IsKeyNotFound(NewIOError(nil, "disk full")))

	wrapped := NewStorageError(err, ErrorCodeKeyNotFound, "key not found").WithPath("segments")
	require.True(t, stdErrors.Is(wrapped, ErrKeyNotFound))
}

func TestGetErrorCode(t *testing.T) {
	require.Equal(t, ErrorCodeIO, GetErrorCode(NewIOError(nil, "boom")))
	require.Equal(t, ErrorCodeCorruption, GetErrorCode(NewCorruptionError(nil, "bad record")))
	require.Equal(t, ErrorCodeInvalidInput, GetErrorCode(NewValidationError(nil, ErrorCodeInvalidInput, "addr is required").WithField("addr").WithRule("required")))
	require.Equal(t, ErrorCodeUnexpectedType, GetErrorCode(stdErrors.New("plain error")))
}

func TestGetErrorDetails(t *testing.T) {
	err := NewIOError(nil, "boom").WithDetail("operation", "file_open")
	details := GetErrorDetails(err)
	require.Equal(t, "file_open", details["operation"])

	require.Empty(t, GetErrorDetails(stdErrors.New("plain")))
}

func TestAsStorageError(t *testing.T) {
	err := NewCorruptionError(nil, "bad record").WithFileName("3.log").WithOffset(42)

	se, ok := AsStorageError(err)
	require.True(t, ok)
	require.Equal(t, "3.log", se.FileName())
	require.EqualValues(t, 42, se.Offset())

	_, ok = AsValidationError(err)
	require.False(t, ok)
}

func TestAsValidationError(t *testing.T) {
	err := NewValidationError(nil, ErrorCodeInvalidInput, "workers must be between 1 and 64").
		WithField("workers").
		WithRule("range").
		WithProvided(0)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, ErrorCodeInvalidInput, ve.Code())
	require.Equal(t, "workers must be between 1 and 64", ve.Error())
}

func TestClassifyDirectoryCreationError(t *testing.T) {
	cause := stdErrors.New("permission denied")
	err := ClassifyDirectoryCreationError(cause, "/data/log")

	se, ok := AsStorageError(err)
	require.True(t, ok)
	require.Equal(t, ErrorCodeIO, se.Code())
	require.Equal(t, "/data/log", se.Path())
	require.Equal(t, "directory_creation", se.Details()["operation"])
}

func TestClassifySyncError(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := ClassifySyncError(cause, "3.log", "/data/log/3.log", 128)

	se, ok := AsStorageError(err)
	require.True(t, ok)
	require.EqualValues(t, 128, se.Offset())
	require.Equal(t, "3.log", se.FileName())
}
