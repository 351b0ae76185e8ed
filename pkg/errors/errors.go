// Package errors defines the closed fault taxonomy shared by the storage
// engine and the wire protocol: Io, Serialisation, KeyNotFound, LogLoad,
// Corruption, UnexpectedType and StringError (plus InvalidInput for
// configuration validation, which never crosses the engine boundary).
//
// Two structured error types carry this taxonomy through the system -
// StorageError, which records which segment file and byte offset were
// involved, and ValidationError, which records which configuration field
// and rule were violated. Both embed baseError so they chain with
// errors.Is/errors.As and keep the message/code/details contract uniform.
//
// Over the wire, an engine error is reduced to its string form (see
// NewGetErr, NewSetErr and NewRmErr in package protocol) and reconstructed on the client as
// a StringError - the structured kind does not survive serialisation by
// design (spec §7).
package errors

import (
	stdErrors "errors"
	"os"
)

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError reports whether err is, or wraps, a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStorageError extracts a StorageError from an error chain, giving
// access to SegmentId(), Offset(), FileName() and Path().
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// GetErrorCode extracts the ErrorCode from any error built by this
// package, or ErrorCodeUnexpectedType for anything else.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	var be *baseError
	if stdErrors.As(err, &be) {
		return be.Code()
	}
	return ErrorCodeUnexpectedType
}

// GetErrorDetails extracts structured details from any error that
// supports them, or an empty map otherwise.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if se, ok := AsStorageError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}
	var be *baseError
	if stdErrors.As(err, &be) {
		if details := be.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError wraps a directory-creation failure as an
// Io-coded StorageError, noting the underlying permission condition in
// the details map rather than inventing a new error code for it.
func ClassifyDirectoryCreationError(err error, path string) error {
	se := NewIOError(err, "failed to create segment directory").
		WithPath(path)
	se.WithDetail("operation", "directory_creation")
	if os.IsPermission(err) {
		se.WithDetail("reason", "permission_denied")
	}
	return se
}

// ClassifyFileOpenError wraps a segment file open failure as an Io-coded
// StorageError.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	se := NewIOError(err, "failed to open segment file").
		WithPath(filePath).
		WithFileName(fileName)
	se.WithDetail("operation", "file_open")
	if os.IsPermission(err) {
		se.WithDetail("reason", "permission_denied")
	}
	return se
}

// ClassifySyncError wraps a segment flush/sync failure as an Io-coded
// StorageError, recording the offset reached before the failure.
func ClassifySyncError(err error, fileName, filePath string, offset int64) error {
	se := NewIOError(err, "failed to sync segment file to disk").
		WithFileName(fileName).
		WithPath(filePath).
		WithOffset(offset)
	se.WithDetail("operation", "file_sync")
	return se
}
