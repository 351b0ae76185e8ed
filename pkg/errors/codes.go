package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// The engine and the wire protocol recognise a closed set of fault kinds.
// Every error that crosses the engine boundary carries exactly one of
// these codes; no other category is introduced above the storage layer.
const (
	// ErrorCodeIO covers any filesystem or network I/O failure: opening,
	// reading, writing, seeking, flushing, renaming or removing a segment
	// file, or reading/writing a client connection.
	ErrorCodeIO ErrorCode = "IO"

	// ErrorCodeSerialisation covers malformed request, response or record
	// encoding - anything that fails to marshal or unmarshal as JSON.
	ErrorCodeSerialisation ErrorCode = "SERIALISATION"

	// ErrorCodeKeyNotFound is produced only by Remove on a missing key,
	// and by the client CLI's "rm" on the same condition.
	ErrorCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrorCodeLogLoad marks a replay of a segment that aborted because
	// of a format or read failure during open.
	ErrorCodeLogLoad ErrorCode = "LOG_LOAD"

	// ErrorCodeCorruption marks an Index entry that points at a record
	// that is not a Set, or that cannot be parsed at all.
	ErrorCodeCorruption ErrorCode = "CORRUPTION"

	// ErrorCodeUnexpectedType is a catch-all used at command dispatch
	// boundaries (an unrecognised engine name).
	ErrorCodeUnexpectedType ErrorCode = "UNEXPECTED_TYPE"

	// ErrorCodeString wraps a text error received over the wire, where
	// the original structured kind has already been lost to
	// serialisation.
	ErrorCodeString ErrorCode = "STRING"

	// ErrorCodeInvalidInput represents client-side errors where the
	// provided data (configuration, CLI flags) doesn't meet the
	// system's requirements. Used only during setup, never returned
	// from Set/Get/Remove.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
)
