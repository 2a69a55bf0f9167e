// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and agents.
const (
	// Project errors
	ErrProjectNotFound     = "PROJECT_NOT_FOUND"
	ErrProjectNotSpecified = "PROJECT_NOT_SPECIFIED"
	ErrConfigInvalid       = "CONFIG_INVALID"

	// Item errors
	ErrItemNotFound = "ITEM_NOT_FOUND"
	ErrItemExists   = "ITEM_EXISTS"
	ErrItemInvalid  = "ITEM_INVALID"
	ErrTypeUnknown  = "TYPE_UNKNOWN"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileExists     = "FILE_EXISTS"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Index errors
	ErrIndexError   = "INDEX_ERROR"
	ErrIndexLocked  = "INDEX_LOCKED"
	ErrIndexVersion = "INDEX_VERSION_MISMATCH"

	// Scan and resolution errors
	ErrScanFailed    = "SCAN_FAILED"
	ErrResolveFailed = "RESOLVE_FAILED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnUnfulfilledRef    = "UNFULFILLED_REF"
	WarnVanillaRef        = "VANILLA_REF"
	WarnUnprocessable     = "UNPROCESSABLE_CONTENT"
	WarnIndexRebuilt      = "INDEX_REBUILT"
	WarnIndexUpdateFailed = "INDEX_UPDATE_FAILED"
)
