package errors

// ErrorCode identifies an error condition.
// Codes are strings so they read well in logs and serialize naturally.
type ErrorCode string

const (
	// Lookup errors.

	// CodeNotFound indicates the requested path does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeForbidden indicates the backend denied access to the path.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates a malformed path or argument.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a producer was configured incorrectly.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeUnsupported indicates the backend cannot perform the operation,
	// for example symlink resolution on object storage.
	CodeUnsupported ErrorCode = "UNSUPPORTED"

	// Entry model errors.

	// CodeSymlinkLoop indicates a symlink chain that cycles or exceeds the
	// maximum number of hops.
	CodeSymlinkLoop ErrorCode = "SYMLINK_LOOP"

	// CodeVariantMismatch indicates an entry was narrowed to the wrong variant.
	// It only ever appears as a panic value.
	CodeVariantMismatch ErrorCode = "VARIANT_MISMATCH"

	// Transport errors.

	// CodeNetwork indicates the remote backend could not be reached.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its deadline.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeUnavailable indicates the backend is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// System errors.

	// CodeInternal indicates a bug or an unexpected backend response.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
