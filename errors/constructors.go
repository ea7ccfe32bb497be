package errors

import "fmt"

// New creates an Error with the default classification for code.
//
// Example:
//
//	err := errors.New(errors.CodeNotFound, "entry not found")
func New(code ErrorCode, message string) Error {
	return &fsError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf is New with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidInput, "path %q is not absolute", p)
func Newf(code ErrorCode, format string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(format, args...))
}
