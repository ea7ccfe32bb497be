package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps err with a code and message. The cause stays reachable through
// errors.Is and errors.As.
//
// When err already carries an Error, its classification is kept so a
// retryable transport failure stays retryable after wrapping. Returns nil if
// err is nil.
func Wrap(err error, code ErrorCode, message string) Error {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches a copy of ctx in one step.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeNetwork, "list objects", map[string]interface{}{
//	    "bucket": bucket,
//	    "prefix": prefix,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var inner Error
	if errors.As(err, &inner) {
		classification = inner.Classification()
	}

	return &fsError{
		code:           code,
		classification: classification,
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}
