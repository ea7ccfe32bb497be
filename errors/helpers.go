package errors

import (
	stderrors "errors"
)

// Is wraps the standard library errors.Is so callers need one import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode returns the code of the outermost Error in err's chain, or
// CodeUnknown when there is none.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // path vanished between listing and stat
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var e Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return CodeUnknown
}

// GetClassification returns the classification of the outermost Error in
// err's chain. Plain errors and nil are permanent so they never trigger a retry.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var e Error
	if stderrors.As(err, &e) {
		return e.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable reports whether err is classified as retryable.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
