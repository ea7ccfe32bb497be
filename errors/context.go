package errors

import "errors"

// WithContext returns a copy of err with key set in its context.
// Existing keys are preserved unless overwritten.
//
// A plain error is first converted to an Error with CodeUnknown that wraps it.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", e.AbsPath())
func WithContext(err error, key string, value interface{}) Error {
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap is WithContext for several keys at once.
func WithContextMap(err error, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	var base Error
	if !errors.As(err, &base) {
		base = &fsError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	merged := copyContext(base.Context())
	if merged == nil {
		merged = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &fsError{
		code:           base.Code(),
		classification: base.Classification(),
		message:        base.Message(),
		context:        merged,
		cause:          base.Unwrap(),
	}
}
