package errors

// Error is the structured error returned throughout the module.
//
// Values are immutable: WithContext and the Wrap functions return new errors
// and leave their input untouched.
type Error interface {
	error

	// Code returns the error code identifying the failure.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the message without the code prefix or cause.
	Message() string

	// Context returns a copy of the attached metadata, or nil if none.
	Context() map[string]interface{}

	// Unwrap returns the cause, or nil.
	Unwrap() error
}

// fsError is the only implementation of Error.
type fsError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error formats the error as "[CODE] message" with ": cause" appended when
// a cause is present.
func (e *fsError) Error() string {
	if e.cause != nil {
		return "[" + string(e.code) + "] " + e.message + ": " + e.cause.Error()
	}
	return "[" + string(e.code) + "] " + e.message
}

// Code returns the error code.
func (e *fsError) Code() ErrorCode {
	return e.code
}

// Classification returns the error classification.
func (e *fsError) Classification() ErrorClassification {
	return e.classification
}

// Message returns the error message.
func (e *fsError) Message() string {
	return e.message
}

// Context returns a copy of the context map.
func (e *fsError) Context() map[string]interface{} {
	return copyContext(e.context)
}

// Unwrap returns the wrapped cause.
func (e *fsError) Unwrap() error {
	return e.cause
}

func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
