// Package errors provides the structured error type shared by the entry model
// and every filesystem producer in this module.
//
// Errors carry a code for categorization, a retry classification, optional
// context metadata, and an optional cause. They work with the standard
// library's errors.Is, errors.As, and errors.Unwrap.
//
// # Creating errors
//
//	err := errors.New(errors.CodeNotFound, "entry not found")
//	err := errors.Newf(errors.CodeInvalidInput, "path %q is not absolute", p)
//
// # Wrapping producer failures
//
//	info, err := client.StatObject(ctx, bucket, key, opts)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeNetwork, "stat object")
//	}
//
// # Context
//
//	err = errors.WithContext(err, "path", "/home/user/link")
//
// # Retry decisions
//
// Transport failures (network, timeout, unavailable) are retryable by default.
// Everything a retry cannot fix, such as a missing path or a symlink loop, is
// permanent:
//
//	if errors.IsRetryable(err) {
//	    // back off and list again
//	}
//
// # Programmer errors
//
// CodeVariantMismatch is never returned. It is the payload of the panic raised
// when a caller extracts the wrong variant from an entry.
package errors
