// Package errs translates MinIO errors for the minio producer.
package errs

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/remotefs/errors"
)

// Translate converts MinIO errors so core.PathError classifies them.
// Missing keys and buckets match fs.ErrNotExist, denied requests match
// fs.ErrPermission, and every other failure becomes a retryable
// CodeNetwork error. Context errors pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	errResp := minio.ToErrorResponse(err)

	switch errResp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	case "AccessDenied":
		return fmt.Errorf("%w: %w", fs.ErrPermission, err)
	}

	return errors.WrapWithContext(err, errors.CodeNetwork, "minio request", map[string]interface{}{
		"status": errResp.StatusCode,
		"code":   errResp.Code,
	})
}

// IsNotFound reports whether err is a missing key or bucket response.
func IsNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}
