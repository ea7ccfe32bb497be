// Package minio produces remotefs entries from a MinIO or S3-compatible bucket.
package minio

import (
	"log/slog"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/remotefs/errors"
)

// Config holds MinIO producer configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Prefix is an optional key prefix the filesystem root maps to
	Prefix string

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored
	Client *minio.Client

	// Logger receives operation diagnostics. Nil discards them.
	Logger *slog.Logger
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return invalidConfig("bucket is required")
	}

	// If Client is provided, we're done (other fields are ignored)
	if c.Client != nil {
		return nil
	}

	if c.Endpoint == "" {
		return invalidConfig("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return invalidConfig("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return invalidConfig("secret key is required when client is not provided")
	}

	return nil
}

func invalidConfig(msg string) error {
	return errors.New(errors.CodeInvalidConfig, msg)
}
