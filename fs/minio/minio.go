package minio

import (
	"context"
	"path"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
	"github.com/jmgilman/go/remotefs/fs/minio/internal/errs"
	"github.com/jmgilman/go/remotefs/fs/minio/internal/pathutil"
	"github.com/jmgilman/go/remotefs/internal/logging"
)

// MinioFS produces entries from MinIO/S3-compatible storage.
// Directories are virtual: a path is a directory when some key lives below it.
//
//nolint:revive // MinioFS name is intentional to match naming pattern across fs implementations
type MinioFS struct {
	client *minio.Client
	bucket string
	prefix string // Optional prefix for all keys
	log    *logging.Logger
}

// NewMinIO creates a MinIO-backed producer.
// Returns error if configuration is invalid or the client cannot be created.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "create minio client", map[string]interface{}{
				"endpoint": cfg.Endpoint,
			})
		}
	}

	return &MinioFS{
		client: client,
		bucket: cfg.Bucket,
		prefix: pathutil.NormalizePrefix(cfg.Prefix),
		log:    logging.New(cfg.Logger).WithBackend(core.BackendTypeRemote.String()).With("bucket", cfg.Bucket),
	}, nil
}

// joinPath maps a filesystem path to its object key.
func (m *MinioFS) joinPath(name string) string {
	return pathutil.JoinPath(m.prefix, name)
}

// Type returns core.BackendTypeRemote.
func (m *MinioFS) Type() core.BackendType {
	return core.BackendTypeRemote
}

// Stat returns the entry at p. An object at the key is a file; otherwise p is
// a directory if any key lives below it. The root is always a directory.
func (m *MinioFS) Stat(ctx context.Context, p string) (e entry.Entry, err error) {
	p = core.Clean(p)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, m.log, logging.OpStat, p, start, err)
	}()

	if err := ctx.Err(); err != nil {
		return entry.Entry{}, core.PathError("stat", p, err)
	}

	key := m.joinPath(p)
	if p == "/" {
		return dirEntry(p, time.Time{}), nil
	}

	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return objectToEntry(p, info), nil
	}
	if !errs.IsNotFound(err) {
		return entry.Entry{}, core.PathError("stat", p, errs.Translate(err))
	}

	isDir, modified, lerr := m.probeDir(ctx, key)
	if lerr != nil {
		return entry.Entry{}, core.PathError("stat", p, errs.Translate(lerr))
	}
	if !isDir {
		return entry.Entry{}, core.PathError("stat", p, errs.Translate(err))
	}
	return dirEntry(p, modified), nil
}

// probeDir reports whether any key lives below key. When a directory marker
// object exists its modification time is returned.
func (m *MinioFS) probeDir(ctx context.Context, key string) (bool, time.Time, error) {
	listPrefix := pathutil.DirPrefix(key)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:  listPrefix,
		MaxKeys: 1,
	}) {
		if obj.Err != nil {
			return false, time.Time{}, obj.Err
		}
		if obj.Key == listPrefix {
			return true, obj.LastModified, nil
		}
		return true, time.Time{}, nil
	}
	return false, time.Time{}, nil
}

// List returns the entries directly below dir, sorted by name. Common
// prefixes become directories.
func (m *MinioFS) List(ctx context.Context, dir string) (out []entry.Entry, err error) {
	dir = core.Clean(dir)
	start := time.Now()
	defer func() {
		logging.LogOperation(ctx, m.log, logging.OpList, dir, start, err)
	}()

	d, err := m.Stat(ctx, dir)
	if err != nil {
		return nil, err
	}
	if !d.IsDir() {
		return nil, core.PathError("list", dir, core.ErrNotDir)
	}

	listPrefix := pathutil.DirPrefix(m.joinPath(dir))
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:       listPrefix,
		Recursive:    false,
		WithMetadata: true,
	}) {
		if obj.Err != nil {
			return nil, core.PathError("list", dir, errs.Translate(obj.Err))
		}

		name, isDir := pathutil.ChildName(listPrefix, obj.Key)
		if name == "" {
			continue
		}

		p := path.Join(dir, name)
		if isDir {
			out = append(out, dirEntry(p, obj.LastModified))
			continue
		}
		out = append(out, objectToEntry(p, obj))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// objectToEntry builds a file entry from object info. POSIX fields are set
// only when the object carries mc attributes.
func objectToEntry(p string, info minio.ObjectInfo) entry.Entry {
	attrs := parseAttrs(findAttrs(info.Metadata, info.UserMetadata))

	modified := info.LastModified
	if !attrs.mtime.IsZero() {
		modified = attrs.mtime
	}
	accessed := modified
	if !attrs.atime.IsZero() {
		accessed = attrs.atime
	}

	meta := entry.Metadata{
		Name:           core.Name(p),
		AbsPath:        p,
		LastChangeTime: modified,
		LastAccessTime: accessed,
		CreationTime:   info.LastModified,
		User:           attrs.uid,
		Group:          attrs.gid,
	}
	if attrs.mode != nil {
		meta.Pex = entry.Ptr(entry.PermissionsFromMode(*attrs.mode))
	}

	return entry.NewFile(entry.File{
		Metadata: meta,
		Size:     uint64(max(info.Size, 0)),
		Type:     core.FileType(meta.Name),
	})
}

func dirEntry(p string, modified time.Time) entry.Entry {
	return entry.NewDirectory(entry.Directory{Metadata: entry.Metadata{
		Name:           core.Name(p),
		AbsPath:        p,
		LastChangeTime: modified,
		LastAccessTime: modified,
		CreationTime:   modified,
	}})
}

var _ core.Backend = (*MinioFS)(nil)
