// Package upload publishes built output to S3. A deployment step runs
// the compiler, then syncs the dist directory to a bucket so a CDN or
// static host can serve it.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client is the slice of the S3 API the uploader uses. *s3.Client
// satisfies it.
type Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var ErrEmptyKey = errors.New("upload: empty object key")

// Uploader publishes artifacts under a bucket and key prefix.
type Uploader struct {
	client Client
	bucket string
	prefix string
	logger *slog.Logger

	// CacheControl is applied to every uploaded object when non-empty.
	CacheControl string
}

func New(client Client, bucket, prefix string) *Uploader {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: slog.Default(),
	}
}

// WithLogger replaces the default logger.
func (u *Uploader) WithLogger(l *slog.Logger) *Uploader {
	u.logger = l
	return u
}

// Put uploads one object. The key is relative to the uploader's prefix.
func (u *Uploader) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if key == "" {
		return ErrEmptyKey
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(u.prefix + key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if u.CacheControl != "" {
		in.CacheControl = aws.String(u.CacheControl)
	}

	if _, err := u.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	u.logger.Debug("uploaded", "key", u.prefix+key, "type", contentType)
	return nil
}

// PutFile uploads a single file, detecting its content type from the
// extension and falling back to sniffing the first bytes.
func (u *Uploader) PutFile(ctx context.Context, key, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return u.Put(ctx, key, detectType(file, data), bytes.NewReader(data))
}

// SyncDir uploads every regular file under dir, keyed by its
// slash-separated path relative to dir. Returns the number of objects
// uploaded.
func (u *Uploader) SyncDir(ctx context.Context, dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if err := u.PutFile(ctx, filepath.ToSlash(rel), p); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("sync %s: %w", dir, err)
	}
	u.logger.Info("sync complete", "dir", dir, "objects", count)
	return count, nil
}

// Prune deletes objects under the prefix whose last modification is
// older than maxAge. Returns the number of objects deleted.
func (u *Uploader) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	deleted := 0

	var token *string
	for {
		page, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(u.bucket),
			Prefix:            aws.String(u.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return deleted, fmt.Errorf("prune: %w", err)
		}

		for _, obj := range page.Contents {
			if !stale(obj, cutoff) {
				continue
			}
			_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(u.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				return deleted, fmt.Errorf("prune %s: %w", aws.ToString(obj.Key), err)
			}
			deleted++
		}

		if page.NextContinuationToken == nil {
			break
		}
		token = page.NextContinuationToken
	}

	if deleted > 0 {
		u.logger.Info("pruned stale objects", "count", deleted)
	}
	return deleted, nil
}

func stale(obj types.Object, cutoff time.Time) bool {
	return obj.Key != nil && obj.LastModified != nil && obj.LastModified.Before(cutoff)
}

func detectType(file string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(file)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
