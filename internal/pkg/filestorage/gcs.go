package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// GCSStorage stores uploads in a Google Cloud Storage bucket
type GCSStorage struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

// GCSConfig configures the bucket backend
type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	// PublicBaseURL overrides https://storage.googleapis.com/<bucket>, e.g. for a CDN
	PublicBaseURL string
}

// NewGCSStorage creates a storage client. Without a credentials file the
// application default credentials are used.
func NewGCSStorage(ctx context.Context, cfg GCSConfig) (*GCSStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	logger.Info().Str("bucket", cfg.Bucket).Msg("GCS storage initialised")
	return &GCSStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		now:           time.Now,
	}, nil
}

// Save streams the upload to <folder>/<unix-ms>-<name> in the bucket
func (g *GCSStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := ObjectName(folder, fileHeader.Filename, g.now())
	contentType := detectContentType(fileHeader)

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	written, err := io.Copy(w, src)
	if err != nil {
		_ = w.Close()
		logger.Error().Err(err).Str("key", key).Msg("Failed to upload object")
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to finalize object upload")
		return nil, fmt.Errorf("failed to finalize object upload: %w", err)
	}

	logger.Info().Str("bucket", g.bucket).Str("key", key).Int64("size", written).Msg("File uploaded to GCS")
	return &StoredFile{
		Path:         key,
		URL:          g.PublicURL(key),
		Size:         written,
		ContentType:  contentType,
		OriginalName: fileHeader.Filename,
	}, nil
}

// Delete removes the object; a missing object is not an error
func (g *GCSStorage) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return nil
	}

	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL returns the public URL of key
func (g *GCSStorage) PublicURL(key string) string {
	return PublicObjectURL(g.publicBaseURL, g.bucket, key)
}

// Close releases the client
func (g *GCSStorage) Close() error {
	return g.client.Close()
}

// PublicObjectURL builds the public URL of an object, preferring baseURL when set.
func PublicObjectURL(baseURL, bucket, key string) string {
	key = strings.TrimLeft(key, "/")
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/" + key
	}
	return "https://storage.googleapis.com/" + bucket + "/" + key
}
