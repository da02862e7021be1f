package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/eee-uofk/coursehub/internal/pkg/logger"
)

// LocalStorage saves files to the local filesystem; they are served under baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
	now      func() time.Time
}

// NewLocalStorage creates the base directory if needed.
// baseURL is optional; without it returned URLs are "/uploads/<key>".
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}, nil
}

// Save writes the upload to <basePath>/<folder>/<unix-ms>-<name>
func (ls *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := ObjectName(folder, fileHeader.Filename, ls.now())
	dstPath := ls.physicalPath(key)

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	stored := &StoredFile{
		Path:         key,
		URL:          ls.PublicURL(key),
		Size:         written,
		ContentType:  detectContentType(fileHeader),
		OriginalName: fileHeader.Filename,
	}
	logger.Info().Str("filename", fileHeader.Filename).Str("key", key).Int64("size", written).Msg("File saved to local storage")
	return stored, nil
}

// Delete removes the file stored under key; missing files are ignored.
func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}

	physicalPath := ls.physicalPath(strings.TrimPrefix(key, "/uploads/"))
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted from local storage")
	return nil
}

// PublicURL returns the URL the static handler serves key from
func (ls *LocalStorage) PublicURL(key string) string {
	if ls.baseURL == "" {
		return "/uploads/" + key
	}
	return ls.baseURL + "/" + key
}

// physicalPath resolves key inside basePath; traversal segments are cleaned away.
func (ls *LocalStorage) physicalPath(key string) string {
	return filepath.Join(ls.basePath, filepath.FromSlash(path.Clean("/"+key)))
}
