package filestorage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit
var ErrFileTooLarge = errors.New("file exceeds the maximum upload size")

// StoredFile describes an object written to storage
type StoredFile struct {
	// Path is the storage key, relative to the storage root
	Path         string
	URL          string
	Size         int64
	ContentType  string
	OriginalName string
}

// FileStorage stores uploaded files and hands back a public URL
type FileStorage interface {
	// Save writes the upload under folder and returns where it was stored
	Save(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*StoredFile, error)

	// Delete removes the object at path; a missing object is not an error
	Delete(ctx context.Context, path string) error
}

// CheckSize rejects uploads larger than maxBytes. A non-positive limit disables the check.
func CheckSize(fileHeader *multipart.FileHeader, maxBytes int64) error {
	if fileHeader == nil || maxBytes <= 0 {
		return nil
	}
	if fileHeader.Size > maxBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, fileHeader.Filename, fileHeader.Size, maxBytes)
	}
	return nil
}

func detectContentType(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(filepath.Ext(fileHeader.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
