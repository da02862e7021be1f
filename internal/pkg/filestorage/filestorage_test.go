package filestorage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, header, err := req.FormFile(field)
	require.NoError(t, err)
	return header
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lecture 1 (final).pdf", "lecture_1__final_.pdf"},
		{"Résumé.pdf", "Resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\notes.docx`, "notes.docx"},
		{"محاضرة.pdf", "______.pdf"},
		{".env", "env"},
		{"", "file"},
		{"sheet-3.v2.PDF", "sheet-3.v2.PDF"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	assert.Equal(t, "resources/1718000000123-week_1.pdf", ObjectName("/resources/", "week 1.pdf", now))
	assert.Equal(t, "1718000000123-a.png", ObjectName("", "a.png", now))
}

func TestCheckSize(t *testing.T) {
	header := newFileHeader(t, "file", "big.bin", make([]byte, 2048))
	assert.NoError(t, CheckSize(header, 4096))
	assert.NoError(t, CheckSize(header, 0))
	assert.ErrorIs(t, CheckSize(header, 1024), ErrFileTooLarge)
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	storage.now = func() time.Time { return time.UnixMilli(1700000000000) }

	header := newFileHeader(t, "file", "Week 1 slides.pdf", []byte("%PDF-1.4"))
	stored, err := storage.Save(context.Background(), header, "resources")
	require.NoError(t, err)

	assert.Equal(t, "resources/1700000000000-Week_1_slides.pdf", stored.Path)
	assert.Equal(t, "http://localhost:8080/uploads/resources/1700000000000-Week_1_slides.pdf", stored.URL)
	assert.Equal(t, int64(8), stored.Size)
	assert.Equal(t, "Week 1 slides.pdf", stored.OriginalName)

	content, err := os.ReadFile(filepath.Join(base, "resources", "1700000000000-Week_1_slides.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	require.NoError(t, storage.Delete(context.Background(), stored.Path))
	_, err = os.Stat(filepath.Join(base, stored.Path))
	assert.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	assert.NoError(t, storage.Delete(context.Background(), stored.Path))
	assert.NoError(t, storage.Delete(context.Background(), ""))
}

func TestLocalStorage_DeleteStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(filepath.Dir(base), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	t.Cleanup(func() { _ = os.Remove(outside) })

	storage, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(context.Background(), "../keep.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/a/b.pdf", storage.PublicURL("a/b.pdf"))
}

func TestPublicObjectURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/course-files/resources/1-a.pdf",
		PublicObjectURL("", "course-files", "/resources/1-a.pdf"))
	assert.Equal(t, "https://cdn.example.com/resources/1-a.pdf",
		PublicObjectURL("https://cdn.example.com/", "course-files", "resources/1-a.pdf"))
}
