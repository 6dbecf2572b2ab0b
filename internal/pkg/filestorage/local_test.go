package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, baseURL string) *LocalStorage {
	t.Helper()

	storage, err := NewLocalStorage(t.TempDir(), baseURL)
	require.NoError(t, err)
	return storage
}

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSaveFileWithPath(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8080/uploads")

	header := newFileHeader(t, "syllabus.pdf", "course outline")
	savedPath, err := storage.SaveFileWithPath(header, LessonFilesDir)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(savedPath, "http://localhost:8080/uploads/"+LessonFilesDir+"/"))
	assert.True(t, strings.HasSuffix(savedPath, ".pdf"))

	data, err := os.ReadFile(storage.GetFullPath(savedPath))
	require.NoError(t, err)
	assert.Equal(t, "course outline", string(data))
}

func TestSaveFileWithPath_NilHeader(t *testing.T) {
	storage := newTestStorage(t, "")

	savedPath, err := storage.SaveFileWithPath(nil, ProfilePicturesDir)
	require.NoError(t, err)
	assert.Empty(t, savedPath)
}

func TestSaveFile_NoBaseURL(t *testing.T) {
	storage := newTestStorage(t, "")

	header := newFileHeader(t, "avatar.png", "pixels")
	savedPath, err := storage.SaveFile(header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(savedPath, "uploads/"))
	assert.True(t, strings.HasSuffix(savedPath, ".png"))
}

func TestDeleteFile(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8080/uploads")

	header := newFileHeader(t, "cover.jpg", "cover bytes")
	savedPath, err := storage.SaveFileWithPath(header, StudioCoversDir)
	require.NoError(t, err)

	physical := storage.GetFullPath(savedPath)
	require.FileExists(t, physical)

	require.NoError(t, storage.DeleteFile(savedPath))
	assert.NoFileExists(t, physical)

	// deleting again is a no-op
	assert.NoError(t, storage.DeleteFile(savedPath))
}

func TestDeleteFile_EmptyPath(t *testing.T) {
	storage := newTestStorage(t, "")
	assert.NoError(t, storage.DeleteFile(""))
}

func TestGetFullPath(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8080/uploads")

	tests := []struct {
		name    string
		fileURL string
		wantRel string
	}{
		{"full URL", "http://localhost:8080/uploads/cv_files/doc.pdf", filepath.Join(CVFilesDir, "doc.pdf")},
		{"relative with uploads prefix", "uploads/post_files/img.png", filepath.Join(PostFilesDir, "img.png")},
		{"bare relative", "lesson_videos/intro.mp4", filepath.Join(LessonVideosDir, "intro.mp4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storage.GetFullPath(tt.fileURL)
			assert.Equal(t, filepath.Join(storage.basePath, tt.wantRel), got)
		})
	}
}

func TestGetFullPath_RejectsTraversal(t *testing.T) {
	storage := newTestStorage(t, "")

	assert.Empty(t, storage.GetFullPath("../etc/passwd"))
	assert.Empty(t, storage.GetFullPath("uploads/../../etc/passwd"))
	assert.Empty(t, storage.GetFullPath(""))
}
