package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ekremsevim/studiohub/internal/pkg/logger"
)

// Upload subdirectories per resource kind.
const (
	ProfilePicturesDir = "profile_pics"
	CVFilesDir         = "cv_files"
	StudioCoversDir    = "studio_covers"
	LessonCoversDir    = "lesson_covers"
	LessonVideosDir    = "lesson_videos"
	LessonFilesDir     = "lesson_files"
	PostFilesDir       = "post_files"
)

// LocalStorage saves files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // base URL prepended to returned paths, optional
}

// NewLocalStorage creates a new LocalStorage rooted at basePath. If baseURL is
// non-empty it is prepended to the paths returned for saved files.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath saves a file to a subdirectory of the storage root. The
// stored filename is a fresh UUID so concurrent uploads never collide.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := uniqueFilename
	if subPath != "" {
		relPath = subPath + "/" + uniqueFilename
	}

	var accessiblePath string
	if ls.baseURL != "" {
		accessiblePath = strings.TrimRight(ls.baseURL, "/") + "/" + relPath
	} else {
		accessiblePath = "uploads/" + relPath
	}

	logger.Debug().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("File saved")
	return accessiblePath, nil
}

// SaveFile saves an uploaded file into the storage root.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// DeleteFile removes a stored file given the path saved in the database.
// Returns nil when the file is already gone so deletes stay idempotent.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	physicalPath := ls.GetFullPath(filePath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetFullPath resolves a stored file URL or relative path to the filesystem
// path under the storage root, keeping the upload subdirectory intact.
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	rel := fileURL
	if ls.baseURL != "" && strings.HasPrefix(rel, ls.baseURL) {
		rel = strings.TrimPrefix(rel, ls.baseURL)
	}
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimPrefix(rel, "uploads/")

	rel = filepath.Clean(rel)
	if rel == "" || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return ""
	}

	return filepath.Join(ls.basePath, rel)
}
