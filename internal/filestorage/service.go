// File: internal/filestorage/service.go
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service stores uploaded files on local disk under a base directory.
type Service struct {
	storagePath string
	logger      *zap.Logger
}

// NewService creates a file storage service rooted at storagePath.
func NewService(storagePath string, logger *zap.Logger) (*Service, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("File storage initialized", zap.String("storagePath", storagePath))
	return &Service{storagePath: storagePath, logger: logger.Named("filestorage")}, nil
}

// extensionFor resolves the stored file extension from the original
// filename, falling back to the declared content type.
func extensionFor(fileHeader *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(filepath.Base(fileHeader.Filename)))
	switch extension {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return extension, nil
	case "":
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			return ".jpg", nil
		case strings.HasPrefix(contentType, "image/png"):
			return ".png", nil
		case strings.HasPrefix(contentType, "image/gif"):
			return ".gif", nil
		case strings.HasPrefix(contentType, "image/webp"):
			return ".webp", nil
		}
		return "", fmt.Errorf("unsupported file type: %s", contentType)
	default:
		return "", fmt.Errorf("unsupported file extension: %s", extension)
	}
}

// SaveUploadedFile stores a multipart file under a sub-directory of the
// storage path with a generated unique name. It returns the relative
// path of the stored file, e.g. "listings/uuid.jpg".
func (s *Service) SaveUploadedFile(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	extension, err := extensionFor(fileHeader)
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	cleanSubDir := filepath.Clean(subDir)
	if strings.HasPrefix(cleanSubDir, "..") {
		return "", fmt.Errorf("invalid subDir path")
	}

	destinationDir := filepath.Join(s.storagePath, cleanSubDir)
	if err := os.MkdirAll(destinationDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}

	uniqueFilename := uuid.New().String() + extension
	destinationPath := filepath.Join(destinationDir, uniqueFilename)

	dst, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	relativePath := filepath.ToSlash(filepath.Join(cleanSubDir, uniqueFilename))
	s.logger.Debug("File stored", zap.String("path", relativePath))
	return relativePath, nil
}

// DeleteFile removes a stored file by its relative path. Deleting a
// missing file is not an error.
func (s *Service) DeleteFile(relativePath string) error {
	cleanPath := filepath.Clean(relativePath)
	if strings.HasPrefix(cleanPath, "..") || filepath.IsAbs(cleanPath) {
		return fmt.Errorf("invalid file path")
	}
	fullPath := filepath.Join(s.storagePath, cleanPath)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file %s: %w", relativePath, err)
	}
	return nil
}

// StoragePath returns the base directory files are stored under.
func (s *Service) StoragePath() string {
	return s.storagePath
}
