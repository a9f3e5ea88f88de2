// File: internal/filestorage/service_test.go
package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return svc
}

// newTestFileHeader builds a parseable multipart.FileHeader the same way
// Gin would receive one.
func newTestFileHeader(t *testing.T, fieldname, filename, content, contentType string) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldname, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File[fieldname]
	require.NotEmpty(t, files)
	return files[0]
}

func TestService_SaveUploadedFile_Success(t *testing.T) {
	svc := setupService(t)
	fileHeader := newTestFileHeader(t, "files", "photo.jpg", "fake-jpeg-bytes", "image/jpeg")

	relativePath, err := svc.SaveUploadedFile(fileHeader, "listings")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relativePath, "listings/"))
	assert.True(t, strings.HasSuffix(relativePath, ".jpg"))

	stored, err := os.ReadFile(filepath.Join(svc.StoragePath(), relativePath))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(stored))
}

func TestService_SaveUploadedFile_InfersExtensionFromContentType(t *testing.T) {
	svc := setupService(t)
	fileHeader := newTestFileHeader(t, "files", "no-extension", "fake-png-bytes", "image/png")

	relativePath, err := svc.SaveUploadedFile(fileHeader, "listings")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relativePath, ".png"))
}

func TestService_SaveUploadedFile_RejectsUnsupportedType(t *testing.T) {
	svc := setupService(t)
	fileHeader := newTestFileHeader(t, "files", "script.exe", "MZ", "application/octet-stream")

	_, err := svc.SaveUploadedFile(fileHeader, "listings")
	assert.Error(t, err)
}

func TestService_DeleteFile(t *testing.T) {
	svc := setupService(t)
	fileHeader := newTestFileHeader(t, "files", "photo.jpg", "bytes", "image/jpeg")

	relativePath, err := svc.SaveUploadedFile(fileHeader, "listings")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(relativePath))
	_, err = os.Stat(filepath.Join(svc.StoragePath(), relativePath))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing file is not an error.
	assert.NoError(t, svc.DeleteFile(relativePath))
}

func TestService_DeleteFile_RejectsPathTraversal(t *testing.T) {
	svc := setupService(t)
	assert.Error(t, svc.DeleteFile("../outside.txt"))
}

func TestNewService_RequiresStoragePath(t *testing.T) {
	_, err := NewService("", zap.NewNop())
	assert.Error(t, err)
}
