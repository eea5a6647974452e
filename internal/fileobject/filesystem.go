package fileobject

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystemStorage stores files under a local base directory, one
// subdirectory per bucket.
type FileSystemStorage struct {
	BasePath string
	BaseURL  string
}

func (fs *FileSystemStorage) UploadFile(ctx context.Context, bucketName, fileName string, file io.Reader) (string, error) {
	bucketPath := filepath.Join(fs.BasePath, bucketName)
	if err := os.MkdirAll(bucketPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create bucket directory: %w", err)
	}

	out, err := os.Create(filepath.Join(bucketPath, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	return fs.GetFileURL(bucketName, fileName), nil
}

func (fs *FileSystemStorage) GetFileURL(bucketName, fileName string) string {
	return fmt.Sprintf("%s/%s/%s", fs.BaseURL, bucketName, fileName)
}
