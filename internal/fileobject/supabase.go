package fileobject

import (
	"context"
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage implements the FileObject interface for Supabase storage.
// It backs resume uploads in production; tests and local runs use
// FileSystemStorage instead.
type SupabaseStorage struct {
	client *storage_go.Client
}

func NewSupabaseStorage(supabaseURL, supabaseKey string) *SupabaseStorage {
	return &SupabaseStorage{
		client: storage_go.NewClient(supabaseURL, supabaseKey, nil),
	}
}

// UploadFile uploads a file to the named bucket and returns its public URL.
func (s *SupabaseStorage) UploadFile(ctx context.Context, bucketName, fileName string, file io.Reader) (string, error) {
	if _, err := s.client.UploadFile(bucketName, fileName, file); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetFileURL(bucketName, fileName), nil
}

func (s *SupabaseStorage) GetFileURL(bucketName, fileName string) string {
	return s.client.GetPublicUrl(bucketName, fileName).SignedURL
}

// DeleteFile removes a file from the named bucket.
func (s *SupabaseStorage) DeleteFile(ctx context.Context, bucketName, fileName string) error {
	if _, err := s.client.RemoveFile(bucketName, []string{fileName}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
