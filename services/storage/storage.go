// File: services/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService uploads and removes work order photos.
type StorageService interface {
	// Upload stores the file under destFolder and returns its permanent
	// public ID.
	Upload(ctx context.Context, file multipart.File, destFolder string) (string, error)
	Delete(ctx context.Context, publicID string) error
	// URL returns the public delivery URL for a stored asset.
	URL(publicID string) string
}

// CloudinaryStorage implements StorageService against Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryStorage constructs a Cloudinary-backed StorageService.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, cloudName: cloudName}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file multipart.File, destFolder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("upload returned no public ID")
	}
	return result.PublicID, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", publicID, err)
	}
	return nil
}

func (s *CloudinaryStorage) URL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cloudName, publicID)
}
