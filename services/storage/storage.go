package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"karigar/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// NewCloudinaryStorageService builds a storage service from the configured
// Cloudinary URL.
func NewCloudinaryStorageService() (StorageService, error) {
	if config.AppConfig.CloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL is not configured")
	}
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld}, nil
}

// UploadImage uploads an image into the given folder and returns its
// permanent delivery URL.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no URL")
	}
	return result.SecureURL, nil
}

// DeleteImage removes an uploaded image by its public ID.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
