package storage

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService uploads and removes user-submitted images.
type StorageService interface {
	UploadImage(ctx context.Context, file multipart.File, folder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}
