package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	ItemsFolder    = "items"
	PackagesFolder = "packages"
)

// ImageUploader hosts catalog images on Cloudinary. With no Cloudinary client
// configured it leaves image references untouched.
type ImageUploader struct {
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

func NewImageUploader(cld *cloudinary.Cloudinary, logger *slog.Logger) *ImageUploader {
	return &ImageUploader{cld: cld, logger: logger}
}

// IsHostedURL reports whether an image reference is already a web URL.
func IsHostedURL(ref string) bool {
	ref = strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// UploadImages returns the list with every non-URL reference (local path or
// data URI) replaced by its hosted URL. Empty references are dropped.
func (u *ImageUploader) UploadImages(ctx context.Context, images []string, folder string) ([]string, error) {
	urls := make([]string, 0, len(images))
	for i, ref := range images {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if IsHostedURL(ref) || u == nil || u.cld == nil {
			urls = append(urls, ref)
			continue
		}

		uploadResult, err := u.cld.Upload.Upload(ctx, ref, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"event-rentals"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %d: %v", i, err)
		}
		if u.logger != nil {
			u.logger.Debug("Image uploaded", "folder", folder, "public_id", uploadResult.PublicID)
		}
		urls = append(urls, uploadResult.SecureURL)
	}
	return urls, nil
}
