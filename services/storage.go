package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const reportFolder = "taxpal-reports"

// StorageService stores rendered report files in Cloudinary as raw
// resources.
type StorageService struct {
	cld *cloudinary.Cloudinary
}

func NewStorageService() (*StorageService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &StorageService{cld: cld}, nil
}

// Upload stores a file buffer under a deterministic name and returns its
// HTTPS URL.
func (s *StorageService) Upload(ctx context.Context, data []byte, fileName string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     fileName,
		Folder:       reportFolder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload failed: no URL returned")
	}
	return result.SecureURL, nil
}

// Delete removes a stored file. A file already absent upstream counts as
// deleted.
func (s *StorageService) Delete(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("destroy failed: %s", result.Result)
	}
	return nil
}

// IsValidStorageURL checks that a URL points at a Cloudinary upload.
func IsValidStorageURL(url string) bool {
	return strings.Contains(url, "cloudinary.com") && strings.Contains(url, "/upload/")
}

// ExtractPublicID recovers the public id (including folder and extension)
// from a Cloudinary delivery URL. The URL has the shape
// .../upload/v{version}/{folder}/{file}.{ext}.
func ExtractPublicID(url string) string {
	parts := strings.Split(url, "/")
	uploadIdx := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return ""
	}
	return strings.Join(parts[uploadIdx+2:], "/")
}
