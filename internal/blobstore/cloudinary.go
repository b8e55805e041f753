package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

const (
	// Downscale anything larger than 500x500, keep the aspect ratio.
	limitTransformation = "c_limit,h_500,w_500"
	destroyResultOK     = "ok"
	destroyResultAbsent = "not found"
)

var allowedFormats = api.CldAPIArray{"jpg", "png", "jpeg"}

// CloudinaryStore stores images on Cloudinary and implements domain.ImageStore.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
	log *logrus.Logger
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string, logger *logrus.Logger) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("could not configure cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld, log: logger}, nil
}

func uploadParams(folder domain.ImageFolder) uploader.UploadParams {
	return uploader.UploadParams{
		Folder:         string(folder),
		AllowedFormats: allowedFormats,
		Transformation: limitTransformation,
	}
}

func (s *CloudinaryStore) Upload(ctx context.Context, folder domain.ImageFolder, file *domain.ImageUpload) (*domain.StoredImage, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, errors.New("image file is empty")
	}

	s.log.Debugf("BlobStore: Uploading %s (%d bytes) to folder %s", file.Filename, len(file.Data), folder)
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(file.Data), uploadParams(folder))
	if err != nil {
		s.log.Errorf("BlobStore: Upload of %s to %s failed: %v", file.Filename, folder, err)
		return nil, fmt.Errorf("could not upload image: %w", err)
	}
	if res.Error.Message != "" {
		s.log.Errorf("BlobStore: Upload of %s to %s rejected: %s", file.Filename, folder, res.Error.Message)
		return nil, fmt.Errorf("could not upload image: %s", res.Error.Message)
	}

	s.log.Infof("BlobStore: Uploaded %s as %s", file.Filename, res.PublicID)
	return &domain.StoredImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Delete destroys one image by its Cloudinary public id. Deleting an image
// that no longer exists is not an error.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return nil
	}

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		s.log.Errorf("BlobStore: Destroy of %s failed: %v", publicID, err)
		return fmt.Errorf("could not delete image: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("could not delete image: %s", res.Error.Message)
	}
	if res.Result != destroyResultOK && res.Result != destroyResultAbsent {
		return fmt.Errorf("could not delete image: unexpected result %q", res.Result)
	}

	s.log.Infof("BlobStore: Destroyed %s (%s)", publicID, res.Result)
	return nil
}
