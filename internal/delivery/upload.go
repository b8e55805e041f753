package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const DefaultMaxUploadBytes int64 = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedImageTypes = []string{"image/jpeg", "image/png"}

// UploadPolicy limits the image files accepted from multipart requests.
type UploadPolicy struct {
	MaxBytes int64
}

func NewUploadPolicy(maxBytes int64) UploadPolicy {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return UploadPolicy{MaxBytes: maxBytes}
}

// ReadImage returns the image sent in field, or nil when the request has none.
// Files that break the policy produce a validation error.
func (p UploadPolicy) ReadImage(c *gin.Context, field string) (*domain.ImageUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, domain.NewValidationError(fmt.Sprintf("Could not read uploaded file '%s'.", field))
	}

	if fileHeader.Size > p.MaxBytes {
		return nil, p.tooLarge()
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		return nil, domain.NewValidationError("Only .jpg, .jpeg and .png images are allowed.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, p.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read uploaded file: %w", err)
	}
	if int64(len(data)) > p.MaxBytes {
		return nil, p.tooLarge()
	}

	detected := mimetype.Detect(data)
	if !mimetype.EqualsAny(detected.String(), allowedImageTypes...) {
		return nil, domain.NewValidationError("Only .jpg, .jpeg and .png images are allowed.")
	}

	return &domain.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: detected.String(),
		Data:        data,
	}, nil
}

func (p UploadPolicy) tooLarge() error {
	return domain.NewValidationError(fmt.Sprintf("File size is too large. Maximum filesize is %dMB per image.", p.MaxBytes>>20))
}
