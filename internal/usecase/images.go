package usecase

import (
	"context"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// resolveImage picks the image an entity ends up with after an update: a new
// upload wins, then a reference supplied by the client, then the stored one.
// The stored public id is kept only while the stored URL is.
func resolveImage(ctx context.Context, store domain.ImageStore, folder domain.ImageFolder, upload *domain.ImageUpload, suppliedURL string, current domain.StoredImage) (domain.StoredImage, error) {
	if upload != nil {
		stored, err := store.Upload(ctx, folder, upload)
		if err != nil {
			return domain.StoredImage{}, err
		}
		return *stored, nil
	}
	if hasImage(suppliedURL) && suppliedURL != current.URL {
		return domain.StoredImage{URL: suppliedURL}, nil
	}
	return current, nil
}

func hasImage(url string) bool {
	return url != "" && url != domain.NoImageURL
}

// releaseImages deletes blobs that are no longer referenced. Failures are logged only.
func releaseImages(ctx context.Context, store domain.ImageStore, log *logrus.Logger, publicIDs ...string) {
	for _, publicID := range publicIDs {
		if publicID == "" {
			continue
		}
		if err := store.Delete(ctx, publicID); err != nil {
			log.Warnf("Use Case: Failed to delete image '%s' from blob store: %v", publicID, err)
		}
	}
}
