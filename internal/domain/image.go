package domain

import "context"

// NoImageURL is stored when an entity was created without an image.
const NoImageURL = "no_url"

type ImageFolder string

const (
	FolderCategories ImageFolder = "categories"
	FolderProducts   ImageFolder = "products"
	FolderPosters    ImageFolder = "posters"
)

// ImageUpload is an accepted image file read from a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredImage is the result of a blob-store upload.
type StoredImage struct {
	URL      string
	PublicID string
}

// ImageStore is the external image-hosting service.
type ImageStore interface {
	Upload(ctx context.Context, folder ImageFolder, file *ImageUpload) (*StoredImage, error)
	Delete(ctx context.Context, publicID string) error
}
