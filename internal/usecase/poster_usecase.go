package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type PosterInput struct {
	PosterName string
	Image      *domain.ImageUpload
	ImageURL   string
}

type PosterUseCase interface {
	ListPosters(ctx context.Context) ([]domain.Poster, error)
	GetPosterByID(ctx context.Context, id string) (*domain.Poster, error)
	CreatePoster(ctx context.Context, input PosterInput) (*domain.Poster, error)
	UpdatePoster(ctx context.Context, id string, input PosterInput) (*domain.Poster, error)
	DeletePoster(ctx context.Context, id string) error
}

type posterUseCase struct {
	posterRepo domain.PosterRepository
	images     domain.ImageStore
	log        *logrus.Logger
}

func NewPosterUseCase(repo domain.PosterRepository, images domain.ImageStore, logger *logrus.Logger) PosterUseCase {
	return &posterUseCase{
		posterRepo: repo,
		images:     images,
		log:        logger,
	}
}

func (uc *posterUseCase) ListPosters(ctx context.Context) ([]domain.Poster, error) {
	posters, err := uc.posterRepo.ListPosters(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list posters: %v", err)
		return nil, fmt.Errorf("could not retrieve posters: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d posters", len(posters))
	return posters, nil
}

func (uc *posterUseCase) GetPosterByID(ctx context.Context, id string) (*domain.Poster, error) {
	return uc.posterRepo.GetPosterByID(ctx, id)
}

func (uc *posterUseCase) CreatePoster(ctx context.Context, input PosterInput) (*domain.Poster, error) {
	name := strings.TrimSpace(input.PosterName)
	if name == "" {
		uc.log.Warn("Use Case: Attempted to create poster with empty name")
		return nil, domain.NewValidationError("Name is required.")
	}

	poster := &domain.Poster{PosterName: name, ImageURL: domain.NoImageURL}
	if input.Image != nil {
		stored, err := uc.images.Upload(ctx, domain.FolderPosters, input.Image)
		if err != nil {
			uc.log.Errorf("Use Case: Image upload failed for poster '%s': %v", name, err)
			return nil, err
		}
		poster.ImageURL = stored.URL
		poster.ImagePublicID = stored.PublicID
	}

	created, err := uc.posterRepo.CreatePoster(ctx, poster)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create poster '%s': %v", name, err)
		releaseImages(ctx, uc.images, uc.log, poster.ImagePublicID)
		return nil, err
	}

	uc.log.Infof("Use Case: Poster '%s' created successfully with ID %s", created.PosterName, created.ID)
	return created, nil
}

func (uc *posterUseCase) UpdatePoster(ctx context.Context, id string, input PosterInput) (*domain.Poster, error) {
	name := strings.TrimSpace(input.PosterName)
	if name == "" {
		uc.log.Warnf("Use Case: Attempted update for poster ID %s with empty name", id)
		return nil, domain.NewValidationError("Name is required.")
	}

	existing, err := uc.posterRepo.GetPosterByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := domain.StoredImage{URL: existing.ImageURL, PublicID: existing.ImagePublicID}
	image, err := resolveImage(ctx, uc.images, domain.FolderPosters, input.Image, input.ImageURL, current)
	if err != nil {
		uc.log.Errorf("Use Case: Image upload failed for poster ID %s: %v", id, err)
		return nil, err
	}

	existing.PosterName = name
	existing.ImageURL = image.URL
	existing.ImagePublicID = image.PublicID

	updated, err := uc.posterRepo.UpdatePoster(ctx, existing)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update poster ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Poster updated successfully for ID %s", updated.ID)
	return updated, nil
}

func (uc *posterUseCase) DeletePoster(ctx context.Context, id string) error {
	if err := uc.posterRepo.DeletePoster(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete poster ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Poster deleted successfully for ID %s", id)
	return nil
}
