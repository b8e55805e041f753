package usecase

import (
	"context"
	"testing"

	"ecommerce_service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPosterRepo struct {
	items map[string]domain.Poster
}

func (r *memPosterRepo) CreatePoster(_ context.Context, p *domain.Poster) (*domain.Poster, error) {
	p.ID = "poster-1"
	r.items[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *memPosterRepo) GetPosterByID(_ context.Context, id string) (*domain.Poster, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Poster not found.")
	}
	return &p, nil
}

func (r *memPosterRepo) UpdatePoster(_ context.Context, p *domain.Poster) (*domain.Poster, error) {
	r.items[p.ID] = *p
	out := *p
	return &out, nil
}

func (r *memPosterRepo) DeletePoster(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("Poster not found.")
	}
	delete(r.items, id)
	return nil
}

func (r *memPosterRepo) ListPosters(context.Context) ([]domain.Poster, error) {
	out := []domain.Poster{}
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func TestPosterLifecycle(t *testing.T) {
	repo := &memPosterRepo{items: map[string]domain.Poster{}}
	images := &fakeImageStore{}
	uc := NewPosterUseCase(repo, images, newTestLogger())
	ctx := context.Background()

	_, err := uc.CreatePoster(ctx, PosterInput{})
	require.ErrorIs(t, err, domain.ErrValidation)

	created, err := uc.CreatePoster(ctx, PosterInput{PosterName: "Summer Sale", Image: jpegUpload("p.png")})
	require.NoError(t, err)
	assert.Equal(t, "posters/blob-1", created.ImagePublicID)

	updated, err := uc.UpdatePoster(ctx, created.ID, PosterInput{PosterName: "Winter Sale"})
	require.NoError(t, err)
	assert.Equal(t, "Winter Sale", updated.PosterName)
	assert.Equal(t, created.ImageURL, updated.ImageURL)

	require.NoError(t, uc.DeletePoster(ctx, created.ID))
	_, err = uc.GetPosterByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePosterUploadFailure(t *testing.T) {
	repo := &memPosterRepo{items: map[string]domain.Poster{}}
	uc := NewPosterUseCase(repo, &fakeImageStore{failOn: 1}, newTestLogger())

	_, err := uc.CreatePoster(context.Background(), PosterInput{PosterName: "Sale", Image: jpegUpload("p.png")})
	require.ErrorIs(t, err, errUploadFailed)
	assert.Empty(t, repo.items)
}
