package domain

import "context"

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]Category, error)
}

type PosterRepository interface {
	CreatePoster(ctx context.Context, poster *Poster) (*Poster, error)
	GetPosterByID(ctx context.Context, id string) (*Poster, error)
	UpdatePoster(ctx context.Context, poster *Poster) (*Poster, error)
	DeletePoster(ctx context.Context, id string) error
	ListPosters(ctx context.Context) ([]Poster, error)
}
