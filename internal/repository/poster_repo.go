package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecommerce_service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const posterColumns = `id, poster_name, image_url, image_public_id, created_at, updated_at`

type postgresPosterRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresPosterRepository(db *sql.DB, logger *logrus.Logger) domain.PosterRepository {
	return &postgresPosterRepository{
		db:  db,
		log: logger,
	}
}

func scanPoster(row scanner) (*domain.Poster, error) {
	poster := &domain.Poster{}
	err := row.Scan(&poster.ID, &poster.PosterName, &poster.ImageURL, &poster.ImagePublicID, &poster.CreatedAt, &poster.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return poster, nil
}

func (r *postgresPosterRepository) CreatePoster(ctx context.Context, poster *domain.Poster) (*domain.Poster, error) {
	poster.ID = uuid.NewString()
	query := `
        INSERT INTO posters (id, poster_name, image_url, image_public_id)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, poster.ID, poster.PosterName, poster.ImageURL, poster.ImagePublicID).
		Scan(&poster.CreatedAt, &poster.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to create poster '%s': %v", poster.PosterName, err)
		return nil, fmt.Errorf("could not create poster: %w", err)
	}
	r.log.Infof("Repository: Poster created successfully with ID: %s", poster.ID)
	return poster, nil
}

func (r *postgresPosterRepository) GetPosterByID(ctx context.Context, id string) (*domain.Poster, error) {
	query := `SELECT ` + posterColumns + ` FROM posters WHERE id = $1`
	poster, err := scanPoster(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Poster with ID %s not found", id)
			return nil, domain.NewNotFoundError("Poster not found.")
		}
		r.log.Errorf("Repository: Failed to get poster by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get poster by id: %w", err)
	}
	return poster, nil
}

func (r *postgresPosterRepository) UpdatePoster(ctx context.Context, poster *domain.Poster) (*domain.Poster, error) {
	query := `
        UPDATE posters
        SET poster_name = $1, image_url = $2, image_public_id = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING ` + posterColumns
	updated, err := scanPoster(r.db.QueryRowContext(ctx, query, poster.PosterName, poster.ImageURL, poster.ImagePublicID, poster.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Poster with ID %s not found for update", poster.ID)
			return nil, domain.NewNotFoundError("Poster not found.")
		}
		r.log.Errorf("Repository: Failed to update poster ID %s: %v", poster.ID, err)
		return nil, fmt.Errorf("could not update poster: %w", err)
	}
	r.log.Infof("Repository: Poster updated successfully with ID: %s", poster.ID)
	return updated, nil
}

func (r *postgresPosterRepository) DeletePoster(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "posters", id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete poster ID %s: %v", id, err)
		return fmt.Errorf("could not delete poster: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent poster ID %s", id)
		return domain.NewNotFoundError("Poster not found.")
	}
	r.log.Infof("Repository: Poster deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresPosterRepository) ListPosters(ctx context.Context) ([]domain.Poster, error) {
	query := `SELECT ` + posterColumns + ` FROM posters ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list posters: %v", err)
		return nil, fmt.Errorf("could not list posters: %w", err)
	}
	defer rows.Close()

	posters := []domain.Poster{}
	for rows.Next() {
		poster, err := scanPoster(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning poster data: %w", err)
		}
		posters = append(posters, *poster)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during posters list iteration: %v", err)
		return nil, fmt.Errorf("error iterating posters: %w", err)
	}
	return posters, nil
}
