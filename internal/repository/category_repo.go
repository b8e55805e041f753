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

const categoryColumns = `id, name, image_url, image_public_id, created_at, updated_at`

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func scanCategory(row scanner) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(&category.ID, &category.Name, &category.Image, &category.ImagePublicID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	category.ID = uuid.NewString()
	query := `
        INSERT INTO categories (id, name, image_url, image_public_id)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, category.ID, category.Name, category.Image, category.ImagePublicID).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if domainErr := translateWriteError(err, "Category already exists."); domainErr != nil {
			r.log.Warnf("Repository: Rejected category '%s': %v", category.Name, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Repository: Category created successfully with ID: %s, Name: %s", category.ID, category.Name)
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Category with ID %s not found", id)
			return nil, domain.NewNotFoundError("Category not found.")
		}
		r.log.Errorf("Repository: Failed to get category by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
        UPDATE categories
        SET name = $1, image_url = $2, image_public_id = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING ` + categoryColumns
	updated, err := scanCategory(r.db.QueryRowContext(ctx, query, category.Name, category.Image, category.ImagePublicID, category.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Category with ID %s not found for update", category.ID)
			return nil, domain.NewNotFoundError("Category not found.")
		}
		if domainErr := translateWriteError(err, "Category already exists."); domainErr != nil {
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to update category ID %s: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	r.log.Infof("Repository: Category updated successfully with ID: %s", category.ID)
	return updated, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "categories", id)
	if err != nil {
		if domainErr := translateDeleteError(err); domainErr != nil {
			r.log.Warnf("Repository: Delete of category ID %s blocked: %v", id, err)
			return domainErr
		}
		r.log.Errorf("Repository: Failed to delete category ID %s: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent category ID %s", id)
		return domain.NewNotFoundError("Category not found.")
	}
	r.log.Infof("Repository: Category deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Repository: Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan category row: %v", err)
			return nil, fmt.Errorf("error scanning category data: %w", err)
		}
		categories = append(categories, *category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during categories list iteration: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	r.log.Infof("Repository: Retrieved %d categories", len(categories))
	return categories, nil
}
