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

const subCategorySelect = `
        SELECT s.id, s.name, s.category_id, c.name, s.created_at, s.updated_at
        FROM sub_categories s
        JOIN categories c ON c.id = s.category_id`

type postgresSubCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresSubCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.SubCategoryRepository {
	return &postgresSubCategoryRepository{
		db:  db,
		log: logger,
	}
}

func scanSubCategory(row scanner) (*domain.SubCategory, error) {
	sub := &domain.SubCategory{}
	err := row.Scan(&sub.ID, &sub.Name, &sub.Category.ID, &sub.Category.Name, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *postgresSubCategoryRepository) CreateSubCategory(ctx context.Context, sub *domain.SubCategory) (*domain.SubCategory, error) {
	sub.ID = uuid.NewString()
	query := `INSERT INTO sub_categories (id, name, category_id) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, sub.ID, sub.Name, sub.Category.ID); err != nil {
		if domainErr := translateWriteError(err, "Subcategory already exists."); domainErr != nil {
			r.log.Warnf("Repository: Rejected subcategory '%s': %v", sub.Name, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create subcategory '%s': %v", sub.Name, err)
		return nil, fmt.Errorf("could not create subcategory: %w", err)
	}
	r.log.Infof("Repository: Subcategory created successfully with ID: %s", sub.ID)
	return r.GetSubCategoryByID(ctx, sub.ID)
}

func (r *postgresSubCategoryRepository) GetSubCategoryByID(ctx context.Context, id string) (*domain.SubCategory, error) {
	sub, err := scanSubCategory(r.db.QueryRowContext(ctx, subCategorySelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Subcategory with ID %s not found", id)
			return nil, domain.NewNotFoundError("Subcategory not found.")
		}
		r.log.Errorf("Repository: Failed to get subcategory by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get subcategory by id: %w", err)
	}
	return sub, nil
}

func (r *postgresSubCategoryRepository) UpdateSubCategory(ctx context.Context, sub *domain.SubCategory) (*domain.SubCategory, error) {
	query := `UPDATE sub_categories SET name = $1, category_id = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, sub.Name, sub.Category.ID, sub.ID)
	if err != nil {
		if domainErr := translateWriteError(err, "Subcategory already exists."); domainErr != nil {
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to update subcategory ID %s: %v", sub.ID, err)
		return nil, fmt.Errorf("could not update subcategory: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		r.log.Warnf("Repository: Subcategory with ID %s not found for update", sub.ID)
		return nil, domain.NewNotFoundError("Subcategory not found.")
	}
	return r.GetSubCategoryByID(ctx, sub.ID)
}

func (r *postgresSubCategoryRepository) DeleteSubCategory(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "sub_categories", id)
	if err != nil {
		if domainErr := translateDeleteError(err); domainErr != nil {
			r.log.Warnf("Repository: Delete of subcategory ID %s blocked: %v", id, err)
			return domainErr
		}
		r.log.Errorf("Repository: Failed to delete subcategory ID %s: %v", id, err)
		return fmt.Errorf("could not delete subcategory: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("Subcategory not found.")
	}
	r.log.Infof("Repository: Subcategory deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresSubCategoryRepository) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	rows, err := r.db.QueryContext(ctx, subCategorySelect+` ORDER BY s.created_at ASC, s.id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list subcategories: %v", err)
		return nil, fmt.Errorf("could not list subcategories: %w", err)
	}
	defer rows.Close()

	subs := []domain.SubCategory{}
	for rows.Next() {
		sub, err := scanSubCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subcategory data: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subcategories: %w", err)
	}
	return subs, nil
}

func (r *postgresSubCategoryRepository) CountSubCategoriesByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sub_categories WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		r.log.Errorf("Repository: Failed to count subcategories for category %s: %v", categoryID, err)
		return 0, fmt.Errorf("could not count subcategories: %w", err)
	}
	return count, nil
}
