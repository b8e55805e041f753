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

const brandSelect = `
        SELECT b.id, b.name, b.subcategory_id, s.name, b.created_at, b.updated_at
        FROM brands b
        JOIN sub_categories s ON s.id = b.subcategory_id`

type postgresBrandRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresBrandRepository(db *sql.DB, logger *logrus.Logger) domain.BrandRepository {
	return &postgresBrandRepository{
		db:  db,
		log: logger,
	}
}

func scanBrand(row scanner) (*domain.Brand, error) {
	brand := &domain.Brand{}
	err := row.Scan(&brand.ID, &brand.Name, &brand.SubCategory.ID, &brand.SubCategory.Name, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *postgresBrandRepository) CreateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	brand.ID = uuid.NewString()
	query := `INSERT INTO brands (id, name, subcategory_id) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, brand.ID, brand.Name, brand.SubCategory.ID); err != nil {
		if domainErr := translateWriteError(err, "Brand already exists."); domainErr != nil {
			r.log.Warnf("Repository: Rejected brand '%s': %v", brand.Name, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create brand '%s': %v", brand.Name, err)
		return nil, fmt.Errorf("could not create brand: %w", err)
	}
	r.log.Infof("Repository: Brand created successfully with ID: %s", brand.ID)
	return r.GetBrandByID(ctx, brand.ID)
}

func (r *postgresBrandRepository) GetBrandByID(ctx context.Context, id string) (*domain.Brand, error) {
	brand, err := scanBrand(r.db.QueryRowContext(ctx, brandSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Brand with ID %s not found", id)
			return nil, domain.NewNotFoundError("Brand not found.")
		}
		r.log.Errorf("Repository: Failed to get brand by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get brand by id: %w", err)
	}
	return brand, nil
}

func (r *postgresBrandRepository) UpdateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	query := `UPDATE brands SET name = $1, subcategory_id = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, brand.Name, brand.SubCategory.ID, brand.ID)
	if err != nil {
		if domainErr := translateWriteError(err, "Brand already exists."); domainErr != nil {
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to update brand ID %s: %v", brand.ID, err)
		return nil, fmt.Errorf("could not update brand: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, domain.NewNotFoundError("Brand not found.")
	}
	return r.GetBrandByID(ctx, brand.ID)
}

func (r *postgresBrandRepository) DeleteBrand(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "brands", id)
	if err != nil {
		if domainErr := translateDeleteError(err); domainErr != nil {
			r.log.Warnf("Repository: Delete of brand ID %s blocked: %v", id, err)
			return domainErr
		}
		r.log.Errorf("Repository: Failed to delete brand ID %s: %v", id, err)
		return fmt.Errorf("could not delete brand: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("Brand not found.")
	}
	r.log.Infof("Repository: Brand deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresBrandRepository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.db.QueryContext(ctx, brandSelect+` ORDER BY b.created_at ASC, b.id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list brands: %v", err)
		return nil, fmt.Errorf("could not list brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning brand data: %w", err)
		}
		brands = append(brands, *brand)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}
	return brands, nil
}

func (r *postgresBrandRepository) CountBrandsBySubCategory(ctx context.Context, subCategoryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands WHERE subcategory_id = $1`, subCategoryID).Scan(&count)
	if err != nil {
		r.log.Errorf("Repository: Failed to count brands for subcategory %s: %v", subCategoryID, err)
		return 0, fmt.Errorf("could not count brands: %w", err)
	}
	return count, nil
}
