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

const (
	variantTypeColumns = `id, name, type, created_at, updated_at`
	variantSelect      = `
        SELECT v.id, v.name, v.variant_type_id, vt.name, vt.type, v.created_at, v.updated_at
        FROM variants v
        JOIN variant_types vt ON vt.id = v.variant_type_id`
)

type postgresVariantTypeRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresVariantTypeRepository(db *sql.DB, logger *logrus.Logger) domain.VariantTypeRepository {
	return &postgresVariantTypeRepository{
		db:  db,
		log: logger,
	}
}

func scanVariantType(row scanner) (*domain.VariantType, error) {
	vt := &domain.VariantType{}
	if err := row.Scan(&vt.ID, &vt.Name, &vt.Type, &vt.CreatedAt, &vt.UpdatedAt); err != nil {
		return nil, err
	}
	return vt, nil
}

func (r *postgresVariantTypeRepository) CreateVariantType(ctx context.Context, vt *domain.VariantType) (*domain.VariantType, error) {
	vt.ID = uuid.NewString()
	query := `INSERT INTO variant_types (id, name, type) VALUES ($1, $2, $3) RETURNING ` + variantTypeColumns
	created, err := scanVariantType(r.db.QueryRowContext(ctx, query, vt.ID, vt.Name, vt.Type))
	if err != nil {
		if domainErr := translateWriteError(err, "Variant type already exists."); domainErr != nil {
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create variant type '%s': %v", vt.Name, err)
		return nil, fmt.Errorf("could not create variant type: %w", err)
	}
	r.log.Infof("Repository: Variant type created successfully with ID: %s", created.ID)
	return created, nil
}

func (r *postgresVariantTypeRepository) GetVariantTypeByID(ctx context.Context, id string) (*domain.VariantType, error) {
	query := `SELECT ` + variantTypeColumns + ` FROM variant_types WHERE id = $1`
	vt, err := scanVariantType(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Variant type with ID %s not found", id)
			return nil, domain.NewNotFoundError("Variant type not found.")
		}
		r.log.Errorf("Repository: Failed to get variant type by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get variant type by id: %w", err)
	}
	return vt, nil
}

func (r *postgresVariantTypeRepository) UpdateVariantType(ctx context.Context, vt *domain.VariantType) (*domain.VariantType, error) {
	query := `
        UPDATE variant_types SET name = $1, type = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING ` + variantTypeColumns
	updated, err := scanVariantType(r.db.QueryRowContext(ctx, query, vt.Name, vt.Type, vt.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Variant type not found.")
		}
		r.log.Errorf("Repository: Failed to update variant type ID %s: %v", vt.ID, err)
		return nil, fmt.Errorf("could not update variant type: %w", err)
	}
	return updated, nil
}

func (r *postgresVariantTypeRepository) DeleteVariantType(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "variant_types", id)
	if err != nil {
		if domainErr := translateDeleteError(err); domainErr != nil {
			r.log.Warnf("Repository: Delete of variant type ID %s blocked: %v", id, err)
			return domainErr
		}
		r.log.Errorf("Repository: Failed to delete variant type ID %s: %v", id, err)
		return fmt.Errorf("could not delete variant type: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("Variant type not found.")
	}
	r.log.Infof("Repository: Variant type deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresVariantTypeRepository) ListVariantTypes(ctx context.Context) ([]domain.VariantType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+variantTypeColumns+` FROM variant_types ORDER BY created_at ASC, id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list variant types: %v", err)
		return nil, fmt.Errorf("could not list variant types: %w", err)
	}
	defer rows.Close()

	types := []domain.VariantType{}
	for rows.Next() {
		vt, err := scanVariantType(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning variant type data: %w", err)
		}
		types = append(types, *vt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variant types: %w", err)
	}
	return types, nil
}

type postgresVariantRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresVariantRepository(db *sql.DB, logger *logrus.Logger) domain.VariantRepository {
	return &postgresVariantRepository{
		db:  db,
		log: logger,
	}
}

func scanVariant(row scanner) (*domain.Variant, error) {
	v := &domain.Variant{}
	err := row.Scan(&v.ID, &v.Name, &v.VariantType.ID, &v.VariantType.Name, &v.VariantType.Type, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *postgresVariantRepository) CreateVariant(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	variant.ID = uuid.NewString()
	query := `INSERT INTO variants (id, name, variant_type_id) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, variant.ID, variant.Name, variant.VariantType.ID); err != nil {
		if domainErr := translateWriteError(err, "Variant already exists."); domainErr != nil {
			r.log.Warnf("Repository: Rejected variant '%s': %v", variant.Name, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create variant '%s': %v", variant.Name, err)
		return nil, fmt.Errorf("could not create variant: %w", err)
	}
	r.log.Infof("Repository: Variant created successfully with ID: %s", variant.ID)
	return r.GetVariantByID(ctx, variant.ID)
}

func (r *postgresVariantRepository) GetVariantByID(ctx context.Context, id string) (*domain.Variant, error) {
	v, err := scanVariant(r.db.QueryRowContext(ctx, variantSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Variant with ID %s not found", id)
			return nil, domain.NewNotFoundError("Variant not found.")
		}
		r.log.Errorf("Repository: Failed to get variant by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get variant by id: %w", err)
	}
	return v, nil
}

func (r *postgresVariantRepository) UpdateVariant(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	query := `UPDATE variants SET name = $1, variant_type_id = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, variant.Name, variant.VariantType.ID, variant.ID)
	if err != nil {
		if domainErr := translateWriteError(err, "Variant already exists."); domainErr != nil {
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to update variant ID %s: %v", variant.ID, err)
		return nil, fmt.Errorf("could not update variant: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, domain.NewNotFoundError("Variant not found.")
	}
	return r.GetVariantByID(ctx, variant.ID)
}

func (r *postgresVariantRepository) DeleteVariant(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "variants", id)
	if err != nil {
		if domainErr := translateDeleteError(err); domainErr != nil {
			r.log.Warnf("Repository: Delete of variant ID %s blocked: %v", id, err)
			return domainErr
		}
		r.log.Errorf("Repository: Failed to delete variant ID %s: %v", id, err)
		return fmt.Errorf("could not delete variant: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("Variant not found.")
	}
	r.log.Infof("Repository: Variant deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresVariantRepository) ListVariants(ctx context.Context) ([]domain.Variant, error) {
	rows, err := r.db.QueryContext(ctx, variantSelect+` ORDER BY v.created_at ASC, v.id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list variants: %v", err)
		return nil, fmt.Errorf("could not list variants: %w", err)
	}
	defer rows.Close()

	variants := []domain.Variant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning variant data: %w", err)
		}
		variants = append(variants, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}
	return variants, nil
}

func (r *postgresVariantRepository) CountVariantsByVariantType(ctx context.Context, variantTypeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM variants WHERE variant_type_id = $1`, variantTypeID).Scan(&count)
	if err != nil {
		r.log.Errorf("Repository: Failed to count variants for variant type %s: %v", variantTypeID, err)
		return 0, fmt.Errorf("could not count variants: %w", err)
	}
	return count, nil
}
