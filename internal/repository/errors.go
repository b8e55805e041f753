package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecommerce_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqInvalidTextRepr     = "22P02"
	pqNumericOutOfRange   = "22003"
)

// Messages for writes that point at a row which does not exist.
var danglingReferenceMessages = map[string]string{
	"sub_categories_category_fk": "Category does not exist.",
	"brands_subcategory_fk":      "Subcategory does not exist.",
	"variants_variant_type_fk":   "Variant type does not exist.",
	"products_category_fk":       "Category does not exist.",
	"products_subcategory_fk":    "Subcategory does not exist.",
	"products_brand_fk":          "Brand does not exist.",
	"products_variant_type_fk":   "Variant type does not exist.",
	"products_variant_fk":        "Variant does not exist.",
}

// Messages for deletes blocked by a row that still references the target.
var dependentRowMessages = map[string]string{
	"sub_categories_category_fk": "Cannot delete category. Subcategories are referencing it.",
	"products_category_fk":       "Cannot delete category. Products are referencing it.",
	"brands_subcategory_fk":      "Cannot delete subcategory. Brands are referencing it.",
	"products_subcategory_fk":    "Cannot delete subcategory. Products are referencing it.",
	"products_brand_fk":          "Cannot delete brand. Products are referencing it.",
	"variants_variant_type_fk":   "Cannot delete variant type. Variants are referencing it.",
	"products_variant_type_fk":   "Cannot delete variant type. Products are referencing it.",
	"products_variant_fk":        "Cannot delete variant. Products are referencing it.",
}

func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// translateWriteError maps constraint violations raised by INSERT/UPDATE to
// domain errors. duplicateMessage is used for unique violations.
func translateWriteError(err error, duplicateMessage string) error {
	pqErr, ok := asPQError(err)
	if !ok {
		return nil
	}
	switch string(pqErr.Code) {
	case pqUniqueViolation:
		return domain.NewConflictError(duplicateMessage)
	case pqForeignKeyViolation:
		if msg, found := danglingReferenceMessages[pqErr.Constraint]; found {
			return domain.NewValidationError(msg)
		}
		return domain.NewValidationError("Referenced entity does not exist.")
	case pqCheckViolation:
		return domain.NewValidationError(fmt.Sprintf("Data constraint violation: %s", pqErr.Message))
	case pqInvalidTextRepr:
		return domain.NewValidationError("Invalid identifier format.")
	case pqNumericOutOfRange:
		return domain.NewValidationError("Numeric value is out of range.")
	}
	return nil
}

// translateDeleteError maps a foreign key violation raised by DELETE to a
// Conflict. The RESTRICT constraints make the guard atomic with the delete.
func translateDeleteError(err error) error {
	pqErr, ok := asPQError(err)
	if !ok || string(pqErr.Code) != pqForeignKeyViolation {
		return nil
	}
	if msg, found := dependentRowMessages[pqErr.Constraint]; found {
		return domain.NewConflictError(msg)
	}
	return domain.NewConflictError("Cannot delete. Other records are referencing it.")
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func withTx(ctx context.Context, db *sql.DB, log *logrus.Logger, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Errorf("Repository: Failed to begin transaction: %v", err)
		return fmt.Errorf("could not start transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Errorf("Repository: Failed to rollback transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Errorf("Repository: Failed to commit transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func deleteByID(ctx context.Context, q querier, table, id string) (int64, error) {
	result, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func optionalRef(id, name sql.NullString) *domain.Ref {
	if !id.Valid {
		return nil
	}
	return &domain.Ref{ID: id.String, Name: name.String}
}
