package repository

import (
	"errors"
	"fmt"
	"testing"

	"ecommerce_service/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"unique", &pq.Error{Code: pqUniqueViolation}, domain.ErrConflict, "Name is already taken."},
		{"dangling category", &pq.Error{Code: pqForeignKeyViolation, Constraint: "products_category_fk"}, domain.ErrValidation, "Category does not exist."},
		{"numeric out of range", fmt.Errorf("insert: %w", &pq.Error{Code: pqNumericOutOfRange}), domain.ErrValidation, "Numeric value is out of range."},
		{"bad uuid", &pq.Error{Code: pqInvalidTextRepr}, domain.ErrValidation, "Invalid identifier format."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateWriteError(tt.err, "Name is already taken.")
			require.ErrorIs(t, err, tt.kind)
			assert.EqualError(t, err, tt.message)
		})
	}

	assert.NoError(t, translateWriteError(errors.New("connection reset"), "dup"))
}

func TestTranslateDeleteError(t *testing.T) {
	err := translateDeleteError(&pq.Error{Code: pqForeignKeyViolation, Constraint: "brands_subcategory_fk"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Cannot delete subcategory. Brands are referencing it.")

	assert.NoError(t, translateDeleteError(&pq.Error{Code: pqUniqueViolation}))
}
