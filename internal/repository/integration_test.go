//go:build integration

package repository

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	"ecommerce_service/internal/domain"
	"ecommerce_service/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and applies the schema.
func setupTestDB(t *testing.T) (*sql.DB, *logrus.Logger) {
	t.Helper()
	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Connect(ctx, connStr, 10*time.Second, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(ctx, conn, logger))
	return conn, logger
}

func TestCatalogIntegration(t *testing.T) {
	conn, logger := setupTestDB(t)
	ctx := context.Background()

	categories := NewPostgresCategoryRepository(conn, logger)
	subs := NewPostgresSubCategoryRepository(conn, logger)
	brands := NewPostgresBrandRepository(conn, logger)
	variantTypes := NewPostgresVariantTypeRepository(conn, logger)
	variants := NewPostgresVariantRepository(conn, logger)
	products := NewPostgresProductRepository(conn, logger)

	category, err := categories.CreateCategory(ctx, &domain.Category{Name: "Shoes", Image: domain.NoImageURL})
	require.NoError(t, err)

	t.Run("dangling reference is rejected", func(t *testing.T) {
		_, err := subs.CreateSubCategory(ctx, &domain.SubCategory{Name: "Orphan", Category: domain.Ref{ID: "2f1c1f1e-0000-4000-8000-000000000000"}})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "Category does not exist.")
	})

	sub, err := subs.CreateSubCategory(ctx, &domain.SubCategory{Name: "Running", Category: domain.Ref{ID: category.ID}})
	require.NoError(t, err)
	assert.Equal(t, "Shoes", sub.Category.Name)

	t.Run("category delete is blocked by subcategory", func(t *testing.T) {
		count, err := subs.CountSubCategoriesByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		err = categories.DeleteCategory(ctx, category.ID)
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.EqualError(t, err, "Cannot delete category. Subcategories are referencing it.")

		_, err = categories.GetCategoryByID(ctx, category.ID)
		assert.NoError(t, err)
	})

	brand, err := brands.CreateBrand(ctx, &domain.Brand{Name: "Acme", SubCategory: domain.Ref{ID: sub.ID}})
	require.NoError(t, err)
	size, err := variantTypes.CreateVariantType(ctx, &domain.VariantType{Name: "Size", Type: "size"})
	require.NoError(t, err)
	large, err := variants.CreateVariant(ctx, &domain.Variant{Name: "L", VariantType: domain.Ref{ID: size.ID}})
	require.NoError(t, err)
	assert.Equal(t, "size", large.VariantType.Type)

	product, err := products.CreateProduct(ctx, &domain.Product{
		Name:        "Runner",
		Quantity:    3,
		Price:       decimal.RequireFromString("49.90"),
		OfferPrice:  decimal.NewNullDecimal(decimal.RequireFromString("39.90")),
		Category:    domain.Ref{ID: category.ID},
		SubCategory: domain.Ref{ID: sub.ID},
		Brand:       &domain.Ref{ID: brand.ID},
		VariantType: &domain.Ref{ID: size.ID},
		Variant:     &domain.Ref{ID: large.ID},
		Images: []domain.ProductImage{
			{Slot: 1, URL: "https://img/1.png", PublicID: "products/1"},
			{Slot: 2, URL: "https://img/2.png", PublicID: "products/2"},
			{Slot: 4, URL: "https://img/4.png", PublicID: "products/4"},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Images, 3)
	assert.Equal(t, "Shoes", product.Category.Name)
	assert.Equal(t, "Running", product.SubCategory.Name)
	require.NotNil(t, product.Brand)
	assert.Equal(t, "Acme", product.Brand.Name)
	require.NotNil(t, product.VariantType)
	assert.Equal(t, "size", product.VariantType.Type)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("49.90")))

	t.Run("slot update replaces only that slot", func(t *testing.T) {
		product.SetImage(2, domain.StoredImage{URL: "https://img/2b.png", PublicID: "products/2b"})
		product.Price = decimal.Zero
		product.Brand = nil

		updated, err := products.UpdateProduct(ctx, product)
		require.NoError(t, err)
		require.Len(t, updated.Images, 3)
		urls := map[int]string{}
		for _, img := range updated.Images {
			urls[img.Slot] = img.URL
		}
		assert.Equal(t, map[int]string{1: "https://img/1.png", 2: "https://img/2b.png", 4: "https://img/4.png"}, urls)
		assert.True(t, updated.Price.IsZero())
		assert.Nil(t, updated.Brand)
	})

	t.Run("variant delete is blocked by product", func(t *testing.T) {
		count, err := products.CountProductsByReference(ctx, domain.ProductRefVariant, large.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		err = variants.DeleteVariant(ctx, large.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("product delete cascades images", func(t *testing.T) {
		require.NoError(t, products.DeleteProduct(ctx, product.ID))
		_, err := products.GetProductByID(ctx, product.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)

		var remaining int
		require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_images WHERE product_id = $1`, product.ID).Scan(&remaining))
		assert.Zero(t, remaining)
	})

	t.Run("unreferenced category is deleted", func(t *testing.T) {
		require.NoError(t, brands.DeleteBrand(ctx, brand.ID))
		require.NoError(t, subs.DeleteSubCategory(ctx, sub.ID))
		require.NoError(t, categories.DeleteCategory(ctx, category.ID))

		_, err := categories.GetCategoryByID(ctx, category.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserIntegration(t *testing.T) {
	conn, logger := setupTestDB(t)
	ctx := context.Background()
	users := NewPostgresUserRepository(conn, logger)

	// Concurrent registrations of one name: the unique index lets exactly one through.
	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := users.CreateUser(ctx, &domain.User{Name: "alice", PasswordHash: "hash"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	bob, err := users.CreateUser(ctx, &domain.User{Name: "bob", PasswordHash: "hash"})
	require.NoError(t, err)
	bob.Name = "alice"
	_, err = users.UpdateUser(ctx, bob)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Name is already taken.")
}

func TestPosterIntegration(t *testing.T) {
	conn, logger := setupTestDB(t)
	ctx := context.Background()
	posters := NewPostgresPosterRepository(conn, logger)

	created, err := posters.CreatePoster(ctx, &domain.Poster{PosterName: "Sale", ImageURL: domain.NoImageURL})
	require.NoError(t, err)

	created.PosterName = "Big Sale"
	updated, err := posters.UpdatePoster(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Big Sale", updated.PosterName)

	require.NoError(t, posters.DeletePoster(ctx, created.ID))
	err = posters.DeletePoster(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
