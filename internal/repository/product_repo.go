package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecommerce_service/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productSelect = `
        SELECT p.id, p.name, p.description, p.quantity, p.price, p.offer_price,
               p.category_id, c.name,
               p.subcategory_id, s.name,
               p.brand_id, b.name,
               p.variant_type_id, vt.type,
               p.variant_id, v.name,
               p.created_at, p.updated_at
        FROM products p
        JOIN categories c ON c.id = p.category_id
        JOIN sub_categories s ON s.id = p.subcategory_id
        LEFT JOIN brands b ON b.id = p.brand_id
        LEFT JOIN variant_types vt ON vt.id = p.variant_type_id
        LEFT JOIN variants v ON v.id = p.variant_id`

// Columns that a product delete guard may count on.
var productReferenceColumns = map[domain.ProductReference]string{
	domain.ProductRefCategory:    "category_id",
	domain.ProductRefSubCategory: "subcategory_id",
	domain.ProductRefBrand:       "brand_id",
	domain.ProductRefVariantType: "variant_type_id",
	domain.ProductRefVariant:     "variant_id",
}

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func scanProduct(row scanner) (*domain.Product, error) {
	p := &domain.Product{}
	var (
		brandID, brandName             sql.NullString
		variantTypeID, variantTypeName sql.NullString
		variantID, variantName         sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.Price, &p.OfferPrice,
		&p.Category.ID, &p.Category.Name,
		&p.SubCategory.ID, &p.SubCategory.Name,
		&brandID, &brandName,
		&variantTypeID, &variantTypeName,
		&variantID, &variantName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Brand = optionalRef(brandID, brandName)
	p.Variant = optionalRef(variantID, variantName)
	if variantTypeID.Valid {
		p.VariantType = &domain.Ref{ID: variantTypeID.String, Type: variantTypeName.String}
	}
	p.Images = []domain.ProductImage{}
	return p, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.ID = uuid.NewString()
	err := withTx(ctx, r.db, r.log, func(tx *sql.Tx) error {
		query := `
            INSERT INTO products (id, name, description, quantity, price, offer_price,
                                  category_id, subcategory_id, brand_id, variant_type_id, variant_id)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := tx.ExecContext(ctx, query,
			product.ID, product.Name, product.Description, product.Quantity, product.Price, product.OfferPrice,
			product.Category.ID, product.SubCategory.ID,
			refID(product.Brand), refID(product.VariantType), refID(product.Variant),
		)
		if err != nil {
			return err
		}
		return upsertProductImages(ctx, tx, product.ID, product.Images)
	})
	if err != nil {
		if domainErr := translateWriteError(err, "Product already exists."); domainErr != nil {
			r.log.Warnf("Repository: Rejected product '%s': %v", product.Name, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Repository: Product created successfully with ID: %s, Name: %s", product.ID, product.Name)
	return r.GetProductByID(ctx, product.ID)
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Product with ID %s not found", id)
			return nil, domain.NewNotFoundError("Product not found.")
		}
		r.log.Errorf("Repository: Failed to get product by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	products := []domain.Product{*product}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	found := true
	err := withTx(ctx, r.db, r.log, func(tx *sql.Tx) error {
		query := `
            UPDATE products
            SET name = $1, description = $2, quantity = $3, price = $4, offer_price = $5,
                category_id = $6, subcategory_id = $7, brand_id = $8, variant_type_id = $9, variant_id = $10,
                updated_at = NOW()
            WHERE id = $11`
		result, err := tx.ExecContext(ctx, query,
			product.Name, product.Description, product.Quantity, product.Price, product.OfferPrice,
			product.Category.ID, product.SubCategory.ID,
			refID(product.Brand), refID(product.VariantType), refID(product.Variant),
			product.ID,
		)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			found = false
			return nil
		}
		return upsertProductImages(ctx, tx, product.ID, product.Images)
	})
	if err != nil {
		if domainErr := translateWriteError(err, "Product already exists."); domainErr != nil {
			r.log.Warnf("Repository: Rejected update of product ID %s: %v", product.ID, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to update product ID %s: %v", product.ID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	if !found {
		r.log.Warnf("Repository: Product with ID %s not found for update", product.ID)
		return nil, domain.NewNotFoundError("Product not found.")
	}
	r.log.Infof("Repository: Product updated successfully with ID: %s", product.ID)
	return r.GetProductByID(ctx, product.ID)
}

// DeleteProduct removes the product row; its image rows cascade.
func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "products", id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete product ID %s: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %s", id)
		return domain.NewNotFoundError("Product not found.")
	}
	r.log.Infof("Repository: Product deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` ORDER BY p.created_at ASC, p.id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	r.log.Infof("Repository: Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) CountProductsByReference(ctx context.Context, ref domain.ProductReference, id string) (int, error) {
	column, ok := productReferenceColumns[ref]
	if !ok {
		return 0, fmt.Errorf("unknown product reference %q", ref)
	}
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE `+column+` = $1`, id).Scan(&count)
	if err != nil {
		r.log.Errorf("Repository: Failed to count products by %s %s: %v", ref, id, err)
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return count, nil
}

// attachImages loads the image rows of all products in one query.
func (r *postgresProductRepository) attachImages(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	query := `
        SELECT product_id, slot, url, public_id
        FROM product_images
        WHERE product_id = ANY($1::uuid[])
        ORDER BY product_id, slot`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.log.Errorf("Repository: Failed to load product images: %v", err)
		return fmt.Errorf("could not load product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var img domain.ProductImage
		if err := rows.Scan(&productID, &img.Slot, &img.URL, &img.PublicID); err != nil {
			return fmt.Errorf("error scanning product image data: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Images = append(products[i].Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating product images: %w", err)
	}
	return nil
}

func upsertProductImages(ctx context.Context, q querier, productID string, images []domain.ProductImage) error {
	query := `
        INSERT INTO product_images (product_id, slot, url, public_id)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (product_id, slot) DO UPDATE SET url = EXCLUDED.url, public_id = EXCLUDED.public_id`
	for _, img := range images {
		if _, err := q.ExecContext(ctx, query, productID, img.Slot, img.URL, img.PublicID); err != nil {
			return err
		}
	}
	return nil
}

func refID(ref *domain.Ref) sql.NullString {
	if ref == nil {
		return sql.NullString{}
	}
	return nullableID(ref.ID)
}
