package domain

import "context"

type SubCategoryRepository interface {
	CreateSubCategory(ctx context.Context, sub *SubCategory) (*SubCategory, error)
	GetSubCategoryByID(ctx context.Context, id string) (*SubCategory, error)
	UpdateSubCategory(ctx context.Context, sub *SubCategory) (*SubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) error
	ListSubCategories(ctx context.Context) ([]SubCategory, error)
	CountSubCategoriesByCategory(ctx context.Context, categoryID string) (int, error)
}

type BrandRepository interface {
	CreateBrand(ctx context.Context, brand *Brand) (*Brand, error)
	GetBrandByID(ctx context.Context, id string) (*Brand, error)
	UpdateBrand(ctx context.Context, brand *Brand) (*Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	ListBrands(ctx context.Context) ([]Brand, error)
	CountBrandsBySubCategory(ctx context.Context, subCategoryID string) (int, error)
}

type VariantTypeRepository interface {
	CreateVariantType(ctx context.Context, vt *VariantType) (*VariantType, error)
	GetVariantTypeByID(ctx context.Context, id string) (*VariantType, error)
	UpdateVariantType(ctx context.Context, vt *VariantType) (*VariantType, error)
	DeleteVariantType(ctx context.Context, id string) error
	ListVariantTypes(ctx context.Context) ([]VariantType, error)
}

type VariantRepository interface {
	CreateVariant(ctx context.Context, variant *Variant) (*Variant, error)
	GetVariantByID(ctx context.Context, id string) (*Variant, error)
	UpdateVariant(ctx context.Context, variant *Variant) (*Variant, error)
	DeleteVariant(ctx context.Context, id string) error
	ListVariants(ctx context.Context) ([]Variant, error)
	CountVariantsByVariantType(ctx context.Context, variantTypeID string) (int, error)
}
