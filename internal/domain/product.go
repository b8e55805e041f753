// domain/product.go
package domain

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinImageSlot = 1
	MaxImageSlot = 5
)

// Column limits of products: quantity is INTEGER, prices are NUMERIC(12, 2).
const (
	MaxQuantity   = math.MaxInt32
	PriceDecimals = 2
)

// MaxPriceExclusive is the first amount NUMERIC(12, 2) cannot hold.
var MaxPriceExclusive = decimal.New(1, 10)

// ValidPrice reports whether price fits the price columns without rounding.
func ValidPrice(price decimal.Decimal) bool {
	return price.Equal(price.Truncate(PriceDecimals)) && price.Abs().LessThan(MaxPriceExclusive)
}

type Product struct {
	ID          string              `json:"_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Quantity    int                 `json:"quantity"`
	Price       decimal.Decimal     `json:"price"`
	OfferPrice  decimal.NullDecimal `json:"offerPrice"`
	Category    Ref                 `json:"proCategoryId"`
	SubCategory Ref                 `json:"proSubCategoryId"`
	Brand       *Ref                `json:"proBrandId"`
	VariantType *Ref                `json:"proVariantTypeId"`
	Variant     *Ref                `json:"proVariantId"`
	Images      []ProductImage      `json:"images"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ProductImage is one filled image slot. Slot is unique per product and lies in [1, 5].
type ProductImage struct {
	Slot     int    `json:"image"`
	URL      string `json:"url"`
	PublicID string `json:"-"`
}

// SetImage stores img in slot, replacing the entry with the same slot or
// appending a new one. The replaced entry is returned so its blob can be released.
func (p *Product) SetImage(slot int, img StoredImage) *ProductImage {
	for i := range p.Images {
		if p.Images[i].Slot == slot {
			previous := p.Images[i]
			p.Images[i].URL = img.URL
			p.Images[i].PublicID = img.PublicID
			return &previous
		}
	}
	p.Images = append(p.Images, ProductImage{Slot: slot, URL: img.URL, PublicID: img.PublicID})
	return nil
}

func ValidImageSlot(slot int) bool {
	return slot >= MinImageSlot && slot <= MaxImageSlot
}

// ProductInput is a create or update request. Absent fields keep their stored
// value on update; on create the required ones must be set.
type ProductInput struct {
	Name          Optional[string]
	Description   Optional[string]
	Quantity      Optional[int]
	Price         Optional[decimal.Decimal]
	OfferPrice    Optional[decimal.NullDecimal]
	CategoryID    Optional[string]
	SubCategoryID Optional[string]
	BrandID       Optional[string]
	VariantTypeID Optional[string]
	VariantID     Optional[string]
	Images        map[int]*ImageUpload
}

// ProductReference names a reference column that other entities' deletes are guarded on.
type ProductReference string

const (
	ProductRefCategory    ProductReference = "category"
	ProductRefSubCategory ProductReference = "subcategory"
	ProductRefBrand       ProductReference = "brand"
	ProductRefVariantType ProductReference = "variant_type"
	ProductRefVariant     ProductReference = "variant"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]Product, error)
	CountProductsByReference(ctx context.Context, ref ProductReference, id string) (int, error)
}
