package domain

import "time"

// Ref is an expanded reference to another entity, reduced to its display fields.
type Ref struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

type Category struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	ImagePublicID string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SubCategory struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Category  Ref       `json:"categoryId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Brand struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	SubCategory Ref       `json:"subcategoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type VariantType struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Variant struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	VariantType Ref       `json:"variantTypeId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Poster struct {
	ID            string    `json:"_id"`
	PosterName    string    `json:"posterName"`
	ImageURL      string    `json:"imageUrl"`
	ImagePublicID string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
