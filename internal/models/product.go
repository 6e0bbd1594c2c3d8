package models

import "gorm.io/gorm"

// Category is the fixed set of product categories carried by the storefront.
type Category string

const (
	CategoryMakeup      Category = "makeup"
	CategorySkincare    Category = "skincare"
	CategoryHaircare    Category = "haircare"
	CategoryFragrance   Category = "fragrance"
	CategoryAccessories Category = "accessories"
	CategoryBathAndBody Category = "bathandbody"
	CategoryNails       Category = "nails"
	CategoryBags        Category = "bags"
	CategoryShoes       Category = "shoes"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryMakeup, CategorySkincare, CategoryHaircare, CategoryFragrance,
		CategoryAccessories, CategoryBathAndBody, CategoryNails, CategoryBags, CategoryShoes:
		return true
	}
	return false
}

// Version selects one of the two parallel SKUs a product carries:
// "original" (premium) or "ordinary" (budget), each with its own price and image.
type Version string

const (
	VersionOriginal Version = "original"
	VersionOrdinary Version = "ordinary"
)

// ValidVersion reports whether v is one of the two known versions.
func ValidVersion(v Version) bool {
	return v == VersionOriginal || v == VersionOrdinary
}

// Product represents a product in the catalog.
// Views, Likes, Rating and ReviewCount are rollups kept in sync by the
// engagement and review mutations that change the underlying rows.
type Product struct {
	ID            string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Category      Category `json:"category" gorm:"index;type:varchar(32)" validate:"required"`
	Description   string   `json:"description" validate:"omitempty,max=2000"`
	OriginalPrice float64  `json:"original_price" validate:"gte=0"`
	OrdinaryPrice float64  `json:"ordinary_price" validate:"gte=0"`

	// Blob store references; the public URLs are derived per read, never stored.
	OriginalImageRef *string `json:"original_image_ref,omitempty" gorm:"type:varchar(255)"`
	OrdinaryImageRef *string `json:"ordinary_image_ref,omitempty" gorm:"type:varchar(255)"`

	InStock    bool `json:"in_stock"`
	Featured   bool `json:"featured" gorm:"index"`
	NewArrival bool `json:"new_arrival" gorm:"index"`
	ComingSoon bool `json:"coming_soon" gorm:"index"`

	Views       int      `json:"views"`
	Likes       int      `json:"likes"`
	Rating      *float64 `json:"rating,omitempty"` // absent until the first review
	ReviewCount int      `json:"review_count"`

	// Resolved from the blob store on every read; empty when no image is set.
	OriginalImageURL string `json:"original_image_url,omitempty" gorm:"-"`
	OrdinaryImageURL string `json:"ordinary_image_url,omitempty" gorm:"-"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// PriceFor returns the unit price for the given version.
func (p *Product) PriceFor(v Version) float64 {
	if v == VersionOriginal {
		return p.OriginalPrice
	}
	return p.OrdinaryPrice
}
