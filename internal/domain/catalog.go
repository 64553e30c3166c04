package domain

import (
	"time"
)

// Skin type bit flags. A product's SkinTypeMask is the OR of every skin
// type it suits; a mask of 0 on a query means "no skin constraint".
const (
	SkinDry         = 1
	SkinOily        = 2
	SkinCombination = 4
	SkinSensitive   = 8
	SkinNormal      = 16
)

// Finish values carried by products and finish facets
const (
	FinishNatural = "Natural"
	FinishMatte   = "Matte"
	FinishDewy    = "Dewy"
	FinishSatin   = "Satin"
	FinishShimmer = "Shimmer"
)

// Coverage values carried by products and coverage facets
const (
	CoverageLight  = "Light"
	CoverageMedium = "Medium"
	CoverageFull   = "Full"
)

// Category represents one node of the product taxonomy. The taxonomy is a
// forest: ParentID is nil for roots and otherwise points at another category.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *int64    `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product represents a catalog item as consumed by the query engine. The
// engine treats products as immutable; zero DiscountPercent means "not
// discounted" and zero RatingCount means "never rated".
type Product struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Brand           string    `json:"brand" db:"brand"`
	Price           float64   `json:"price" db:"price"`
	DiscountPercent float64   `json:"discount_percent" db:"discount_percent"`
	StockQuantity   int       `json:"stock_quantity" db:"stock_quantity"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CategoryID      int64     `json:"category_id" db:"category_id"`
	Color           string    `json:"color,omitempty" db:"color"`
	Size            string    `json:"size,omitempty" db:"size"`
	SkinTypeMask    int       `json:"skin_type_mask" db:"skin_type_mask"`
	Finish          string    `json:"finish,omitempty" db:"finish"`
	Coverage        string    `json:"coverage,omitempty" db:"coverage"`
	Longwear        bool      `json:"longwear" db:"longwear"`
	Waterproof      bool      `json:"waterproof" db:"waterproof"`
	HasSPF          bool      `json:"has_spf" db:"has_spf"`
	FragranceFree   bool      `json:"fragrance_free" db:"fragrance_free"`
	NonComedogenic  bool      `json:"non_comedogenic" db:"non_comedogenic"`
	PhotoFriendly   bool      `json:"photo_friendly" db:"photo_friendly"`
	ShadeFamily     string    `json:"shade_family,omitempty" db:"shade_family"`
	Tags            string    `json:"tags,omitempty" db:"tags"`
	ImageURL        string    `json:"image_url" db:"image_url"`
	RatingAverage   float64   `json:"rating_average" db:"rating_average"`
	RatingCount     int       `json:"rating_count" db:"rating_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// EffectivePrice returns the list price after applying an active percentage
// discount.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPercent > 0 {
		return p.Price * (1 - p.DiscountPercent/100)
	}
	return p.Price
}
