package catalog

import (
	"time"

	"glowcart/internal/domain"
)

// product returns an active catalog item with sensible defaults; tests
// override the fields they exercise.
func product(id int64, mutate func(*domain.Product)) *domain.Product {
	p := &domain.Product{
		ID:            id,
		Name:          "Velvet Lip Tint",
		Description:   "A weightless tint",
		Brand:         "Lumel",
		Price:         19.90,
		StockQuantity: 10,
		IsActive:      true,
		CategoryID:    1,
		SkinTypeMask:  domain.SkinNormal,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func ids(products []*domain.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
