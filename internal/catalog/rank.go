package catalog

import (
	"sort"

	"glowcart/internal/domain"
)

// Supported sort keys for catalog browsing.
const (
	SortBest      = "best"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "new"
	SortDiscount  = "discount"
)

// Rank orders products by the given sort key. Every sort is stable and
// breaks ties on ascending product id, so identical inputs always paginate
// identically. "best" (and any unknown key) keeps the input order, which is
// already deterministic for a snapshot. The input slice is not modified.
func Rank(products []*domain.Product, sortKey string) []*domain.Product {
	ordered := make([]*domain.Product, len(products))
	copy(ordered, products)

	var less func(a, b *domain.Product) bool

	switch sortKey {
	case SortPriceAsc:
		less = func(a, b *domain.Product) bool { return a.EffectivePrice() < b.EffectivePrice() }
	case SortPriceDesc:
		less = func(a, b *domain.Product) bool { return a.EffectivePrice() > b.EffectivePrice() }
	case SortNewest:
		less = func(a, b *domain.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortDiscount:
		// Descending discount; undiscounted products carry 0 and sort last.
		less = func(a, b *domain.Product) bool { return a.DiscountPercent > b.DiscountPercent }
	default:
		return ordered
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})

	return ordered
}

// Paginate slices an ordered sequence into the requested page window and
// reports totals. A page beyond the last yields an empty slice with the
// totals still accurate, never an error.
func Paginate(products []*domain.Product, page, pageSize int) (items []*domain.Product, totalItems, totalPages int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalItems = len(products)
	totalPages = (totalItems + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= totalItems {
		return []*domain.Product{}, totalItems, totalPages
	}

	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	return products[start:end], totalItems, totalPages
}
