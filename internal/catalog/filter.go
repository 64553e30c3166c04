package catalog

import (
	"strings"

	"glowcart/internal/domain"
)

// Predicate is a composable boolean filter over products. Compiled filters
// stay portable across storage backends: any backend that can evaluate a
// product projection can evaluate the predicate.
type Predicate func(*domain.Product) bool

// And combines two predicates conjunctively.
func (p Predicate) And(q Predicate) Predicate {
	return func(prod *domain.Product) bool {
		return p(prod) && q(prod)
	}
}

// Or combines two predicates disjunctively.
func (p Predicate) Or(q Predicate) Predicate {
	return func(prod *domain.Product) bool {
		return p(prod) || q(prod)
	}
}

// BrowseQuery is the multi-facet filter input for catalog browsing.
// Every field is optional; a nil pointer, empty slice, empty string or zero
// mask means "no constraint on this facet".
type BrowseQuery struct {
	Page     int
	PageSize int

	CategoryID     *int64
	CategoryTreeID *int64

	Query string
	Sort  string

	PriceMin *float64
	PriceMax *float64

	InStock    *bool
	Discounted *bool

	Brands []string
	Colors []string
	Sizes  []string

	SkinTypeMask int
	Finish       string
	Coverage     string

	HasSPF         *bool
	FragranceFree  *bool
	NonComedogenic *bool

	MinRating *int
}

// CompileFilter builds the single conjunctive predicate for a browse query.
// catIDs is the resolved category scope: nil means "no category constraint",
// an empty set means the scope resolved to nothing and the predicate matches
// zero products (never an error).
func CompileFilter(q *BrowseQuery, catIDs map[int64]struct{}) Predicate {
	clauses := []Predicate{
		// Inactive products never surface in browse results.
		func(p *domain.Product) bool { return p.IsActive },
	}

	if catIDs != nil {
		scope := catIDs
		clauses = append(clauses, func(p *domain.Product) bool {
			_, ok := scope[p.CategoryID]
			return ok
		})
	}

	if q.PriceMin != nil {
		min := *q.PriceMin
		clauses = append(clauses, func(p *domain.Product) bool { return p.EffectivePrice() >= min })
	}
	if q.PriceMax != nil {
		max := *q.PriceMax
		clauses = append(clauses, func(p *domain.Product) bool { return p.EffectivePrice() <= max })
	}

	if q.InStock != nil && *q.InStock {
		clauses = append(clauses, func(p *domain.Product) bool { return p.StockQuantity > 0 })
	}
	if q.Discounted != nil && *q.Discounted {
		clauses = append(clauses, func(p *domain.Product) bool { return p.DiscountPercent > 0 })
	}

	if len(q.Brands) > 0 {
		clauses = append(clauses, fieldInSet(q.Brands, func(p *domain.Product) string { return p.Brand }))
	}
	if len(q.Colors) > 0 {
		clauses = append(clauses, fieldInSet(q.Colors, func(p *domain.Product) string { return p.Color }))
	}
	if len(q.Sizes) > 0 {
		clauses = append(clauses, fieldInSet(q.Sizes, func(p *domain.Product) string { return p.Size }))
	}

	if q.SkinTypeMask != 0 {
		mask := q.SkinTypeMask
		clauses = append(clauses, func(p *domain.Product) bool { return MatchesSkin(p.SkinTypeMask, mask) })
	}

	if q.Finish != "" {
		finish := q.Finish
		clauses = append(clauses, func(p *domain.Product) bool { return p.Finish == finish })
	}
	if q.Coverage != "" {
		coverage := q.Coverage
		clauses = append(clauses, func(p *domain.Product) bool { return p.Coverage == coverage })
	}

	if q.HasSPF != nil {
		want := *q.HasSPF
		clauses = append(clauses, func(p *domain.Product) bool { return p.HasSPF == want })
	}
	if q.FragranceFree != nil {
		want := *q.FragranceFree
		clauses = append(clauses, func(p *domain.Product) bool { return p.FragranceFree == want })
	}
	if q.NonComedogenic != nil {
		want := *q.NonComedogenic
		clauses = append(clauses, func(p *domain.Product) bool { return p.NonComedogenic == want })
	}

	if q.MinRating != nil {
		min := float64(*q.MinRating)
		// Products that were never rated fail a minimum-rating clause.
		clauses = append(clauses, func(p *domain.Product) bool {
			return p.RatingCount > 0 && p.RatingAverage >= min
		})
	}

	if text := strings.TrimSpace(q.Query); text != "" {
		needle := strings.ToLower(text)
		clauses = append(clauses, func(p *domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Brand), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle)
		})
	}

	return func(p *domain.Product) bool {
		for _, clause := range clauses {
			if !clause(p) {
				return false
			}
		}
		return true
	}
}

// fieldInSet builds an exact, case-sensitive set-membership clause. Matching
// is deliberately not normalized; see the facet semantics of the browse API.
func fieldInSet(values []string, field func(*domain.Product) string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(p *domain.Product) bool {
		_, ok := set[field(p)]
		return ok
	}
}

// Filter returns the products satisfying the predicate, preserving input
// order.
func Filter(products []*domain.Product, pred Predicate) []*domain.Product {
	matched := []*domain.Product{}
	for _, p := range products {
		if pred(p) {
			matched = append(matched, p)
		}
	}
	return matched
}
