package catalog

import (
	"reflect"
	"testing"

	"glowcart/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Feature: beauty-catalog, Property 5: Ranking is stable and deterministic
// Validates: Requirements 4.5
func TestProperty_RankIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ranking identical inputs twice yields identical order", prop.ForAll(
		func(prices []int) bool {
			products := make([]*domain.Product, 0, len(prices))
			for i, cents := range prices {
				products = append(products, product(int64(i+1), func(p *domain.Product) {
					// Coarse buckets force plenty of price ties.
					p.Price = float64(cents % 3)
				}))
			}

			first := ids(Rank(products, SortPriceAsc))
			second := ids(Rank(products, SortPriceAsc))
			if !reflect.DeepEqual(first, second) {
				t.Logf("FAIL: %v != %v", first, second)
				return false
			}

			// Equal prices must resolve by ascending id.
			ranked := Rank(products, SortPriceAsc)
			for i := 1; i < len(ranked); i++ {
				a, b := ranked[i-1], ranked[i]
				if a.EffectivePrice() == b.EffectivePrice() && a.ID > b.ID {
					t.Logf("FAIL: tie between %d and %d not broken by id", a.ID, b.ID)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRankSortKeys(t *testing.T) {
	products := []*domain.Product{
		product(1, func(p *domain.Product) { p.Price = 30 }),
		product(2, func(p *domain.Product) { p.Price = 10; p.DiscountPercent = 20 }), // effective 8
		product(3, func(p *domain.Product) { p.Price = 20 }),
	}

	tests := []struct {
		sortKey string
		want    []int64
	}{
		{SortPriceAsc, []int64{2, 3, 1}},
		{SortPriceDesc, []int64{1, 3, 2}},
		// CreatedAt grows with id in the fixture
		{SortNewest, []int64{3, 2, 1}},
		{SortDiscount, []int64{2, 1, 3}},
		{SortBest, []int64{1, 2, 3}},
		{"bogus", []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.sortKey, func(t *testing.T) {
			if got := ids(Rank(products, tt.sortKey)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rank(%s) = %v, want %v", tt.sortKey, got, tt.want)
			}
		})
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	products := []*domain.Product{
		product(2, func(p *domain.Product) { p.Price = 5 }),
		product(1, func(p *domain.Product) { p.Price = 1 }),
	}

	Rank(products, SortPriceAsc)
	if !reflect.DeepEqual(ids(products), []int64{2, 1}) {
		t.Error("Rank must not reorder its input slice")
	}
}

// Feature: beauty-catalog, Property 6: Pagination reports exact totals
// Validates: Requirements 4.5
func TestPaginateTotals(t *testing.T) {
	products := make([]*domain.Product, 25)
	for i := range products {
		products[i] = product(int64(i+1), nil)
	}

	items, totalItems, totalPages := Paginate(products, 1, 12)
	if len(items) != 12 || totalItems != 25 || totalPages != 3 {
		t.Errorf("page 1: got len=%d totalItems=%d totalPages=%d", len(items), totalItems, totalPages)
	}

	items, totalItems, totalPages = Paginate(products, 3, 12)
	if len(items) != 1 || totalItems != 25 || totalPages != 3 {
		t.Errorf("page 3: got len=%d totalItems=%d totalPages=%d", len(items), totalItems, totalPages)
	}

	// Out of range pages yield an empty slice with totals intact.
	items, totalItems, totalPages = Paginate(products, 4, 12)
	if len(items) != 0 || totalItems != 25 || totalPages != 3 {
		t.Errorf("page 4: got len=%d totalItems=%d totalPages=%d", len(items), totalItems, totalPages)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	items, totalItems, totalPages := Paginate(nil, 1, 12)
	if len(items) != 0 || totalItems != 0 || totalPages != 0 {
		t.Errorf("empty input: got len=%d totalItems=%d totalPages=%d", len(items), totalItems, totalPages)
	}
}

func TestProperty_PaginationCoversEveryItemExactlyOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("concatenated pages reproduce the ordered sequence", prop.ForAll(
		func(n, pageSize int) bool {
			products := make([]*domain.Product, n)
			for i := range products {
				products[i] = product(int64(i+1), nil)
			}

			_, _, totalPages := Paginate(products, 1, pageSize)
			var seen []int64
			for page := 1; page <= totalPages; page++ {
				items, _, _ := Paginate(products, page, pageSize)
				seen = append(seen, ids(items)...)
			}

			return reflect.DeepEqual(seen, ids(products)) || (n == 0 && len(seen) == 0)
		},
		gen.IntRange(0, 60),
		gen.IntRange(1, 15),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
