package catalog

import (
	"sort"

	"glowcart/internal/domain"
)

// DefaultPageSize is the browse page size when none is requested.
const DefaultPageSize = 12

// Snapshot is one immutable view of the catalog taken at the start of a
// query. The engine never refetches mid-computation, so concurrent catalog
// refreshes cannot produce a torn result.
type Snapshot struct {
	Categories []*domain.Category
	Products   []*domain.Product
}

// BrowseResult is the paged result envelope for a browse query.
type BrowseResult struct {
	Items      []*domain.Product `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// RoutineItem is the display projection of a recommended product.
type RoutineItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
	ShadeFamily string   `json:"shade_family,omitempty"`
	Badges      []string `json:"badges"`
	MatchReason string   `json:"match_reason,omitempty"`
}

// RoutineResult is the bucketed result envelope for a persona
// recommendation. Buckets may be empty; the envelope is always well-formed.
type RoutineResult struct {
	Title string `json:"title"`
	Persona
	Lips    []RoutineItem `json:"lips"`
	Eyes    []RoutineItem `json:"eyes"`
	Base    []RoutineItem `json:"base"`
	Cheeks  []RoutineItem `json:"cheeks"`
}

// Engine composes the taxonomy resolver, filter compiler, persona rules and
// ranker over one snapshot per call. It holds no state: every method is a
// pure function of its arguments and safe for unlimited concurrent use.
type Engine struct{}

// NewEngine creates a query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Browse resolves the category scope, compiles the facet filter, ranks and
// paginates. Bad filters never fail a browse: unknown categories, empty
// scopes and out-of-range pages all produce valid empty envelopes.
func (e *Engine) Browse(snap *Snapshot, query *BrowseQuery) *BrowseResult {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var catIDs map[int64]struct{}
	switch {
	case query.CategoryTreeID != nil:
		graph := NewCategoryGraph(snap.Categories)
		catIDs = graph.Descendants(*query.CategoryTreeID)
	case query.CategoryID != nil:
		catIDs = map[int64]struct{}{*query.CategoryID: {}}
	}

	matched := Filter(snap.Products, CompileFilter(query, catIDs))
	ordered := Rank(matched, query.Sort)
	items, totalItems, totalPages := Paginate(ordered, page, pageSize)

	return &BrowseResult{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Recommend derives persona rules from the request and fills each style
// bucket with its top candidates.
func (e *Engine) Recommend(snap *Snapshot, req *RoutineRequest) *RoutineResult {
	graph := NewCategoryGraph(snap.Categories)
	rules := DeriveRules(req)

	result := &RoutineResult{
		Title:   RoutineTitle(req.Skin),
		Persona: PersonaFor(req.Vibe),
	}

	for _, bucket := range Buckets {
		items := e.fillBucket(snap, graph, rules, req, bucket)
		switch bucket {
		case BucketLips:
			result.Lips = items
		case BucketEyes:
			result.Eyes = items
		case BucketBase:
			result.Base = items
		case BucketCheeks:
			result.Cheeks = items
		}
	}

	return result
}

func (e *Engine) fillBucket(snap *Snapshot, graph *CategoryGraph, rules *PersonaRules, req *RoutineRequest, bucket string) []RoutineItem {
	catIDs := graph.ResolveNames(bucketSeedNames[bucket])
	candidates := Filter(snap.Products, rules.BucketPredicate(req, bucket, catIDs))

	// Rank by score, then biggest discount, then ascending id for
	// reproducibility.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		sa, sb := rules.Score(req, a), rules.Score(req, b)
		if sa != sb {
			return sa > sb
		}
		if a.DiscountPercent != b.DiscountPercent {
			return a.DiscountPercent > b.DiscountPercent
		}
		return a.ID < b.ID
	})

	if len(candidates) > maxBucketItems {
		candidates = candidates[:maxBucketItems]
	}

	items := make([]RoutineItem, 0, len(candidates))
	for _, p := range candidates {
		items = append(items, RoutineItem{
			ID:          p.ID,
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    graph.Name(p.CategoryID),
			Price:       p.EffectivePrice(),
			ImageURL:    p.ImageURL,
			ShadeFamily: p.ShadeFamily,
			Badges:      Badges(p),
			MatchReason: matchReason(rules, req, p),
		})
	}
	return items
}

// matchReason picks one human-readable explanation for why a product made
// the routine, preferring the strongest signal.
func matchReason(rules *PersonaRules, req *RoutineRequest, p *domain.Product) string {
	if p.SkinTypeMask&rules.SkinMask != 0 {
		return "Suits your skin type"
	}
	switch req.Env {
	case EnvOutdoor:
		if p.HasSPF || p.Waterproof {
			return "Holds up outdoors"
		}
	case EnvParty:
		if hasAnyTag(p.Tags, partyTags) || p.Longwear {
			return "Made for a night out"
		}
	case EnvEvening:
		if p.PhotoFriendly {
			return "Photographs beautifully"
		}
	}
	if req.Vibe == VibeBold && (p.Longwear || p.Coverage == domain.CoverageFull) {
		return "Bold and long-lasting"
	}
	return ""
}
