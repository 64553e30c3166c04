package catalog

import (
	"strings"

	"glowcart/internal/domain"
)

// CategoryGraph is an immutable in-memory view of the category taxonomy,
// built from the flat category records. It never follows object pointers;
// all traversal goes through the derived parent -> children index, so a
// malformed cycle in the data can never loop a query.
type CategoryGraph struct {
	names    map[int64]string
	children map[int64][]int64
}

// NewCategoryGraph builds the adjacency index from a flat category list.
func NewCategoryGraph(categories []*domain.Category) *CategoryGraph {
	g := &CategoryGraph{
		names:    make(map[int64]string, len(categories)),
		children: make(map[int64][]int64),
	}

	for _, c := range categories {
		g.names[c.ID] = c.Name
		if c.ParentID != nil {
			g.children[*c.ParentID] = append(g.children[*c.ParentID], c.ID)
		}
	}

	return g
}

// Name returns the display name of a category, or "" when unknown.
func (g *CategoryGraph) Name(id int64) string {
	return g.names[id]
}

// Descendants returns the id set of rootID plus every category reachable by
// following parent -> child edges from it. An unknown rootID resolves to an
// empty set; callers decide whether that means "no results" or "unscoped".
func (g *CategoryGraph) Descendants(rootID int64) map[int64]struct{} {
	result := make(map[int64]struct{})
	if _, ok := g.names[rootID]; !ok {
		return result
	}

	// BFS with a visited set: each id is enqueued at most once, so a cycle
	// in the parent relation terminates after visiting every node once.
	result[rootID] = struct{}{}
	queue := []int64{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, child := range g.children[current] {
			if _, seen := result[child]; seen {
				continue
			}
			result[child] = struct{}{}
			queue = append(queue, child)
		}
	}

	return result
}

// ResolveNames returns the ids of every category whose name matches one of
// the given names (case-insensitive), plus the direct children of each
// matched category. This is one level of child inclusion, not the transitive
// closure: it models "a named style bucket plus its immediate subcategories".
func (g *CategoryGraph) ResolveNames(names []string) map[int64]struct{} {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = struct{}{}
	}

	result := make(map[int64]struct{})
	for id, name := range g.names {
		if _, ok := wanted[strings.ToLower(name)]; !ok {
			continue
		}
		result[id] = struct{}{}
		for _, child := range g.children[id] {
			result[child] = struct{}{}
		}
	}

	return result
}
