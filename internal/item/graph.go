package item

// Edge is one discovered parent→child dependency: the parent's content
// contains a reference that resolved to the child.
type Edge struct {
	Parent *Item
	Child  *Item
}

// Unfulfilled records a reference found in an item's content that could
// not be matched to any in-project item. VanillaDependent distinguishes
// "ships with the base game" from "genuinely missing".
type Unfulfilled struct {
	Parent           *Item
	Path             string
	Type             ItemType
	VanillaDependent bool
}

// Graph owns the project's relationship edges and unfulfilled
// relationships in one place. Storing edges centrally (rather than
// mirrored lists on both endpoint items) makes mirroring structural:
// a parent's child list and the child's parent list are two views of the
// same edge record and cannot go out of sync.
type Graph struct {
	edges       []Edge
	unfulfilled []Unfulfilled
}

// NewGraph creates an empty relationship graph.
func NewGraph() *Graph {
	return &Graph{}
}

// HasEdge reports whether the exact parent→child edge exists.
func (g *Graph) HasEdge(parent, child *Item) bool {
	for _, e := range g.edges {
		if e.Parent == parent && e.Child == child {
			return true
		}
	}
	return false
}

// Link adds a parent→child edge. The edge is rejected (returning false)
// when it is a self-edge, a duplicate, or would create a cycle. Rejection
// is silent: legitimate project graphs share sub-resources, so a refused
// link is an expected condition, not an error.
//
// Link never suspends; edge mutation stays synchronous so the graph is
// valid at every scheduling boundary.
func (g *Graph) Link(parent, child *Item) bool {
	if parent == nil || child == nil || parent == child {
		return false
	}
	if g.HasEdge(parent, child) {
		return false
	}
	if g.WouldBeCircular(parent, child) {
		return false
	}
	g.edges = append(g.edges, Edge{Parent: parent, Child: child})
	return true
}

// Children returns the items the given item depends on.
func (g *Graph) Children(of *Item) []*Item {
	var out []*Item
	for _, e := range g.edges {
		if e.Parent == of {
			out = append(out, e.Child)
		}
	}
	return out
}

// Parents returns the items that depend on the given item.
func (g *Graph) Parents(of *Item) []*Item {
	var out []*Item
	for _, e := range g.edges {
		if e.Child == of {
			out = append(out, e.Parent)
		}
	}
	return out
}

// Edges returns the full edge list.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// RemoveItem removes every edge and unfulfilled relationship touching the
// item, in both directions.
func (g *Graph) RemoveItem(it *Item) {
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Parent != it && e.Child != it {
			kept = append(kept, e)
		}
	}
	g.edges = kept

	keptU := g.unfulfilled[:0]
	for _, u := range g.unfulfilled {
		if u.Parent != it {
			keptU = append(keptU, u)
		}
	}
	g.unfulfilled = keptU
}

// WouldBeCircular reports whether adding parent→child would create a
// cycle. The walk starts at the candidate child and follows existing
// edges; re-encountering the candidate parent means the new edge would
// close a loop.
func (g *Graph) WouldBeCircular(parent, child *Item) bool {
	if parent == child {
		return true
	}
	// Items without a project path cannot be identity-compared by path,
	// so they are always safe to link.
	if parent.ProjectPath() == "" || child.ProjectPath() == "" {
		return false
	}
	visited := make(map[string]struct{})
	return g.walkReaches(child, parent, visited, true, false)
}

// walkReaches is the directional reachability walk behind
// WouldBeCircular. Once the walk turns downward it stays downward, and
// vice versa; without that pruning a diamond (two parents sharing one
// child) would be falsely flagged as circular.
func (g *Graph) walkReaches(from, target *Item, visited map[string]struct{}, dontGoUpward, dontGoDownward bool) bool {
	path := from.ProjectPath()
	if path == "" {
		return false
	}
	if _, seen := visited[path]; seen {
		return false
	}
	visited[path] = struct{}{}

	if from == target || path == target.ProjectPath() {
		return true
	}

	if !dontGoDownward {
		for _, child := range g.Children(from) {
			if g.walkReaches(child, target, visited, true, false) {
				return true
			}
		}
	}
	if !dontGoUpward {
		for _, parent := range g.Parents(from) {
			if g.walkReaches(parent, target, visited, false, true) {
				return true
			}
		}
	}
	return false
}

// RootAncestors collects every item reachable upward from the given item
// that itself has no parents: the root set of the item's connected
// component. An item with no parents is its own root.
func (g *Graph) RootAncestors(of *Item) []*Item {
	visited := make(map[*Item]struct{})
	var roots []*Item

	var walk func(it *Item)
	walk = func(it *Item) {
		if _, seen := visited[it]; seen {
			return
		}
		visited[it] = struct{}{}

		parents := g.Parents(it)
		if len(parents) == 0 {
			roots = append(roots, it)
			return
		}
		for _, p := range parents {
			walk(p)
		}
	}

	walk(of)
	return roots
}

// Category type sets behind the IsXRelated family.
var (
	blockCategoryTypes    = []ItemType{TypeBlockTypeBehavior, TypeTerrainTextureCatalog}
	entityCategoryTypes   = []ItemType{TypeEntityTypeBehavior, TypeEntityTypeResource, TypeSpawnRuleBehavior}
	itemCategoryTypes     = []ItemType{TypeItemTypeBehavior, TypeItemTextureCatalog, TypeAttachableResourceJSON}
	particleCategoryTypes = []ItemType{TypeParticleJSON}
	uiCategoryTypes       = []ItemType{TypeUIJSON, TypeUITexture, TypeNinesliceJSON}
)

// IsRelatedToCategory reports whether the item is transitively connected,
// in either direction, to an item of any of the given types. A visited
// set guards against cycles and shared sub-resources.
func (g *Graph) IsRelatedToCategory(it *Item, types ...ItemType) bool {
	visited := make(map[*Item]struct{})
	return g.relatedWalk(it, types, visited)
}

func (g *Graph) relatedWalk(it *Item, types []ItemType, visited map[*Item]struct{}) bool {
	if _, seen := visited[it]; seen {
		return false
	}
	visited[it] = struct{}{}

	for _, t := range types {
		if it.Type() == t {
			return true
		}
	}
	for _, child := range g.Children(it) {
		if g.relatedWalk(child, types, visited) {
			return true
		}
	}
	for _, parent := range g.Parents(it) {
		if g.relatedWalk(parent, types, visited) {
			return true
		}
	}
	return false
}

// IsBlockRelated reports whether the item connects to block content.
func (g *Graph) IsBlockRelated(it *Item) bool {
	return g.IsRelatedToCategory(it, blockCategoryTypes...)
}

// IsEntityRelated reports whether the item connects to entity content.
func (g *Graph) IsEntityRelated(it *Item) bool {
	return g.IsRelatedToCategory(it, entityCategoryTypes...)
}

// IsItemRelated reports whether the item connects to inventory-item content.
func (g *Graph) IsItemRelated(it *Item) bool {
	return g.IsRelatedToCategory(it, itemCategoryTypes...)
}

// IsParticleRelated reports whether the item connects to particle content.
func (g *Graph) IsParticleRelated(it *Item) bool {
	return g.IsRelatedToCategory(it, particleCategoryTypes...)
}

// IsUIRelated reports whether the item connects to UI content.
func (g *Graph) IsUIRelated(it *Item) bool {
	return g.IsRelatedToCategory(it, uiCategoryTypes...)
}

// AddUnfulfilled records an unresolved reference on a parent item. The
// same (parent, path) pair is recorded once.
func (g *Graph) AddUnfulfilled(parent *Item, path string, t ItemType, vanillaDependent bool) {
	for _, u := range g.unfulfilled {
		if u.Parent == parent && u.Path == path {
			return
		}
	}
	g.unfulfilled = append(g.unfulfilled, Unfulfilled{
		Parent:           parent,
		Path:             path,
		Type:             t,
		VanillaDependent: vanillaDependent,
	})
}

// UnfulfilledFor returns the unresolved references recorded on an item.
func (g *Graph) UnfulfilledFor(parent *Item) []Unfulfilled {
	var out []Unfulfilled
	for _, u := range g.unfulfilled {
		if u.Parent == parent {
			out = append(out, u)
		}
	}
	return out
}

// AllUnfulfilled returns every recorded unresolved reference.
func (g *Graph) AllUnfulfilled() []Unfulfilled {
	return g.unfulfilled
}

// ClearUnfulfilledFor drops an item's unresolved references, typically
// just before its relationships are recalculated.
func (g *Graph) ClearUnfulfilledFor(parent *Item) {
	kept := g.unfulfilled[:0]
	for _, u := range g.unfulfilled {
		if u.Parent != parent {
			kept = append(kept, u)
		}
	}
	g.unfulfilled = kept
}
