package project

import (
	"github.com/packsmith/packsmith/internal/index"
	"github.com/packsmith/packsmith/internal/item"
)

// BuildSnapshot captures the project's current items, edges, and
// unfulfilled references for persistence.
func (p *Project) BuildSnapshot() index.Snapshot {
	var snap index.Snapshot
	for _, it := range p.Items() {
		snap.Items = append(snap.Items, it.Record())
	}
	for _, e := range p.graph.Edges() {
		snap.Edges = append(snap.Edges, index.EdgeRecord{
			ParentPath: e.Parent.ProjectPath(),
			ChildPath:  e.Child.ProjectPath(),
		})
	}
	for _, u := range p.graph.AllUnfulfilled() {
		snap.Unfulfilled = append(snap.Unfulfilled, index.UnfulfilledRecord{
			ParentPath: u.Parent.ProjectPath(),
			Path:       u.Path,
			Type:       u.Type.String(),
			Vanilla:    u.VanillaDependent,
		})
	}
	snap.VariantLabels = p.VariantLabels()
	return snap
}

// SaveIndex writes the project's state into the index database.
func (p *Project) SaveIndex(d *index.Database) error {
	if err := d.ReplaceAll(p.BuildSnapshot()); err != nil {
		return err
	}
	return d.Analyze()
}

// RestoreSnapshot rebuilds the item collection and graph from a
// previously persisted snapshot. Edges whose endpoints are missing from
// the item set are dropped; unfulfilled entries are replayed verbatim.
func (p *Project) RestoreSnapshot(snap index.Snapshot) {
	for _, rec := range snap.Items {
		p.AddItemFromRecord(rec)
	}
	for _, e := range snap.Edges {
		parent := p.ItemByProjectPath(e.ParentPath)
		child := p.ItemByProjectPath(e.ChildPath)
		if parent == nil || child == nil {
			continue
		}
		p.graph.Link(parent, child)
	}
	for _, u := range snap.Unfulfilled {
		parent := p.ItemByProjectPath(u.ParentPath)
		if parent == nil {
			continue
		}
		t, ok := item.ParseItemType(u.Type)
		if !ok {
			t = item.TypeUnknown
		}
		p.graph.AddUnfulfilled(parent, u.Path, t, u.Vanilla)
	}
	for _, label := range snap.VariantLabels {
		p.EnsureProjectVariant(label)
	}
}

// LoadIndex restores the project's state from the index database.
func (p *Project) LoadIndex(d *index.Database) error {
	snap, err := d.LoadSnapshot()
	if err != nil {
		return err
	}
	p.RestoreSnapshot(snap)
	return nil
}
