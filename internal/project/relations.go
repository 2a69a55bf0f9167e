package project

import (
	"context"
	"errors"

	"github.com/packsmith/packsmith/internal/definition"
	"github.com/packsmith/packsmith/internal/item"
)

// CalculateForItem recomputes an item's outgoing relationships from its
// loaded definition. Previously recorded unfulfilled references for the
// item are discarded first, so the pass is idempotent; fulfilled edges
// already in the graph are deduplicated by the graph itself.
func (p *Project) CalculateForItem(ctx context.Context, it *item.Item) error {
	if err := it.LoadContent(ctx); err != nil {
		return err
	}
	p.graph.ClearUnfulfilledFor(it)

	f := it.PrimaryFile(ctx)
	if f == nil {
		return nil
	}
	adder, ok := f.Manager().(definition.ChildAdder)
	if !ok {
		return nil
	}
	return adder.AddChildItems(ctx, p, it)
}

// CalculateAll recomputes relationships for every item, in path order.
// Items whose content cannot be loaded are skipped and reported together
// after the pass completes.
func (p *Project) CalculateAll(ctx context.Context) error {
	var errs []error
	for _, it := range p.Items() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.CalculateForItem(ctx, it); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UnresolvedReport pairs an item with its unfulfilled references, split
// by whether they name stock game content.
type UnresolvedReport struct {
	Item    *item.Item
	Vanilla []item.Unfulfilled
	Missing []item.Unfulfilled
}

// UnresolvedReferences summarizes every unfulfilled reference in the
// graph, grouped by the item that holds it.
func (p *Project) UnresolvedReferences() []UnresolvedReport {
	var out []UnresolvedReport
	for _, it := range p.Items() {
		entries := p.graph.UnfulfilledFor(it)
		if len(entries) == 0 {
			continue
		}
		report := UnresolvedReport{Item: it}
		for _, u := range entries {
			if u.VanillaDependent {
				report.Vanilla = append(report.Vanilla, u)
			} else {
				report.Missing = append(report.Missing, u)
			}
		}
		out = append(out, report)
	}
	return out
}
