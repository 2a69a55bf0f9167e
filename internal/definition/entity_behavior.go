package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// EntityTypeBehavior manages a behavior-pack entity type file: the
// entity's identifier plus component references into loot tables, trade
// tables, and the matching client entity.
type EntityTypeBehavior struct {
	jsonDefinition
}

// EnsureEntityTypeBehaviorOnFile returns the entity manager attached to
// the file, attaching and loading one on first access.
func EnsureEntityTypeBehaviorOnFile(ctx context.Context, f storage.File) (*EntityTypeBehavior, error) {
	if m, ok := f.Manager().(*EntityTypeBehavior); ok {
		return m, nil
	}
	d := &EntityTypeBehavior{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// Identifier returns the entity's namespaced identifier, or "".
func (d *EntityTypeBehavior) Identifier() string {
	return d.root.Get("minecraft:entity.description.identifier").String()
}

// referencedTables collects table paths from a named component across
// the base components and every component group.
func (d *EntityTypeBehavior) referencedTables(component string) []string {
	var refs []string
	entity := d.root.Get("minecraft:entity")

	addFrom := func(components gjson.Result) {
		if table := components.Get(component + ".table"); table.Type == gjson.String {
			refs = append(refs, table.String())
		}
	}

	addFrom(entity.Get("components"))
	entity.Get("component_groups").ForEach(func(_, group gjson.Result) bool {
		addFrom(group)
		return true
	})
	return refs
}

// ReferencedLootTables returns the loot table paths the entity uses.
func (d *EntityTypeBehavior) ReferencedLootTables() []string {
	return d.referencedTables("minecraft:loot")
}

// ReferencedTradeTables returns the trade table paths the entity uses.
func (d *EntityTypeBehavior) ReferencedTradeTables() []string {
	refs := d.referencedTables("minecraft:trade_table")
	return append(refs, d.referencedTables("minecraft:economy_trade_table")...)
}

// AddChildItems links the entity's loot tables, trade tables, client
// entity, and spawn rules. Identifier-based candidates must be loaded
// before their identifiers can be compared.
func (d *EntityTypeBehavior) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	lootResolver := newRefResolver()
	for _, ref := range d.ReferencedLootTables() {
		lootResolver.add(ref)
	}
	lootResolver.linkMatches(owner, view.ItemsByType(item.TypeLootTableBehavior), "loot_tables")
	if err := lootResolver.recordUnfulfilled(ctx, view, owner, item.TypeLootTableBehavior); err != nil {
		return err
	}

	tradeResolver := newRefResolver()
	for _, ref := range d.ReferencedTradeTables() {
		tradeResolver.add(ref)
	}
	tradeResolver.linkMatches(owner, view.ItemsByType(item.TypeTradingBehaviorJSON), "trading")
	if err := tradeResolver.recordUnfulfilled(ctx, view, owner, item.TypeTradingBehaviorJSON); err != nil {
		return err
	}

	id := d.Identifier()
	if id == "" {
		return nil
	}

	for _, candidate := range view.ItemsByType(item.TypeEntityTypeResource) {
		if err := candidate.LoadContent(ctx); err != nil {
			return err
		}
		f := candidate.PrimaryFile(ctx)
		if f == nil {
			continue
		}
		resource, err := EnsureEntityTypeResourceOnFile(ctx, f)
		if err != nil {
			continue
		}
		if resource.Identifier() == id {
			owner.AddChildItem(candidate)
		}
	}

	for _, candidate := range view.ItemsByType(item.TypeSpawnRuleBehavior) {
		if err := candidate.LoadContent(ctx); err != nil {
			return err
		}
		f := candidate.PrimaryFile(ctx)
		if f == nil {
			continue
		}
		rule, err := EnsureSpawnRuleOnFile(ctx, f)
		if err != nil {
			continue
		}
		if rule.Identifier() == id {
			owner.AddChildItem(candidate)
		}
	}
	return nil
}

// SpawnRule manages a spawn rule file; it exists here for the entity
// linkage and exposes only its identifier.
type SpawnRule struct {
	jsonDefinition
}

// EnsureSpawnRuleOnFile returns the spawn rule manager attached to the
// file, attaching and loading one on first access.
func EnsureSpawnRuleOnFile(ctx context.Context, f storage.File) (*SpawnRule, error) {
	if m, ok := f.Manager().(*SpawnRule); ok {
		return m, nil
	}
	d := &SpawnRule{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// Identifier returns the entity identifier the spawn rule targets.
func (d *SpawnRule) Identifier() string {
	return d.root.Get("minecraft:spawn_rules.description.identifier").String()
}
