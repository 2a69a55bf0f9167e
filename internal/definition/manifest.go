package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// SubPack is one sub-pack declaration in a resource pack manifest.
type SubPack struct {
	FolderName string
	Name       string
	MemoryTier int
}

// Manifest manages a behavior or resource pack manifest.json: pack
// identity, module list, sub-packs, and UUID dependencies on other
// packs.
type Manifest struct {
	jsonDefinition
}

// EnsureManifestOnFile returns the manifest manager attached to the
// file, attaching and loading one on first access.
func EnsureManifestOnFile(ctx context.Context, f storage.File) (*Manifest, error) {
	if m, ok := f.Manager().(*Manifest); ok {
		return m, nil
	}
	d := &Manifest{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// UUID returns the pack's header UUID.
func (d *Manifest) UUID() string {
	return d.root.Get("header.uuid").String()
}

// PackName returns the pack's display name.
func (d *Manifest) PackName() string {
	return d.root.Get("header.name").String()
}

// SubPacks returns the manifest's sub-pack declarations.
func (d *Manifest) SubPacks() []SubPack {
	var subs []SubPack
	d.root.Get("subpacks").ForEach(func(_, entry gjson.Result) bool {
		subs = append(subs, SubPack{
			FolderName: entry.Get("folder_name").String(),
			Name:       entry.Get("name").String(),
			MemoryTier: int(entry.Get("memory_tier").Int()),
		})
		return true
	})
	return subs
}

// DependencyUUIDs returns the pack UUIDs this manifest depends on.
// Script module dependencies declare module_name instead of uuid and are
// not pack references.
func (d *Manifest) DependencyUUIDs() []string {
	var uuids []string
	d.root.Get("dependencies").ForEach(func(_, entry gjson.Result) bool {
		if id := entry.Get("uuid"); id.Type == gjson.String {
			uuids = append(uuids, id.String())
		}
		return true
	})
	return uuids
}

// AddChildItems links the manifests of packs this pack depends on by
// UUID; unresolved UUIDs are recorded as unfulfilled.
func (d *Manifest) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, id := range d.DependencyUUIDs() {
		resolver.add(id)
	}

	candidates := append(
		view.ItemsByType(item.TypeBehaviorPackManifestJSON),
		view.ItemsByType(item.TypeResourcePackManifestJSON)...)
	for _, candidate := range candidates {
		if err := candidate.LoadContent(ctx); err != nil {
			return err
		}
	}

	resolver.linkByKey(owner, candidates, func(candidate *item.Item) []string {
		f := candidate.PrimaryFile(ctx)
		if f == nil {
			return nil
		}
		manifest, err := EnsureManifestOnFile(ctx, f)
		if err != nil {
			return nil
		}
		return []string{manifest.UUID()}
	})

	return resolver.recordUnfulfilled(ctx, view, owner, item.TypeBehaviorPackManifestJSON)
}
