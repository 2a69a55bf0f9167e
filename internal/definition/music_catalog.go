package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// MusicCatalog manages a music_definitions.json file: per-area music
// bindings referencing sound events.
type MusicCatalog struct {
	jsonDefinition
}

// EnsureMusicCatalogOnFile returns the catalog manager attached to the
// file, attaching and loading one on first access.
func EnsureMusicCatalogOnFile(ctx context.Context, f storage.File) (*MusicCatalog, error) {
	if m, ok := f.Manager().(*MusicCatalog); ok {
		return m, nil
	}
	d := &MusicCatalog{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// ReferencedEventNames returns the sound event each music area binds.
func (d *MusicCatalog) ReferencedEventNames() []string {
	var refs []string
	d.root.ForEach(func(_, area gjson.Result) bool {
		if event := area.Get("event_name"); event.Type == gjson.String {
			refs = append(refs, event.String())
		}
		return true
	})
	return refs
}

// AddChildItems links the sound definition catalogs defining the music
// events this catalog references.
func (d *MusicCatalog) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, name := range d.ReferencedEventNames() {
		resolver.add(name)
	}

	candidates := view.ItemsByType(item.TypeSoundDefinitionCatalog)
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
		catalog, err := EnsureSoundDefinitionCatalogOnFile(ctx, f)
		if err != nil {
			return nil
		}
		return catalog.EventNames()
	})

	return resolver.recordUnfulfilled(ctx, view, owner, item.TypeSoundDefinitionCatalog)
}
