package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// SoundCatalog manages a sounds.json file: per-entity, per-block, and
// interactive sound bindings that reference sound events defined in
// sound definition catalogs.
type SoundCatalog struct {
	jsonDefinition
}

// EnsureSoundCatalogOnFile returns the catalog manager attached to the
// file, attaching and loading one on first access.
func EnsureSoundCatalogOnFile(ctx context.Context, f storage.File) (*SoundCatalog, error) {
	if m, ok := f.Manager().(*SoundCatalog); ok {
		return m, nil
	}
	d := &SoundCatalog{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// ReferencedEventNames returns every sound event name the catalog binds,
// across entity, block, interactive, and individual event sections.
func (d *SoundCatalog) ReferencedEventNames() []string {
	var refs []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		refs = append(refs, name)
	}

	var collect func(value gjson.Result)
	collect = func(value gjson.Result) {
		switch {
		case value.Type == gjson.String:
			// A bare string at an event position names a sound event.
			add(value.String())
		case value.IsObject():
			if sound := value.Get("sound"); sound.Type == gjson.String {
				add(sound.String())
			}
			value.ForEach(func(key, child gjson.Result) bool {
				if key.String() != "sound" {
					collect(child)
				}
				return true
			})
		case value.IsArray():
			value.ForEach(func(_, child gjson.Result) bool {
				collect(child)
				return true
			})
		}
	}

	for _, section := range []string{"entity_sounds", "block_sounds", "interactive_sounds", "individual_event_sounds"} {
		collect(d.root.Get(section))
	}
	return refs
}

// AddChildItems links the sound definition catalogs that define the
// events this catalog references; unmatched event names are recorded as
// unfulfilled, vanilla-classified per token.
func (d *SoundCatalog) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, name := range d.ReferencedEventNames() {
		resolver.add(name)
	}

	candidates := view.ItemsByType(item.TypeSoundDefinitionCatalog)
	for _, candidate := range candidates {
		// Event definitions live in the candidate's content; it has to be
		// loaded before its names can be read.
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
