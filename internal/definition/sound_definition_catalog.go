package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// SoundDefinitionCatalog manages a sound_definitions.json file: named
// sound events, each referencing one or more audio file paths relative
// to the pack root.
type SoundDefinitionCatalog struct {
	jsonDefinition
}

// EnsureSoundDefinitionCatalogOnFile returns the catalog manager
// attached to the file, attaching and loading one on first access.
func EnsureSoundDefinitionCatalogOnFile(ctx context.Context, f storage.File) (*SoundDefinitionCatalog, error) {
	if m, ok := f.Manager().(*SoundDefinitionCatalog); ok {
		return m, nil
	}
	d := &SoundDefinitionCatalog{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// definitions returns the event-name → definition map, handling both the
// modern wrapped form and the legacy top-level form.
func (d *SoundDefinitionCatalog) definitions() gjson.Result {
	if wrapped := d.root.Get("sound_definitions"); wrapped.IsObject() {
		return wrapped
	}
	if d.root.IsObject() {
		return d.root
	}
	return gjson.Result{}
}

// EventNames returns the sound event names this catalog defines.
func (d *SoundDefinitionCatalog) EventNames() []string {
	var names []string
	d.definitions().ForEach(func(key, value gjson.Result) bool {
		if key.String() != "format_version" {
			names = append(names, key.String())
		}
		return true
	})
	return names
}

// ReferencedAudioPaths returns every audio path the catalog references,
// as written.
func (d *SoundDefinitionCatalog) ReferencedAudioPaths() []string {
	var refs []string
	d.definitions().ForEach(func(key, value gjson.Result) bool {
		if key.String() == "format_version" {
			return true
		}
		value.Get("sounds").ForEach(func(_, entry gjson.Result) bool {
			refs = append(refs, stringsFromSoundEntry(entry)...)
			return true
		})
		return true
	})
	return refs
}

// AddChildItems links the audio items this catalog references and
// records every unmatched path as an unfulfilled relationship.
func (d *SoundDefinitionCatalog) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, ref := range d.ReferencedAudioPaths() {
		resolver.add(ref)
	}

	resolver.linkMatches(owner, view.ItemsByType(item.TypeAudio), "sounds")
	return resolver.recordUnfulfilled(ctx, view, owner, item.TypeAudio)
}
