package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// EntityTypeResource manages a resource-pack client entity file: the
// entity's visuals and audio, referencing textures by pack-relative
// path.
type EntityTypeResource struct {
	jsonDefinition
}

// EnsureEntityTypeResourceOnFile returns the client entity manager
// attached to the file, attaching and loading one on first access.
func EnsureEntityTypeResourceOnFile(ctx context.Context, f storage.File) (*EntityTypeResource, error) {
	if m, ok := f.Manager().(*EntityTypeResource); ok {
		return m, nil
	}
	d := &EntityTypeResource{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

func (d *EntityTypeResource) description() gjson.Result {
	return d.root.Get("minecraft:client_entity.description")
}

// Identifier returns the entity's namespaced identifier, or "".
func (d *EntityTypeResource) Identifier() string {
	return d.description().Get("identifier").String()
}

// ReferencedTexturePaths returns the texture paths the client entity
// binds, including the spawn egg texture when it is a path.
func (d *EntityTypeResource) ReferencedTexturePaths() []string {
	var refs []string
	desc := d.description()

	desc.Get("textures").ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			refs = append(refs, value.String())
		}
		return true
	})
	if egg := desc.Get("spawn_egg.texture"); egg.Type == gjson.String {
		refs = append(refs, egg.String())
	}
	return refs
}

// ReferencedSoundEvents returns the sound events bound in the client
// entity's sound effect map.
func (d *EntityTypeResource) ReferencedSoundEvents() []string {
	var refs []string
	d.description().Get("sound_effects").ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			refs = append(refs, value.String())
		}
		return true
	})
	return refs
}

// AddChildItems links the textures the client entity references and
// records unmatched texture paths as unfulfilled. Vanilla classification
// matters here; vanilla entities reuse base-game textures routinely.
func (d *EntityTypeResource) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, ref := range d.ReferencedTexturePaths() {
		resolver.add(ref)
	}

	resolver.linkMatches(owner, view.ItemsByType(item.TypeTexture), "textures")
	return resolver.recordUnfulfilled(ctx, view, owner, item.TypeTexture)
}
