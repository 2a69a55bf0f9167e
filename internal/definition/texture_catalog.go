package definition

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// TextureCatalog manages an item_texture.json or terrain_texture.json
// file: short texture names mapped to texture paths relative to the pack
// root. The two formats share structure; the item type of the owner
// distinguishes them.
type TextureCatalog struct {
	jsonDefinition
}

// EnsureTextureCatalogOnFile returns the catalog manager attached to the
// file, attaching and loading one on first access.
func EnsureTextureCatalogOnFile(ctx context.Context, f storage.File) (*TextureCatalog, error) {
	if m, ok := f.Manager().(*TextureCatalog); ok {
		return m, nil
	}
	d := &TextureCatalog{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// ReferencedTexturePaths returns every texture path the catalog maps.
// Entries may be a bare string, an object with a path field, or an array
// of either.
func (d *TextureCatalog) ReferencedTexturePaths() []string {
	var refs []string

	var collect func(value gjson.Result)
	collect = func(value gjson.Result) {
		switch {
		case value.Type == gjson.String:
			refs = append(refs, value.String())
		case value.IsObject():
			if path := value.Get("path"); path.Type == gjson.String {
				refs = append(refs, path.String())
			}
		case value.IsArray():
			value.ForEach(func(_, child gjson.Result) bool {
				collect(child)
				return true
			})
		}
	}

	d.root.Get("texture_data").ForEach(func(_, entry gjson.Result) bool {
		collect(entry.Get("textures"))
		return true
	})
	return refs
}

// TextureNames returns the short names the catalog defines.
func (d *TextureCatalog) TextureNames() []string {
	var names []string
	d.root.Get("texture_data").ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	return names
}

// AddChildItems links the texture items this catalog references; every
// unmatched path is recorded as unfulfilled, vanilla-classified.
func (d *TextureCatalog) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, ref := range d.ReferencedTexturePaths() {
		resolver.add(ref)
	}

	resolver.linkMatches(owner, view.ItemsByType(item.TypeTexture), "textures")
	resolver.linkMatches(owner, view.ItemsByType(item.TypeUITexture), "textures")
	return resolver.recordUnfulfilled(ctx, view, owner, item.TypeTexture)
}
