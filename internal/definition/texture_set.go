package definition

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/paths"
	"github.com/packsmith/packsmith/internal/storage"
)

// TextureSet manages a <name>.texture_set.json file: the PBR layer map
// (color, metalness/emissive/roughness, normal, heightmap) whose values
// name sibling texture files, usually without a folder or extension.
type TextureSet struct {
	jsonDefinition
}

// EnsureTextureSetOnFile returns the texture set manager attached to the
// file, attaching and loading one on first access.
func EnsureTextureSetOnFile(ctx context.Context, f storage.File) (*TextureSet, error) {
	if m, ok := f.Manager().(*TextureSet); ok {
		return m, nil
	}
	d := &TextureSet{jsonDefinition{file: f}}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// LayerNames returns the texture names the set's layers bind. Layer
// values that are inline color arrays or hex colors are not texture
// references and are skipped.
func (d *TextureSet) LayerNames() []string {
	var refs []string
	d.root.Get("minecraft:texture_set").ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String && !strings.HasPrefix(value.String(), "#") {
			refs = append(refs, value.String())
		}
		return true
	})
	return refs
}

// AddChildItems links the sibling textures the set's layers name.
// Matching is by base name within the set's own folder; a texture set
// belongs to the textures beside it.
func (d *TextureSet) AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error {
	resolver := newRefResolver()
	for _, ref := range d.LayerNames() {
		resolver.add(ref)
	}

	ownerFolder := folderOfPath(owner.ProjectPath())
	resolver.linkByKey(owner, view.ItemsByType(item.TypeTexture), func(candidate *item.Item) []string {
		if folderOfPath(candidate.ProjectPath()) != ownerFolder {
			return nil
		}
		return []string{baseName(candidate.ProjectPath())}
	})

	return resolver.recordUnfulfilled(ctx, view, owner, item.TypeTexture)
}

func folderOfPath(projectPath string) string {
	p := paths.InnermostSegment(projectPath)
	if idx := strings.LastIndex(p, paths.Delimiter); idx >= 0 {
		return p[:idx+1]
	}
	return ""
}

func baseName(projectPath string) string {
	p := paths.InnermostSegment(projectPath)
	if idx := strings.LastIndex(p, paths.Delimiter); idx >= 0 {
		p = p[idx+1:]
	}
	return paths.StripExtension(p)
}
