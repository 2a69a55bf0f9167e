package project

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/names"
	"github.com/packsmith/packsmith/internal/storage"
	"github.com/packsmith/packsmith/internal/template"
)

// maxAllocationProbes bounds the numeric suffix search during path
// allocation.
const maxAllocationProbes = 10000

// EnsureAvailableFilePath finds a free file path for a new item: it
// probes "<base>.<ext>", "<base>1.<ext>", "<base>2.<ext>" and so on under
// folderPath until a candidate collides with nothing on disk, nothing in
// the item collection, and nothing allocated earlier in this session.
// The winning path is reserved immediately, so two allocations with the
// same inputs never return the same path even before the first file is
// materialized. folderPath may address the inside of a container.
func (p *Project) EnsureAvailableFilePath(ctx context.Context, folderPath, base, ext string) (string, error) {
	folder, ok := storage.ResolveFolder(ctx, p.root, folderPath)
	if !ok || folder == nil {
		return "", fmt.Errorf("folder %q is not reachable", folderPath)
	}
	if err := folder.Load(ctx); err != nil {
		return "", err
	}

	prefix := compositePrefix(folderPath)
	for i := 0; i < maxAllocationProbes; i++ {
		name := base
		if i > 0 {
			name += strconv.Itoa(i)
		}
		if ext != "" {
			name += "." + ext
		}
		candidate := folder.EnsureFile(name)
		projectPath := prefix + candidate.ProjectPath()
		if p.pathTaken(projectPath, candidate) {
			continue
		}
		p.mu.Lock()
		p.reservedPaths[strings.ToLower(projectPath)] = struct{}{}
		p.mu.Unlock()
		return projectPath, nil
	}
	return "", fmt.Errorf("no free path for %q under %q", base, folderPath)
}

func (p *Project) pathTaken(projectPath string, candidate storage.File) bool {
	p.mu.Lock()
	_, reserved := p.reservedPaths[strings.ToLower(projectPath)]
	_, itemized := p.byPath[strings.ToLower(projectPath)]
	p.mu.Unlock()
	if reserved || itemized {
		return true
	}
	if candidate.IsContentLoaded() && candidate.Content() != nil {
		return true
	}
	exists, err := candidate.Exists()
	return err != nil || exists
}

// compositePrefix returns the container layers of a composite folder
// path, including the trailing container delimiter, or "".
func compositePrefix(folderPath string) string {
	if idx := strings.LastIndex(folderPath, storage.ContainerDelimiter); idx >= 0 {
		return folderPath[:idx+1]
	}
	return ""
}

// CreateItem creates a new item of the given type from a display name:
// it picks the conventional folder, allocates a free file path, seeds the
// file with starter content carrying the project-namespaced identifier,
// and registers the item.
func (p *Project) CreateItem(ctx context.Context, t item.ItemType, displayName string) (*item.Item, error) {
	if t.Storage() == item.StorageFolder {
		return nil, fmt.Errorf("cannot create folder-backed items of type %s", t)
	}
	vals := template.ValuesFor(p.opts.Namespace, displayName)

	folderPath, err := p.defaultFolderPathFor(ctx, t)
	if err != nil {
		return nil, err
	}
	projectPath, err := p.EnsureAvailableFilePath(ctx, folderPath, vals.Name, t.DefaultExtension())
	if err != nil {
		return nil, err
	}

	f, ok := storage.ResolveFile(ctx, p.root, projectPath)
	if !ok || f == nil {
		return nil, fmt.Errorf("allocated path %q is not reachable", projectPath)
	}
	f.SetContent(seedContentFor(t, vals))
	if err := p.saveCreated(ctx, projectPath, f); err != nil {
		return nil, err
	}

	it := p.EnsureItemByProjectPath(t, projectPath, vals.Name)
	it.SetCreationType(item.CreationNormal)
	p.NotifyItemChanged(it, item.EventPropertyChanged)
	return it, nil
}

// saveCreated persists a freshly seeded file. Files inside containers
// cannot be flushed through the outer store here; their archive is saved
// when the enclosing container item is saved.
func (p *Project) saveCreated(ctx context.Context, projectPath string, f storage.File) error {
	if strings.Contains(projectPath, storage.ContainerDelimiter) {
		return nil
	}
	return f.Save(ctx)
}

func seedContentFor(t item.ItemType, vals template.Values) []byte {
	if t.IsImage() || t == item.TypeAudio {
		return []byte{}
	}
	if t.DefaultExtension() == "json" {
		return template.ForType(t, vals)
	}
	return []byte{}
}

// defaultFolderPathFor picks the folder a new item of the given type goes
// into. An existing item of the same type establishes the convention and
// its folder is reused; otherwise the type's conventional root under the
// appropriate pack is used.
func (p *Project) defaultFolderPathFor(ctx context.Context, t item.ItemType) (string, error) {
	if existing := p.ItemsByType(t); len(existing) > 0 {
		return parentFolderPath(existing[0].ProjectPath()), nil
	}

	packPath, err := p.ensurePackPath(ctx, t)
	if err != nil {
		return "", err
	}
	root := t.PrimaryFolderRoot()
	if root == "" {
		return packPath, nil
	}
	return packPath + "/" + root, nil
}

// parentFolderPath strips the final path segment, staying inside the
// innermost container of a composite path.
func parentFolderPath(projectPath string) string {
	hash := strings.LastIndex(projectPath, storage.ContainerDelimiter)
	slash := strings.LastIndex(projectPath, storage.Delimiter)
	if slash <= hash+1 {
		return projectPath[:hash+1]
	}
	return projectPath[:slash]
}

// behaviorSideTypes is consulted to decide which pack a new item belongs
// to; everything else defaults to the resource side.
var behaviorSideTypes = map[item.ItemType]struct{}{
	item.TypeBehaviorPackManifestJSON:        {},
	item.TypeEntityTypeBehavior:              {},
	item.TypeBlockTypeBehavior:               {},
	item.TypeItemTypeBehavior:                {},
	item.TypeLootTableBehavior:               {},
	item.TypeRecipeBehavior:                  {},
	item.TypeSpawnRuleBehavior:               {},
	item.TypeTradingBehaviorJSON:             {},
	item.TypeDialogueBehaviorJSON:            {},
	item.TypeFeatureBehavior:                 {},
	item.TypeFeatureRuleBehavior:             {},
	item.TypeBiomeBehavior:                   {},
	item.TypeFunction:                        {},
	item.TypeStructure:                       {},
	item.TypeTickJSON:                        {},
	item.TypeVolumeBehaviorJSON:              {},
	item.TypeCameraBehaviorJSON:              {},
	item.TypeAnimationBehaviorJSON:           {},
	item.TypeAnimationControllerBehaviorJSON: {},
	item.TypeJS:                              {},
	item.TypeTS:                              {},
}

// ensurePackPath returns the pack folder new items of the given type are
// created under, materializing the pack (with a seeded manifest) when the
// project has none yet.
func (p *Project) ensurePackPath(ctx context.Context, t item.ItemType) (string, error) {
	_, behavior := behaviorSideTypes[t]

	manifestType := item.TypeResourcePackManifestJSON
	packsDir := p.opts.ResourcePacksDir
	suffix := "_rp"
	if behavior {
		manifestType = item.TypeBehaviorPackManifestJSON
		packsDir = p.opts.BehaviorPacksDir
		suffix = "_bp"
	}

	if manifests := p.ItemsByType(manifestType); len(manifests) > 0 {
		return parentFolderPath(manifests[0].ProjectPath()), nil
	}

	packName := names.FileComponent(p.opts.Name)
	if packName == "" {
		packName = "pack"
	}
	packPath := "/" + packsDir + "/" + packName + suffix

	folder, ok := storage.ResolveFolder(ctx, p.root, packPath)
	if !ok || folder == nil {
		return "", fmt.Errorf("pack folder %q is not reachable", packPath)
	}
	if err := folder.EnsureExists(ctx); err != nil {
		return "", err
	}

	manifestFile := folder.EnsureFile("manifest.json")
	if taken := p.pathTaken(packPath+"/manifest.json", manifestFile); !taken {
		manifestFile.SetContent(template.ForType(manifestType, template.ValuesFor(p.opts.Namespace, p.opts.Name)))
		if err := manifestFile.Save(ctx); err != nil {
			return "", err
		}
		p.EnsureItemByProjectPath(manifestType, packPath+"/manifest.json", "manifest")
	}
	return packPath, nil
}
