// Package project ties the storage tree, the item collection, and the
// relationship graph together into a single add-on project.
package project

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/packsmith/packsmith/internal/definition"
	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
	"github.com/packsmith/packsmith/internal/vanilla"
)

// Options configures a project.
type Options struct {
	// Name is the project's display name.
	Name string

	// Namespace is the identifier namespace used for created content,
	// e.g. "acme" in "acme:copper_golem".
	Namespace string

	// BehaviorPacksDir and ResourcePacksDir name the top-level pack
	// folders relative to the project root.
	BehaviorPacksDir string
	ResourcePacksDir string

	// VersionIndex orders version-slice variant labels. A higher index is
	// a later version; labels that are not version slices return a
	// negative index. Nil selects the built-in dotted-numeric ordering.
	VersionIndex func(label string) int

	// Vanilla classifies unfulfilled references against the stock game
	// content. Nil selects the embedded token index.
	Vanilla vanilla.Index
}

func (o *Options) fillDefaults() {
	if o.BehaviorPacksDir == "" {
		o.BehaviorPacksDir = "behavior_packs"
	}
	if o.ResourcePacksDir == "" {
		o.ResourcePacksDir = "resource_packs"
	}
	if o.Namespace == "" {
		o.Namespace = "custom"
	}
	if o.VersionIndex == nil {
		o.VersionIndex = DottedVersionIndex
	}
	if o.Vanilla == nil {
		o.Vanilla = vanilla.NewEmbeddedIndex()
	}
}

// Project is the root object: a storage tree plus the items discovered or
// created within it and the relationship graph over them.
type Project struct {
	opts Options
	root storage.Folder

	mu            sync.Mutex
	items         []*item.Item
	byPath        map[string]*item.Item
	variantLabels map[string]struct{}
	reservedPaths map[string]struct{}
	observers     []func(*item.Item, item.ChangeEvent)

	graph *item.Graph
}

// New creates a project over the given root folder.
func New(root storage.Folder, opts Options) *Project {
	opts.fillDefaults()
	return &Project{
		opts:          opts,
		root:          root,
		byPath:        make(map[string]*item.Item),
		variantLabels: make(map[string]struct{}),
		reservedPaths: make(map[string]struct{}),
		graph:         item.NewGraph(),
	}
}

// Name returns the project's display name.
func (p *Project) Name() string { return p.opts.Name }

// Namespace returns the identifier namespace for created content.
func (p *Project) Namespace() string { return p.opts.Namespace }

// RootFolder returns the project's root storage folder.
func (p *Project) RootFolder() storage.Folder { return p.root }

// Graph returns the project-owned relationship graph.
func (p *Project) Graph() *item.Graph { return p.graph }

// VanillaIndex returns the vanilla token classifier.
func (p *Project) VanillaIndex() vanilla.Index { return p.opts.Vanilla }

// Items returns the project's items ordered by project path.
func (p *Project) Items() []*item.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*item.Item, len(p.items))
	copy(out, p.items)
	return out
}

// ItemsByType returns the items of a given type, ordered by project path.
func (p *Project) ItemsByType(t item.ItemType) []*item.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*item.Item
	for _, it := range p.items {
		if it.Type() == t {
			out = append(out, it)
		}
	}
	return out
}

// ItemByProjectPath returns the item at the given path, or nil.
func (p *Project) ItemByProjectPath(projectPath string) *item.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byPath[strings.ToLower(projectPath)]
}

// EnsureItemByProjectPath returns the item at the given path, creating it
// when absent. Paths are unique within a project: a second call with the
// same path returns the first item regardless of the requested type.
func (p *Project) EnsureItemByProjectPath(t item.ItemType, projectPath, name string) *item.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensureItemLocked(t, projectPath, name)
}

func (p *Project) ensureItemLocked(t item.ItemType, projectPath, name string) *item.Item {
	key := strings.ToLower(projectPath)
	if existing, ok := p.byPath[key]; ok {
		return existing
	}
	it := item.New(p, t, projectPath, name)
	p.items = append(p.items, it)
	p.byPath[key] = it
	sort.Slice(p.items, func(i, j int) bool {
		return p.items[i].ProjectPath() < p.items[j].ProjectPath()
	})
	return it
}

// AddItemFromRecord restores a persisted item into the collection. An item
// already present at the record's path wins; the record is dropped.
func (p *Project) AddItemFromRecord(rec item.ItemRecord) *item.Item {
	key := strings.ToLower(rec.ProjectPath)
	p.mu.Lock()
	if existing, ok := p.byPath[key]; ok {
		p.mu.Unlock()
		return existing
	}
	p.mu.Unlock()

	// Restoring variants registers their labels through
	// EnsureProjectVariant, which takes p.mu, so the item must be
	// built unlocked.
	it := item.FromRecord(p, rec)

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.byPath[key]; ok {
		return existing
	}
	p.items = append(p.items, it)
	p.byPath[key] = it
	sort.Slice(p.items, func(i, j int) bool {
		return p.items[i].ProjectPath() < p.items[j].ProjectPath()
	})
	return it
}

// RemoveItem detaches an item from the collection. The graph is cleaned
// up by the item's own delete path.
func (p *Project) RemoveItem(it *item.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.byPath, strings.ToLower(it.ProjectPath()))
	for i, candidate := range p.items {
		if candidate == it {
			p.items = append(p.items[:i], p.items[i+1:]...)
			break
		}
	}
}

// EnsureProjectVariant registers a variant label in the project-wide
// registry. The default label is never registered.
func (p *Project) EnsureProjectVariant(label string) {
	if label == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.variantLabels[label] = struct{}{}
}

// VariantLabels returns the registered custom variant labels, sorted.
func (p *Project) VariantLabels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.variantLabels))
	for label := range p.variantLabels {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// VersionIndex orders version-slice variant labels.
func (p *Project) VersionIndex(label string) int {
	return p.opts.VersionIndex(label)
}

// Observe registers an item change observer.
func (p *Project) Observe(fn func(*item.Item, item.ChangeEvent)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// NotifyItemChanged fans an item change out to project observers.
func (p *Project) NotifyItemChanged(it *item.Item, event item.ChangeEvent) {
	if event == item.EventPropertyChanged {
		// A rename may have moved the item; keep the path index in sync.
		p.resyncPathIndex(it)
	}
	p.mu.Lock()
	observers := make([]func(*item.Item, item.ChangeEvent), len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()
	for _, fn := range observers {
		fn(it, event)
	}
}

func (p *Project) resyncPathIndex(it *item.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(it.ProjectPath())
	if p.byPath[key] == it {
		return
	}
	for old, candidate := range p.byPath {
		if candidate == it {
			delete(p.byPath, old)
			break
		}
	}
	p.byPath[key] = it
	sort.Slice(p.items, func(i, j int) bool {
		return p.items[i].ProjectPath() < p.items[j].ProjectPath()
	})
}

// AttachManager attaches the type-specific definition manager to a file.
func (p *Project) AttachManager(ctx context.Context, it *item.Item, f storage.File) error {
	_, err := definition.EnsureOnFile(ctx, it.Type(), f)
	return err
}

// AttachFolderManager attaches a folder-level manager. Only world folders
// carry one today.
func (p *Project) AttachFolderManager(ctx context.Context, it *item.Item, fo storage.Folder) error {
	if !it.Type().IsWorldContainer() {
		return nil
	}
	_, err := definition.EnsureWorldOnFolder(ctx, fo)
	return err
}

// AutogenerateContent produces content for generated items. Generated
// items synthesize their bytes instead of reading them from storage.
func (p *Project) AutogenerateContent(ctx context.Context, it *item.Item) error {
	variant := it.DefaultVariant()
	f := variant.EnsureFileStorage(ctx)
	if f == nil {
		f, _ = storage.ResolveFile(ctx, p.root, it.ProjectPath())
	}
	if f == nil {
		return fmt.Errorf("generated item %q has no backing file", it.ProjectPath())
	}
	if f.Content() == nil {
		f.SetContent(generatedContentFor(it))
	}
	return p.AttachManager(ctx, it, f)
}

// ResolveSubPackFile resolves an item's equivalent file under the named
// resource sub-pack, or nil when the sub-pack or the file do not exist.
//
// Sub-pack content lives at <pack>/subpacks/<folder_name>/<rest>, where
// <rest> is the item's path relative to its resource pack. The sub-pack
// must be declared in the pack's manifest.
func (p *Project) ResolveSubPackFile(ctx context.Context, it *item.Item, label string) storage.File {
	packPath, rest, ok := p.splitResourcePackPath(it.ProjectPath())
	if !ok {
		return nil
	}
	folderName, ok := p.subPackFolderName(ctx, packPath, label)
	if !ok {
		return nil
	}
	candidate := packPath + "/subpacks/" + folderName + "/" + rest
	f, ok := storage.ResolveFile(ctx, p.root, candidate)
	if !ok || f == nil {
		return nil
	}
	if exists, err := f.Exists(); err != nil || !exists {
		return nil
	}
	return f
}

// splitResourcePackPath splits "/resource_packs/<pack>/<rest>" into the
// pack prefix and the pack-relative remainder.
func (p *Project) splitResourcePackPath(projectPath string) (packPath, rest string, ok bool) {
	prefix := "/" + p.opts.ResourcePacksDir + "/"
	if !strings.HasPrefix(projectPath, prefix) {
		return "", "", false
	}
	remainder := strings.TrimPrefix(projectPath, prefix)
	slash := strings.Index(remainder, "/")
	if slash < 0 {
		return "", "", false
	}
	return prefix + remainder[:slash], remainder[slash+1:], true
}

// subPackFolderName looks up the manifest of the pack at packPath and
// returns the folder name of the sub-pack whose folder name or display
// name matches the label.
func (p *Project) subPackFolderName(ctx context.Context, packPath, label string) (string, bool) {
	manifestFile, ok := storage.ResolveFile(ctx, p.root, packPath+"/manifest.json")
	if !ok || manifestFile == nil {
		return "", false
	}
	manifest, err := definition.EnsureManifestOnFile(ctx, manifestFile)
	if err != nil || manifest == nil {
		return "", false
	}
	for _, sp := range manifest.SubPacks() {
		if strings.EqualFold(sp.FolderName, label) || strings.EqualFold(sp.Name, label) {
			return sp.FolderName, true
		}
	}
	return "", false
}

// generatedContentFor synthesizes default bytes for generated items.
func generatedContentFor(it *item.Item) []byte {
	switch it.Type().DefaultExtension() {
	case "json":
		return []byte("{}\n")
	default:
		return []byte{}
	}
}

// DottedVersionIndex is the built-in version-slice comparator. It accepts
// labels of the form "v1.20.50" or "1.20.50" and folds the dotted parts
// into a single monotonic index. Non-version labels return -1.
func DottedVersionIndex(label string) int {
	s := strings.TrimPrefix(strings.ToLower(label), "v")
	if s == "" {
		return -1
	}
	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return -1
	}
	index := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 9999 {
			return -1
		}
		index = index*10000 + n
	}
	return index
}
