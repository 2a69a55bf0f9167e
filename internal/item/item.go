package item

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/packsmith/packsmith/internal/storage"
)

// ChangeEvent describes what changed about an item.
type ChangeEvent int

const (
	EventFileRetrieved ChangeEvent = iota
	EventLoaded
	EventPropertyChanged
	EventRemoved
)

// Host is the narrow view an item needs of its owning project. The
// project supplies storage, manager attachment, variant label ordering,
// and change notification; the item supplies everything else.
type Host interface {
	// RootFolder returns the project's root storage folder.
	RootFolder() storage.Folder

	// AttachManager attaches the type-specific definition manager to the
	// file, when the item's type requires one. Attaching is idempotent.
	AttachManager(ctx context.Context, it *Item, f storage.File) error

	// AttachFolderManager attaches a folder-level manager (world folders).
	AttachFolderManager(ctx context.Context, it *Item, fo storage.Folder) error

	// AutogenerateContent produces content for generated items instead of
	// reading raw bytes.
	AutogenerateContent(ctx context.Context, it *Item) error

	// ResolveSubPackFile resolves the item's equivalent file under the
	// named resource sub-pack, or nil when the sub-pack does not exist.
	ResolveSubPackFile(ctx context.Context, it *Item, label string) storage.File

	// EnsureProjectVariant registers a variant label in the project-wide
	// variant registry.
	EnsureProjectVariant(label string)

	// VersionIndex is the injected monotonic comparator for version-slice
	// labels: a higher index means a later version. Non-version labels
	// return a negative index.
	VersionIndex(label string) int

	// NotifyItemChanged fans an item change out to project observers.
	NotifyItemChanged(it *Item, event ChangeEvent)

	// RemoveItem detaches a deleted item from the project's collection.
	RemoveItem(it *Item)

	// Graph returns the project-owned relationship graph.
	Graph() *Graph
}

// maxInlineImageBytes caps the size of images inlined as data URIs by
// ImageURL; anything larger is cached as "no preview".
const maxInlineImageBytes = 65536

// Item is one addressable content unit tracked by a project: a file or
// folder, typed by the closed ItemType enumeration, with zero or more
// labeled storage variants and membership in the project relationship
// graph.
type Item struct {
	host Host

	itemType       ItemType
	projectPath    string
	name           string
	tags           []string
	creationType   CreationType
	editPreference EditPreference
	errorStatus    ErrorStatus
	errorMessage   string

	variants map[string]*Variant

	// Single-flight load state: the first loader creates inflight and
	// closes it when done; concurrent callers wait on it and observe the
	// same completed result.
	mu       sync.Mutex
	inflight chan struct{}
	loaded   bool
	loadErr  error

	isFileContentProcessed bool

	primaryFile      storage.File
	primaryLabel     string
	primaryFileValid bool

	imageURL      string
	imageURLValid bool
}

// New creates an item owned by the given host.
func New(host Host, itemType ItemType, projectPath, name string) *Item {
	return &Item{
		host:        host,
		itemType:    itemType,
		projectPath: projectPath,
		name:        name,
		variants:    make(map[string]*Variant),
	}
}

// Type returns the item's content kind.
func (it *Item) Type() ItemType { return it.itemType }

// ProjectPath returns the item's root-relative (possibly composite) path.
func (it *Item) ProjectPath() string { return it.projectPath }

// Name returns the item's name, deriving one from the project path when
// unset.
func (it *Item) Name() string {
	if it.name != "" {
		return it.name
	}
	return baseNameFromPath(it.projectPath)
}

// SetName updates the item's name and notifies observers.
func (it *Item) SetName(name string) {
	if it.name == name {
		return
	}
	it.name = name
	it.host.NotifyItemChanged(it, EventPropertyChanged)
}

// CreationType returns how the item came to exist.
func (it *Item) CreationType() CreationType { return it.creationType }

// SetCreationType records how the item came to exist.
func (it *Item) SetCreationType(c CreationType) { it.creationType = c }

// EditPreference returns the item's edit preference.
func (it *Item) EditPreference() EditPreference { return it.editPreference }

// SetEditPreference records the item's edit preference.
func (it *Item) SetEditPreference(p EditPreference) { it.editPreference = p }

// ErrorStatus returns the item-level recorded load problem, if any.
func (it *Item) ErrorStatus() ErrorStatus { return it.errorStatus }

// ErrorMessage returns the recorded problem description.
func (it *Item) ErrorMessage() string { return it.errorMessage }

// SetError records an item-level load problem. Degraded content renders
// as an error field, never a thrown failure.
func (it *Item) SetError(status ErrorStatus, message string) {
	it.errorStatus = status
	it.errorMessage = message
}

// Tags returns the item's tags sorted.
func (it *Item) Tags() []string {
	out := append([]string(nil), it.tags...)
	sort.Strings(out)
	return out
}

// HasTag reports whether the item carries the tag.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EnsureTag adds a tag if absent.
func (it *Item) EnsureTag(tag string) {
	if !it.HasTag(tag) {
		it.tags = append(it.tags, tag)
	}
}

// RemoveTag removes a tag if present.
func (it *Item) RemoveTag(tag string) {
	for i, t := range it.tags {
		if t == tag {
			it.tags = append(it.tags[:i], it.tags[i+1:]...)
			return
		}
	}
}

// EnsureVariant canonicalizes the label and returns the variant for it,
// constructing the variant and registering the label project-wide on
// first access. An invalid label is a caller contract violation and
// returns an error.
func (it *Item) EnsureVariant(label string) (*Variant, error) {
	canonical, err := CanonicalizeLabel(label)
	if err != nil {
		return nil, err
	}

	if v, ok := it.variants[canonical]; ok {
		return v, nil
	}

	v := &Variant{item: it, label: canonical}
	it.variants[canonical] = v
	if canonical != DefaultVariantLabel {
		it.host.EnsureProjectVariant(canonical)
	}
	it.invalidatePrimaryFile()
	return v, nil
}

// Variant returns the variant for a label, or nil if it has not been
// created.
func (it *Item) Variant(label string) *Variant {
	canonical, err := CanonicalizeLabel(label)
	if err != nil {
		return nil
	}
	return it.variants[canonical]
}

// DefaultVariant returns the default variant, creating it when the item
// has no custom variants. The default binding exists exactly when the
// item resolves storage directly or has nothing else.
func (it *Item) DefaultVariant() *Variant {
	if v, ok := it.variants[DefaultVariantLabel]; ok {
		return v
	}
	if len(it.variants) == 0 {
		v, _ := it.EnsureVariant(DefaultVariantLabel)
		return v
	}
	return nil
}

// VariantLabels returns all variant labels, default first, then custom
// labels in importance order.
func (it *Item) VariantLabels() []string {
	labels := make([]string, 0, len(it.variants))
	for label := range it.variants {
		if label != DefaultVariantLabel {
			labels = append(labels, label)
		}
	}
	it.sortByImportance(labels)
	if _, ok := it.variants[DefaultVariantLabel]; ok {
		labels = append([]string{DefaultVariantLabel}, labels...)
	}
	return labels
}

// sortByImportance orders custom labels: version slices first, later
// versions first, then the rest alphabetically.
func (it *Item) sortByImportance(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		vi, vj := it.host.VersionIndex(labels[i]), it.host.VersionIndex(labels[j])
		if (vi >= 0) != (vj >= 0) {
			return vi >= 0
		}
		if vi >= 0 && vj >= 0 && vi != vj {
			return vi > vj
		}
		return labels[i] < labels[j]
	})
}

// HasVersionSliceVariants reports whether any custom variant is a
// version slice.
func (it *Item) HasVersionSliceVariants() bool {
	for _, v := range it.variants {
		if v.variantType == VariantVersionSlice || v.variantType == VariantVersionSliceAlt {
			return true
		}
	}
	return false
}

func (it *Item) invalidatePrimaryFile() {
	it.primaryFileValid = false
	it.primaryFile = nil
	it.primaryLabel = ""
}

// PrimaryFile returns the single file that best represents this item
// right now: version-slice variants win by version order, then the
// default file, then the first custom variant with a bound file, and as
// a last resort the default variant's file even without content. The
// result is memoized until the variant set changes; a nil result means
// "no file", never an error.
func (it *Item) PrimaryFile(ctx context.Context) storage.File {
	f, _ := it.primaryFileAndLabel(ctx)
	return f
}

// PrimaryVariantLabel returns the label of the variant PrimaryFile is
// drawn from.
func (it *Item) PrimaryVariantLabel(ctx context.Context) string {
	_, label := it.primaryFileAndLabel(ctx)
	return label
}

func (it *Item) primaryFileAndLabel(ctx context.Context) (storage.File, string) {
	if it.primaryFileValid {
		return it.primaryFile, it.primaryLabel
	}

	var best storage.File
	bestLabel := DefaultVariantLabel

	if it.HasVersionSliceVariants() {
		for _, label := range it.customLabelsByImportance() {
			v := it.variants[label]
			if v.variantType != VariantVersionSlice && v.variantType != VariantVersionSliceAlt {
				continue
			}
			if f := v.EnsureFileStorage(ctx); f != nil {
				best, bestLabel = f, label
				break
			}
		}
	}

	if best == nil {
		if dv := it.DefaultVariant(); dv != nil {
			if f := dv.EnsureFileStorage(ctx); f != nil && fileHasContent(ctx, f) {
				best, bestLabel = f, DefaultVariantLabel
			}
		}
	}

	if best == nil {
		for _, label := range it.customLabelsByImportance() {
			if f := it.variants[label].EnsureFileStorage(ctx); f != nil {
				best, bestLabel = f, label
				break
			}
		}
	}

	if best == nil {
		// Last resort: the default file even without content, so callers
		// get a best-effort file or nil rather than a hard error.
		if dv := it.DefaultVariant(); dv != nil {
			if f := dv.EnsureFileStorage(ctx); f != nil {
				best, bestLabel = f, DefaultVariantLabel
			}
		}
	}

	it.primaryFile = best
	it.primaryLabel = bestLabel
	it.primaryFileValid = true
	return best, bestLabel
}

func (it *Item) customLabelsByImportance() []string {
	var labels []string
	for label := range it.variants {
		if label != DefaultVariantLabel {
			labels = append(labels, label)
		}
	}
	it.sortByImportance(labels)
	return labels
}

func fileHasContent(ctx context.Context, f storage.File) bool {
	exists, err := f.Exists()
	return err == nil && exists
}

// DefaultFile returns the default variant's bound file, resolving it
// lazily.
func (it *Item) DefaultFile(ctx context.Context) storage.File {
	dv := it.DefaultVariant()
	if dv == nil {
		return nil
	}
	return dv.EnsureFileStorage(ctx)
}

// DefaultFolder returns the default variant's bound folder for
// folder-backed items.
func (it *Item) DefaultFolder(ctx context.Context) storage.Folder {
	dv := it.DefaultVariant()
	if dv == nil {
		return nil
	}
	return dv.EnsureFolderStorage(ctx)
}

// IsLoaded reports whether content loading has completed.
func (it *Item) IsLoaded() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.loaded
}

// LoadContent is the single entry point for making an item's bytes and
// type-specific definition ready. At most one underlying load runs at a
// time: a caller arriving while a load is in flight waits for that load
// and observes its result.
func (it *Item) LoadContent(ctx context.Context) error {
	for {
		it.mu.Lock()
		if it.loaded {
			err := it.loadErr
			it.mu.Unlock()
			return err
		}
		if it.inflight == nil {
			break
		}
		ch := it.inflight
		it.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	ch := make(chan struct{})
	it.inflight = ch
	it.mu.Unlock()

	err := it.load(ctx)

	it.mu.Lock()
	it.loaded = true
	it.loadErr = err
	it.inflight = nil
	close(ch)
	it.mu.Unlock()

	if err == nil {
		it.host.NotifyItemChanged(it, EventLoaded)
	}
	return err
}

// load performs the actual storage and definition load.
func (it *Item) load(ctx context.Context) error {
	if it.creationType == CreationGenerated {
		return it.host.AutogenerateContent(ctx, it)
	}

	if it.itemType.Storage() == StorageFolder {
		return it.loadFolder(ctx)
	}
	return it.loadFileContent(ctx)
}

func (it *Item) loadFileContent(ctx context.Context) error {
	for _, label := range it.VariantLabels() {
		if err := it.variants[label].LoadFileStorage(ctx); err != nil {
			return err
		}
	}
	if len(it.variants) == 0 {
		if dv := it.DefaultVariant(); dv != nil {
			if err := dv.LoadFileStorage(ctx); err != nil {
				return err
			}
		}
	}

	f := it.PrimaryFile(ctx)
	if f == nil {
		it.isFileContentProcessed = true
		return nil
	}
	if err := f.LoadContent(ctx); err != nil {
		return err
	}

	if err := it.host.AttachManager(ctx, it, f); err != nil {
		// Unprocessable content degrades to an item error field.
		it.SetError(ErrorUnprocessable, err.Error())
	}
	it.isFileContentProcessed = true
	return nil
}

func (it *Item) loadFolder(ctx context.Context) error {
	dv := it.DefaultVariant()
	if dv == nil {
		return nil
	}
	if err := dv.LoadFolderStorage(ctx); err != nil {
		return err
	}
	it.isFileContentProcessed = true
	return nil
}

// IsContentProcessed reports whether type-specific post-load processing
// has run.
func (it *Item) IsContentProcessed() bool { return it.isFileContentProcessed }

// AddChildItem links other as a dependency of this item. Self-edges,
// duplicates, and edges that would create a cycle are silently not
// inserted.
func (it *Item) AddChildItem(other *Item) bool {
	return it.host.Graph().Link(it, other)
}

// AddParentItem links other as a dependent of this item.
func (it *Item) AddParentItem(other *Item) bool {
	return it.host.Graph().Link(other, it)
}

// ChildItems returns the items this item depends on.
func (it *Item) ChildItems() []*Item {
	return it.host.Graph().Children(it)
}

// ParentItems returns the items depending on this item.
func (it *Item) ParentItems() []*Item {
	return it.host.Graph().Parents(it)
}

// Rename moves the item's backing file to a new base name within its
// folder, then updates the item's identity from the moved file.
func (it *Item) Rename(ctx context.Context, newBaseName string) error {
	// Rename must see current state.
	if err := it.LoadContent(ctx); err != nil {
		return err
	}

	f := it.PrimaryFile(ctx)
	if f == nil {
		return fmt.Errorf("item %s has no file to rename", it.Name())
	}
	if err := f.LoadContent(ctx); err != nil {
		return err
	}

	ext := extensionOf(f.Name())
	newName := newBaseName
	if ext != "" {
		newName += "." + ext
	}

	parent := f.Parent()
	if parent == nil {
		return fmt.Errorf("item %s has no parent folder", it.Name())
	}
	target := parent.EnsureFile(newName)
	target.SetContent(f.Content())
	if err := target.Save(ctx); err != nil {
		return err
	}
	if err := f.Delete(ctx); err != nil {
		return err
	}

	it.name = newBaseName
	it.projectPath = replaceFinalSegment(it.projectPath, target.ProjectPath())
	if dv := it.variants[DefaultVariantLabel]; dv != nil {
		dv.file = target
		dv.fileLoadProcessed = false
	}
	it.invalidatePrimaryFile()
	it.host.NotifyItemChanged(it, EventPropertyChanged)
	return nil
}

// DeleteItem removes the item: every relationship edge that references
// it is removed from both endpoints, the backing file is deleted, and
// the item leaves the project's collection.
func (it *Item) DeleteItem(ctx context.Context) error {
	if err := it.LoadContent(ctx); err != nil {
		return err
	}

	it.host.Graph().RemoveItem(it)

	if it.itemType.Storage() == StorageFile {
		if f := it.PrimaryFile(ctx); f != nil {
			if err := f.Delete(ctx); err != nil {
				return err
			}
		}
	}

	it.host.RemoveItem(it)
	it.host.NotifyItemChanged(it, EventRemoved)
	return nil
}

// NeedsSave reports whether any state backing the item has unsaved
// edits: a generated item never materialized, a modified bound file, or
// an unflushed nested archive view.
func (it *Item) NeedsSave(ctx context.Context) bool {
	if it.creationType == CreationGenerated {
		f := it.PrimaryFile(ctx)
		if f == nil {
			return true
		}
		if exists, err := f.Exists(); err == nil && !exists && !f.IsModified() {
			return true
		}
	}

	for _, v := range it.variants {
		if v.file == nil {
			continue
		}
		if v.file.IsModified() {
			return true
		}
		if zs := v.file.Archive(); zs != nil && zs.IsModified() {
			return true
		}
	}
	return false
}

// thumbnailer is implemented by world managers that can supply an inline
// preview image.
type thumbnailer interface {
	Thumbnail() string
}

// ImageURL returns an inline preview for image and world items: a world
// thumbnail for world kinds, or a data URI for raster images under the
// inline size cap. Oversized images and .tga files are cached as "no
// preview" instead of being reconsidered on every call.
func (it *Item) ImageURL(ctx context.Context) string {
	if it.imageURLValid {
		return it.imageURL
	}

	if it.itemType.IsWorldContainer() {
		if f := it.PrimaryFile(ctx); f != nil {
			if t, ok := f.Manager().(thumbnailer); ok {
				it.imageURL = t.Thumbnail()
				it.imageURLValid = true
				return it.imageURL
			}
		}
		return ""
	}

	if !it.itemType.IsImage() {
		return ""
	}

	f := it.PrimaryFile(ctx)
	if f == nil {
		return ""
	}
	if err := f.LoadContent(ctx); err != nil {
		return ""
	}
	data := f.Content()

	ext := strings.ToLower(extensionOf(f.Name()))
	if len(data) == 0 || len(data) > maxInlineImageBytes || ext == "tga" {
		it.imageURL = ""
		it.imageURLValid = true
		return ""
	}

	mime := "image/png"
	switch ext {
	case "jpg", "jpeg":
		mime = "image/jpeg"
	case "gif":
		mime = "image/gif"
	}
	it.imageURL = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	it.imageURLValid = true
	return it.imageURL
}

// baseNameFromPath derives a display name from the final path segment,
// extension stripped.
func baseNameFromPath(projectPath string) string {
	segments := storage.SplitComposite(projectPath)
	last := segments[len(segments)-1]
	if idx := strings.LastIndex(last, storage.Delimiter); idx >= 0 {
		last = last[idx+1:]
	}
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}

func extensionOf(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return ""
}

// replaceFinalSegment swaps the final container segment of a composite
// path for the moved file's new in-container path.
func replaceFinalSegment(projectPath, newFinal string) string {
	segments := storage.SplitComposite(projectPath)
	segments[len(segments)-1] = newFinal
	return storage.JoinComposite(segments...)
}
