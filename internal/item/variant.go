package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/packsmith/packsmith/internal/storage"
)

// VariantType classifies what a labeled storage binding represents.
type VariantType int

const (
	// VariantGeneral is a plain alternate binding.
	VariantGeneral VariantType = iota
	// VariantSubPack binds the item's equivalent file inside a resource
	// sub-pack folder named after the label.
	VariantSubPack
	// VariantVersionSlice binds a version-sliced copy living in a sibling
	// version-suffixed pack folder; the label is the version string.
	VariantVersionSlice
	// VariantVersionSliceAlt is a secondary version slice binding.
	VariantVersionSliceAlt
)

var variantTypeNames = map[VariantType]string{
	VariantGeneral:         "general",
	VariantSubPack:         "subPack",
	VariantVersionSlice:    "versionSlice",
	VariantVersionSliceAlt: "versionSliceAlt",
}

func (v VariantType) String() string {
	if n, ok := variantTypeNames[v]; ok {
		return n
	}
	return "general"
}

// ParseVariantType returns the variant type for a serialized name.
func ParseVariantType(name string) VariantType {
	for v, n := range variantTypeNames {
		if n == name {
			return v
		}
	}
	return VariantGeneral
}

// ErrInvalidVariantLabel indicates a label that cannot be used as a
// lookup key. Unlike storage failures this is a programming or data
// error at the call site, so it is surfaced as an error, not absorbed.
var ErrInvalidVariantLabel = errors.New("invalid variant label")

// DefaultVariantLabel is the label of the default/primary variant.
const DefaultVariantLabel = ""

// CanonicalizeLabel normalizes a variant label and validates it as a
// lookup key.
func CanonicalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if strings.ContainsAny(label, "/\\#\n\r\t") {
		return "", fmt.Errorf("%w: %q", ErrInvalidVariantLabel, label)
	}
	return label, nil
}

// Variant is one (label, storage binding) pair of a project item: the
// default binding, a sub-pack binding, or a version slice. It resolves
// its own file or folder lazily, descending through nested archive
// containers when the path is composite.
type Variant struct {
	item *Item

	label       string
	variantType VariantType

	// projectPath overrides the owning item's path when set; version
	// slices live in sibling version-suffixed pack folders.
	projectPath string

	errorStatus  ErrorStatus
	errorMessage string

	file   storage.File
	folder storage.Folder

	fileLoadProcessed   bool
	folderLoadProcessed bool
}

// Label returns the variant's canonical label.
func (v *Variant) Label() string { return v.label }

// VariantType returns what kind of binding this variant is.
func (v *Variant) VariantType() VariantType { return v.variantType }

// SetVariantType reclassifies the binding.
func (v *Variant) SetVariantType(t VariantType) { v.variantType = t }

// IsDefault reports whether this is the default/primary variant.
func (v *Variant) IsDefault() bool { return v.label == DefaultVariantLabel }

// ProjectPath returns the variant's path override, or "" when the
// variant follows the owning item's path.
func (v *Variant) ProjectPath() string { return v.projectPath }

// SetProjectPath sets the variant's path override and drops any stale
// binding.
func (v *Variant) SetProjectPath(p string) {
	if v.projectPath == p {
		return
	}
	v.projectPath = p
	v.file = nil
	v.folder = nil
	v.fileLoadProcessed = false
	v.folderLoadProcessed = false
	v.item.invalidatePrimaryFile()
}

// EffectiveProjectPath returns the path this variant binds: its own
// override if set, otherwise the owning item's path.
func (v *Variant) EffectiveProjectPath() string {
	if v.projectPath != "" {
		return v.projectPath
	}
	return v.item.ProjectPath()
}

// ErrorStatus returns the variant's recorded load problem, if any.
func (v *Variant) ErrorStatus() ErrorStatus { return v.errorStatus }

// ErrorMessage returns the recorded problem description.
func (v *Variant) ErrorMessage() string { return v.errorMessage }

func (v *Variant) setError(status ErrorStatus, message string) {
	v.errorStatus = status
	v.errorMessage = message
}

// File returns the bound file, or nil if storage has not been resolved.
func (v *Variant) File() storage.File { return v.file }

// Folder returns the bound folder, or nil if storage has not been
// resolved.
func (v *Variant) Folder() storage.Folder { return v.folder }

// EnsureFileStorage binds the variant's file, descending through any
// nested archive containers in the path. A nil result means the target
// does not exist or could not be traversed; that is an expected state,
// never an error to abort on.
func (v *Variant) EnsureFileStorage(ctx context.Context) storage.File {
	if v.item.Type().Storage() != StorageFile {
		return nil
	}
	if v.file != nil {
		return v.file
	}

	projectPath := v.EffectiveProjectPath()
	if projectPath == "" || !strings.HasPrefix(projectPath, storage.Delimiter) {
		if v.variantType == VariantSubPack {
			// No explicit path: resolve indirectly through the enclosing
			// pack's sub-pack whose folder name equals this label.
			if f := v.item.host.ResolveSubPackFile(ctx, v.item, v.label); f != nil {
				v.file = f
				v.item.invalidatePrimaryFile()
			}
		}
		return v.file
	}

	f, ok := storage.ResolveFile(ctx, v.item.host.RootFolder(), projectPath)
	if !ok {
		return nil
	}
	v.file = f
	v.item.invalidatePrimaryFile()
	return f
}

// LoadFileStorage ensures the bound file's bytes are loaded. It is
// idempotent; the processed flag guards re-entry. Container-format items
// additionally get their container manager attached, with container-level
// problems recorded as error status rather than returned.
func (v *Variant) LoadFileStorage(ctx context.Context) error {
	if v.fileLoadProcessed {
		return nil
	}

	f := v.EnsureFileStorage(ctx)
	if f == nil {
		v.fileLoadProcessed = true
		return nil
	}

	if err := f.LoadContent(ctx); err != nil {
		return err
	}
	v.fileLoadProcessed = true
	v.item.host.NotifyItemChanged(v.item, EventFileRetrieved)

	if v.item.Type().IsContainer() && len(f.Content()) > 0 {
		if storage.ArchiveViewOf(ctx, f) == nil {
			v.setError(ErrorUnprocessable, fmt.Sprintf("could not read %s as a container archive", f.ProjectPath()))
		} else if v.item.Type().IsWorldContainer() {
			if err := v.item.host.AttachManager(ctx, v.item, f); err != nil {
				v.setError(ErrorUnprocessable, err.Error())
			}
		}
	}

	return nil
}

// EnsureFolderStorage binds the variant's folder for folder-backed items,
// mirroring EnsureFileStorage's failure semantics.
func (v *Variant) EnsureFolderStorage(ctx context.Context) storage.Folder {
	if v.item.Type().Storage() != StorageFolder {
		return nil
	}
	if v.folder != nil {
		return v.folder
	}

	projectPath := v.EffectiveProjectPath()
	if projectPath == "" || !strings.HasPrefix(projectPath, storage.Delimiter) {
		return nil
	}

	fo, ok := storage.ResolveFolder(ctx, v.item.host.RootFolder(), projectPath)
	if !ok {
		return nil
	}
	v.folder = fo
	return fo
}

// LoadFolderStorage loads the bound folder's listing. World folders get
// their world manager attached before the loaded notification fires.
func (v *Variant) LoadFolderStorage(ctx context.Context) error {
	if v.folderLoadProcessed {
		return nil
	}

	fo := v.EnsureFolderStorage(ctx)
	if fo == nil {
		v.folderLoadProcessed = true
		return nil
	}

	if err := fo.Load(ctx); err != nil {
		return err
	}
	v.folderLoadProcessed = true

	if v.item.Type() == TypeWorldFolder {
		if err := v.item.host.AttachFolderManager(ctx, v.item, fo); err != nil {
			v.setError(ErrorUnprocessable, err.Error())
		}
	}
	v.item.host.NotifyItemChanged(v.item, EventFileRetrieved)
	return nil
}
