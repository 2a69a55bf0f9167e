// Package storage provides the hierarchical content store the project item
// model is built on. Two backends are provided: an OS directory tree and a
// zip archive view. Files may themselves be archive containers; composite
// project paths address content inside them (see composite.go).
package storage

import "context"

// Delimiter separates path segments in project paths.
// Project paths are root-relative and always start with Delimiter.
const Delimiter = "/"

// ContainerDelimiter separates nested-archive segments in a composite
// project path, e.g. "/packs/world.mcworld#behavior_packs/main/manifest.json".
const ContainerDelimiter = "#"

// ContentManager is a typed content object attached to a file by a higher
// layer. The file caches the manager so repeated lookups find the same
// parsed object rather than re-parsing.
type ContentManager interface {
	// Load parses the file's content into the manager's typed form.
	Load(ctx context.Context) error

	// Persist writes the manager's typed form back into the file's content.
	Persist() error
}

// File is a single file node in a store.
type File interface {
	Name() string
	Parent() Folder

	// ProjectPath returns the root-relative path of this file within its
	// own store, e.g. "/textures/blocks/stone.png". Paths inside nested
	// archives are relative to the archive root, not the outer project.
	ProjectPath() string

	Exists() (bool, error)

	// LoadContent loads the file's bytes if not already loaded. Loading a
	// file that does not exist is not an error; Content stays nil.
	LoadContent(ctx context.Context) error

	IsContentLoaded() bool

	// Content returns the file's bytes, or nil if not loaded or absent.
	Content() []byte

	// SetContent replaces the file's bytes and marks it modified.
	SetContent(data []byte)

	// IsModified reports whether the file has unsaved edits.
	IsModified() bool

	Save(ctx context.Context) error
	Delete(ctx context.Context) error

	// Manager returns the attached typed content object, if any.
	Manager() ContentManager
	SetManager(m ContentManager)

	// Archive returns the cached nested-archive view over this file's
	// bytes, or nil if none has been materialized yet.
	Archive() *ZipStorage
	SetArchive(z *ZipStorage)
}

// Folder is a directory node in a store.
type Folder interface {
	Name() string
	Parent() Folder

	// ProjectPath returns the root-relative path of this folder with a
	// trailing delimiter, e.g. "/textures/blocks/". The root folder's
	// path is "/".
	ProjectPath() string

	Exists() (bool, error)

	// Load populates the folder's child listing from the backing store.
	// It is idempotent; call with force via Reload semantics is not needed
	// at this layer.
	Load(ctx context.Context) error

	// EnsureFile returns the named child file node, creating the node
	// (not the backing storage) if absent.
	EnsureFile(name string) File

	// EnsureFolder returns the named child folder node, creating the node
	// if absent.
	EnsureFolder(name string) Folder

	// EnsureFileFromRelativePath resolves a delimiter-separated relative
	// path to a file node, creating intermediate folder nodes as needed.
	EnsureFileFromRelativePath(rel string) (File, error)

	// EnsureFolderFromRelativePath resolves a delimiter-separated relative
	// path to a folder node, creating intermediate nodes as needed.
	EnsureFolderFromRelativePath(rel string) (Folder, error)

	// Files returns the known child files, keyed by name. Call Load first
	// to populate from the backing store.
	Files() map[string]File

	// Folders returns the known child folders, keyed by name.
	Folders() map[string]Folder

	// EnsureExists materializes the backing directory.
	EnsureExists(ctx context.Context) error
}

// joinProjectPath builds a child path from a parent folder path and name.
func joinProjectPath(parent Folder, name string, isFolder bool) string {
	base := Delimiter
	if parent != nil {
		base = parent.ProjectPath()
	}
	p := base + name
	if isFolder {
		p += Delimiter
	}
	return p
}
