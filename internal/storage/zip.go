package storage

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ZipStorage is a store backed by a zip archive held in memory. It serves
// both standalone archives and the nested container views materialized
// over container files (.mcworld, .mcaddon, .zip) during composite path
// traversal.
type ZipStorage struct {
	root     *zipFolder
	modified bool
}

// FromBytes reads a zip archive into a new store. The entry listing is
// built eagerly; entry contents are decompressed on demand.
func FromBytes(data []byte) (*ZipStorage, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	z := NewZipStorage()
	for _, entry := range reader.File {
		name := strings.Trim(strings.ReplaceAll(entry.Name, "\\", Delimiter), Delimiter)
		if name == "" {
			continue
		}
		if entry.FileInfo().IsDir() {
			if _, err := z.root.EnsureFolderFromRelativePath(name); err != nil {
				return nil, err
			}
			continue
		}
		f, err := z.root.EnsureFileFromRelativePath(name)
		if err != nil {
			return nil, err
		}
		f.(*zipFile).entry = entry
	}
	return z, nil
}

// NewZipStorage creates an empty in-memory store.
func NewZipStorage() *ZipStorage {
	z := &ZipStorage{}
	z.root = &zipFolder{
		storage: z,
		files:   make(map[string]*zipFile),
		folders: make(map[string]*zipFolder),
	}
	return z
}

// RootFolder returns the archive's root folder.
func (z *ZipStorage) RootFolder() Folder {
	return z.root
}

// IsModified reports whether the archive has content edits that have not
// been flushed back to its container.
func (z *ZipStorage) IsModified() bool {
	return z.modified
}

// ClearModified marks the archive as flushed.
func (z *ZipStorage) ClearModified() {
	z.modified = false
}

// ToBytes serializes the archive, loading any entries that have not been
// read yet so nothing is dropped.
func (z *ZipStorage) ToBytes(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	var walk func(folder *zipFolder) error
	walk = func(folder *zipFolder) error {
		names := make([]string, 0, len(folder.files))
		for name := range folder.files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			file := folder.files[name]
			if err := file.LoadContent(ctx); err != nil {
				return err
			}
			if file.content == nil {
				continue
			}
			entryName := strings.TrimPrefix(file.ProjectPath(), Delimiter)
			entry, err := w.Create(entryName)
			if err != nil {
				return err
			}
			if _, err := entry.Write(file.content); err != nil {
				return err
			}
		}

		subNames := make([]string, 0, len(folder.folders))
		for name := range folder.folders {
			subNames = append(subNames, name)
		}
		sort.Strings(subNames)
		for _, name := range subNames {
			if err := walk(folder.folders[name]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(z.root); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type zipFolder struct {
	storage *ZipStorage
	name    string
	parent  *zipFolder
	files   map[string]*zipFile
	folders map[string]*zipFolder
}

func (f *zipFolder) Name() string { return f.name }

func (f *zipFolder) Parent() Folder {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *zipFolder) ProjectPath() string {
	if f.parent == nil {
		return Delimiter
	}
	return joinProjectPath(f.parent, f.name, true)
}

func (f *zipFolder) Exists() (bool, error) { return true, nil }

func (f *zipFolder) Load(ctx context.Context) error { return nil }

func (f *zipFolder) EnsureFile(name string) File {
	if existing, ok := f.files[name]; ok {
		return existing
	}
	nf := &zipFile{name: name, parent: f}
	f.files[name] = nf
	return nf
}

func (f *zipFolder) EnsureFolder(name string) Folder {
	if existing, ok := f.folders[name]; ok {
		return existing
	}
	nf := &zipFolder{
		storage: f.storage,
		name:    name,
		parent:  f,
		files:   make(map[string]*zipFile),
		folders: make(map[string]*zipFolder),
	}
	f.folders[name] = nf
	return nf
}

func (f *zipFolder) EnsureFileFromRelativePath(rel string) (File, error) {
	parentRel, base, err := splitRelativePath(rel)
	if err != nil {
		return nil, err
	}
	parent := Folder(f)
	if parentRel != "" {
		parent, err = f.EnsureFolderFromRelativePath(parentRel)
		if err != nil {
			return nil, err
		}
	}
	return parent.EnsureFile(base), nil
}

func (f *zipFolder) EnsureFolderFromRelativePath(rel string) (Folder, error) {
	segments, err := relativeSegments(rel)
	if err != nil {
		return nil, err
	}
	current := Folder(f)
	for _, seg := range segments {
		current = current.EnsureFolder(seg)
	}
	return current, nil
}

func (f *zipFolder) Files() map[string]File {
	out := make(map[string]File, len(f.files))
	for name, file := range f.files {
		out[name] = file
	}
	return out
}

func (f *zipFolder) Folders() map[string]Folder {
	out := make(map[string]Folder, len(f.folders))
	for name, folder := range f.folders {
		out[name] = folder
	}
	return out
}

func (f *zipFolder) EnsureExists(ctx context.Context) error { return nil }

type zipFile struct {
	name     string
	parent   *zipFolder
	entry    *zip.File
	content  []byte
	loaded   bool
	modified bool
	manager  ContentManager
	archive  *ZipStorage
}

func (f *zipFile) Name() string   { return f.name }
func (f *zipFile) Parent() Folder { return f.parent }

func (f *zipFile) ProjectPath() string {
	return joinProjectPath(f.parent, f.name, false)
}

func (f *zipFile) Exists() (bool, error) {
	return f.entry != nil || f.content != nil, nil
}

func (f *zipFile) LoadContent(ctx context.Context) error {
	if f.loaded {
		return nil
	}
	if f.entry == nil {
		// Node exists but has no backing entry; absent is not an error.
		f.loaded = true
		return nil
	}
	rc, err := f.entry.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.ProjectPath(), err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read archive entry %s: %w", f.ProjectPath(), err)
	}
	f.content = data
	f.loaded = true
	return nil
}

func (f *zipFile) IsContentLoaded() bool { return f.loaded }
func (f *zipFile) Content() []byte      { return f.content }

func (f *zipFile) SetContent(data []byte) {
	f.content = data
	f.loaded = true
	f.modified = true
	f.parent.storage.modified = true
}

func (f *zipFile) IsModified() bool { return f.modified }

// Save marks the entry flushed within the archive view. Writing the
// archive itself back to its container is the container owner's job via
// ToBytes.
func (f *zipFile) Save(ctx context.Context) error {
	f.modified = false
	return nil
}

func (f *zipFile) Delete(ctx context.Context) error {
	delete(f.parent.files, f.name)
	f.parent.storage.modified = true
	f.entry = nil
	f.content = nil
	f.loaded = false
	return nil
}

func (f *zipFile) Manager() ContentManager     { return f.manager }
func (f *zipFile) SetManager(m ContentManager) { f.manager = m }
func (f *zipFile) Archive() *ZipStorage        { return f.archive }
func (f *zipFile) SetArchive(z *ZipStorage)    { f.archive = z }
