package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/packsmith/packsmith/internal/atomicfile"
)

// FileSystemStorage is a store backed by an OS directory tree.
type FileSystemStorage struct {
	rootPath string
	root     *fsFolder
}

// NewFileSystemStorage creates a store rooted at the given directory.
// The directory does not need to exist yet.
func NewFileSystemStorage(rootPath string) *FileSystemStorage {
	s := &FileSystemStorage{rootPath: rootPath}
	s.root = &fsFolder{
		storage: s,
		files:   make(map[string]*fsFile),
		folders: make(map[string]*fsFolder),
	}
	return s
}

// RootFolder returns the store's root folder.
func (s *FileSystemStorage) RootFolder() Folder {
	return s.root
}

// RootPath returns the OS path of the store's root directory.
func (s *FileSystemStorage) RootPath() string {
	return s.rootPath
}

type fsFolder struct {
	storage *FileSystemStorage
	name    string
	parent  *fsFolder
	files   map[string]*fsFile
	folders map[string]*fsFolder
	listed  bool
}

func (f *fsFolder) Name() string { return f.name }

func (f *fsFolder) Parent() Folder {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fsFolder) ProjectPath() string {
	if f.parent == nil {
		return Delimiter
	}
	return joinProjectPath(f.parent, f.name, true)
}

func (f *fsFolder) osPath() string {
	if f.parent == nil {
		return f.storage.rootPath
	}
	return filepath.Join(f.parent.osPath(), f.name)
}

func (f *fsFolder) Exists() (bool, error) {
	info, err := os.Stat(f.osPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (f *fsFolder) Load(ctx context.Context) error {
	entries, err := os.ReadDir(f.osPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read folder %s: %w", f.ProjectPath(), err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			f.EnsureFolder(entry.Name())
		} else {
			f.EnsureFile(entry.Name())
		}
	}
	f.listed = true
	return nil
}

func (f *fsFolder) EnsureFile(name string) File {
	if existing, ok := f.files[name]; ok {
		return existing
	}
	nf := &fsFile{name: name, parent: f}
	f.files[name] = nf
	return nf
}

func (f *fsFolder) EnsureFolder(name string) Folder {
	if existing, ok := f.folders[name]; ok {
		return existing
	}
	nf := &fsFolder{
		storage: f.storage,
		name:    name,
		parent:  f,
		files:   make(map[string]*fsFile),
		folders: make(map[string]*fsFolder),
	}
	f.folders[name] = nf
	return nf
}

func (f *fsFolder) EnsureFileFromRelativePath(rel string) (File, error) {
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

func (f *fsFolder) EnsureFolderFromRelativePath(rel string) (Folder, error) {
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

func (f *fsFolder) Files() map[string]File {
	out := make(map[string]File, len(f.files))
	for name, file := range f.files {
		out[name] = file
	}
	return out
}

func (f *fsFolder) Folders() map[string]Folder {
	out := make(map[string]Folder, len(f.folders))
	for name, folder := range f.folders {
		out[name] = folder
	}
	return out
}

func (f *fsFolder) EnsureExists(ctx context.Context) error {
	return os.MkdirAll(f.osPath(), 0o755)
}

func (f *fsFolder) removeFile(name string) {
	delete(f.files, name)
}

type fsFile struct {
	name     string
	parent   *fsFolder
	content  []byte
	loaded   bool
	modified bool
	manager  ContentManager
	archive  *ZipStorage
}

func (f *fsFile) Name() string   { return f.name }
func (f *fsFile) Parent() Folder { return f.parent }

func (f *fsFile) ProjectPath() string {
	return joinProjectPath(f.parent, f.name, false)
}

func (f *fsFile) osPath() string {
	return filepath.Join(f.parent.osPath(), f.name)
}

func (f *fsFile) Exists() (bool, error) {
	info, err := os.Stat(f.osPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *fsFile) LoadContent(ctx context.Context) error {
	if f.loaded {
		return nil
	}
	data, err := os.ReadFile(f.osPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Absent is not an error; content stays nil.
			f.loaded = true
			return nil
		}
		return fmt.Errorf("read file %s: %w", f.ProjectPath(), err)
	}
	f.content = data
	f.loaded = true
	return nil
}

func (f *fsFile) IsContentLoaded() bool { return f.loaded }
func (f *fsFile) Content() []byte      { return f.content }

func (f *fsFile) SetContent(data []byte) {
	f.content = data
	f.loaded = true
	f.modified = true
}

func (f *fsFile) IsModified() bool { return f.modified }

func (f *fsFile) Save(ctx context.Context) error {
	if f.content == nil {
		return nil
	}
	if err := f.parent.EnsureExists(ctx); err != nil {
		return fmt.Errorf("create folder for %s: %w", f.ProjectPath(), err)
	}
	if err := atomicfile.WriteFile(f.osPath(), f.content, 0); err != nil {
		return fmt.Errorf("save %s: %w", f.ProjectPath(), err)
	}
	f.modified = false
	return nil
}

func (f *fsFile) Delete(ctx context.Context) error {
	if err := os.Remove(f.osPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", f.ProjectPath(), err)
	}
	f.parent.removeFile(f.name)
	f.content = nil
	f.loaded = false
	f.modified = false
	return nil
}

func (f *fsFile) Manager() ContentManager     { return f.manager }
func (f *fsFile) SetManager(m ContentManager) { f.manager = m }
func (f *fsFile) Archive() *ZipStorage        { return f.archive }
func (f *fsFile) SetArchive(z *ZipStorage)    { f.archive = z }

// relativeSegments validates and splits a delimiter-separated relative path.
func relativeSegments(rel string) ([]string, error) {
	rel = strings.Trim(strings.ReplaceAll(rel, "\\", Delimiter), Delimiter)
	if rel == "" {
		return nil, nil
	}
	segments := strings.Split(rel, Delimiter)
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return nil, fmt.Errorf("invalid path segment %q in %q", seg, rel)
		}
	}
	return segments, nil
}

// splitRelativePath splits a relative file path into its folder part and
// base name.
func splitRelativePath(rel string) (parentRel, base string, err error) {
	segments, err := relativeSegments(rel)
	if err != nil {
		return "", "", err
	}
	if len(segments) == 0 {
		return "", "", fmt.Errorf("empty file path")
	}
	return strings.Join(segments[:len(segments)-1], Delimiter), segments[len(segments)-1], nil
}
