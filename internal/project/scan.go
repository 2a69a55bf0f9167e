package project

import (
	"context"
	"sort"
	"strings"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/paths"
	"github.com/packsmith/packsmith/internal/storage"
)

// ScanOptions configures a project scan.
type ScanOptions struct {
	// IncludeContainers descends into world and add-on archives and
	// itemizes their content under composite paths.
	IncludeContainers bool
}

// skippedFolders are tool and VCS directories a scan never descends into.
var skippedFolders = map[string]struct{}{
	".git":         {},
	".packsmith":   {},
	"node_modules": {},
	"dist":         {},
	"build":        {},
}

// Scan walks the project tree and registers an item for every
// recognizable file. Items already present keep their identity; a scan
// never duplicates them.
func (p *Project) Scan(ctx context.Context, opts ScanOptions) error {
	return p.scanFolder(ctx, p.root, "", opts, 0)
}

// maxContainerDepth bounds archive recursion during scans. Hand-authored
// content nests two levels at most (template containing packs); deeper
// nesting is almost always a packing mistake.
const maxContainerDepth = 3

func (p *Project) scanFolder(ctx context.Context, fo storage.Folder, pathPrefix string, opts ScanOptions, depth int) error {
	if err := fo.Load(ctx); err != nil {
		return err
	}

	if p.isWorldFolder(fo) {
		p.itemizeFolder(fo, pathPrefix, item.TypeWorldFolder)
	}

	for _, name := range sortedFileNames(fo.Files()) {
		f := fo.Files()[name]
		if exists, err := f.Exists(); err != nil || !exists {
			continue
		}
		projectPath := pathPrefix + f.ProjectPath()
		t := InferTypeFromPath(projectPath)
		if t == item.TypeUnknown {
			continue
		}
		p.itemizeFile(f, projectPath, t)

		if opts.IncludeContainers && t.IsContainer() && depth < maxContainerDepth {
			if zs := storage.ArchiveViewOf(ctx, f); zs != nil {
				inner := projectPath + storage.ContainerDelimiter
				if err := p.scanFolder(ctx, zs.RootFolder(), inner, opts, depth+1); err != nil {
					return err
				}
			}
		}
	}

	for _, name := range sortedFolderNames(fo.Folders()) {
		if _, skip := skippedFolders[name]; skip {
			continue
		}
		child := fo.Folders()[name]
		if err := p.scanFolder(ctx, child, pathPrefix, opts, depth); err != nil {
			return err
		}
	}
	return nil
}

// isWorldFolder reports whether a loaded folder holds an unpacked world.
func (p *Project) isWorldFolder(fo storage.Folder) bool {
	f, ok := fo.Files()["level.dat"]
	if !ok {
		return false
	}
	exists, err := f.Exists()
	return err == nil && exists
}

func (p *Project) itemizeFile(f storage.File, projectPath string, t item.ItemType) *item.Item {
	name := paths.StripExtension(f.Name())
	return p.EnsureItemByProjectPath(t, projectPath, name)
}

func (p *Project) itemizeFolder(fo storage.Folder, pathPrefix string, t item.ItemType) *item.Item {
	projectPath := strings.TrimSuffix(pathPrefix+fo.ProjectPath(), storage.Delimiter)
	if projectPath == "" {
		projectPath = storage.Delimiter
	}
	return p.EnsureItemByProjectPath(t, projectPath, fo.Name())
}

func sortedFileNames(files map[string]storage.File) []string {
	out := make([]string, 0, len(files))
	for name := range files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sortedFolderNames(folders map[string]storage.Folder) []string {
	out := make([]string, 0, len(folders))
	for name := range folders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
