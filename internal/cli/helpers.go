package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/packsmith/packsmith/internal/config"
	"github.com/packsmith/packsmith/internal/index"
	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/project"
	"github.com/packsmith/packsmith/internal/storage"
	"github.com/packsmith/packsmith/internal/vanilla"
)

// projectContext bundles everything a command needs to operate on the
// resolved project.
type projectContext struct {
	Path    string
	Cfg     *config.ProjectConfig
	Project *project.Project
}

// newProjectContext builds an in-memory project over the resolved path.
// The item collection starts empty; callers either Scan or restore from
// the index.
func newProjectContext() (*projectContext, error) {
	path := getProjectPath()
	pcfg, err := config.LoadProjectConfig(path)
	if err != nil {
		return nil, err
	}

	var vidx vanilla.Index = vanilla.NewEmbeddedIndex()
	if len(pcfg.ExtraVanillaTokens) > 0 {
		vidx = vanilla.NewUnionIndex(
			vanilla.NewEmbeddedIndex(),
			vanilla.NewStaticIndex(pcfg.ExtraVanillaTokens...),
		)
	}

	store := storage.NewFileSystemStorage(path)
	p := project.New(store.RootFolder(), project.Options{
		Name:             pcfg.Name,
		Namespace:        pcfg.Namespace,
		BehaviorPacksDir: pcfg.BehaviorPacksDir,
		ResourcePacksDir: pcfg.ResourcePacksDir,
		Vanilla:          vidx,
	})
	return &projectContext{Path: path, Cfg: pcfg, Project: p}, nil
}

// scanProject builds the live project state: a fresh tree scan plus a
// full relationship resolution pass.
func (pc *projectContext) scanProject(ctx context.Context) error {
	opts := project.ScanOptions{IncludeContainers: pc.Cfg.ScanContainersEnabled()}
	if err := pc.Project.Scan(ctx, opts); err != nil {
		return err
	}
	return pc.Project.CalculateAll(ctx)
}

// saveIndex persists the project state, honoring auto_index.
func (pc *projectContext) saveIndex(force bool) (rebuilt bool, err error) {
	if !force && !pc.Cfg.AutoIndexEnabled() {
		return false, nil
	}
	db, rebuilt, err := index.OpenWithRebuild(pc.Path)
	if err != nil {
		return false, err
	}
	defer db.Close()
	return rebuilt, pc.Project.SaveIndex(db)
}

// restoreFromIndex loads the persisted project state without touching
// the content tree.
func (pc *projectContext) restoreFromIndex() error {
	db, _, err := index.OpenWithRebuild(pc.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	return pc.Project.LoadIndex(db)
}

// findItem resolves a user-supplied path to an item, tolerating a
// missing leading slash.
func (pc *projectContext) findItem(arg string) (*item.Item, error) {
	candidates := []string{arg}
	if !strings.HasPrefix(arg, "/") {
		candidates = append(candidates, "/"+arg)
	}
	for _, c := range candidates {
		if it := pc.Project.ItemByProjectPath(c); it != nil {
			return it, nil
		}
	}
	return nil, fmt.Errorf("no item at %q (run 'pks scan' if the project changed)", arg)
}

// itemSummary is the JSON shape shared by commands that list items.
type itemSummary struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Name string `json:"name"`
}

func summarize(it *item.Item) itemSummary {
	return itemSummary{
		Path: it.ProjectPath(),
		Type: it.Type().String(),
		Name: it.Name(),
	}
}
