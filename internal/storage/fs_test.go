package storage

import (
	"context"
	"testing"

	"github.com/packsmith/packsmith/internal/testutil"
)

func TestFileSystemLoadListsChildren(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).
		WithFile("behavior_packs/bp/manifest.json", "{}").
		WithFile("behavior_packs/bp/entities/golem.json", "{}").
		Build()

	root := NewFileSystemStorage(p.Path).RootFolder()
	if err := root.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	packs, ok := root.Folders()["behavior_packs"]
	if !ok {
		t.Fatalf("expected behavior_packs folder, got %v", root.Folders())
	}
	if err := packs.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	bp, ok := packs.Folders()["bp"]
	if !ok {
		t.Fatal("expected bp folder")
	}
	if err := bp.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := bp.Files()["manifest.json"]; !ok {
		t.Errorf("expected manifest.json, got %v", bp.Files())
	}
	if got := bp.ProjectPath(); got != "/behavior_packs/bp/" {
		t.Errorf("ProjectPath = %q, want /behavior_packs/bp/", got)
	}
}

func TestFileSystemLoadMissingFolderIsEmpty(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).Build()
	root := NewFileSystemStorage(p.Path).RootFolder()

	missing := root.EnsureFolder("nope")
	if err := missing.Load(ctx); err != nil {
		t.Fatalf("Load of missing folder: %v", err)
	}
	if len(missing.Files()) != 0 || len(missing.Folders()) != 0 {
		t.Error("expected missing folder to load empty")
	}
}

func TestFileSystemSaveWritesThroughParents(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).Build()
	root := NewFileSystemStorage(p.Path).RootFolder()

	f, err := root.EnsureFileFromRelativePath("resource_packs/rp/textures/item_texture.json")
	if err != nil {
		t.Fatalf("EnsureFileFromRelativePath: %v", err)
	}
	f.SetContent([]byte(`{"texture_data": {}}`))
	if !f.IsModified() {
		t.Error("expected file to be modified before Save")
	}
	if err := f.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if f.IsModified() {
		t.Error("expected modified flag to clear after Save")
	}

	p.AssertFileContains("resource_packs/rp/textures/item_texture.json", "texture_data")
}

func TestFileSystemLoadContentAbsentFile(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).Build()
	root := NewFileSystemStorage(p.Path).RootFolder()

	f := root.EnsureFile("ghost.json")
	if err := f.LoadContent(ctx); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if !f.IsContentLoaded() {
		t.Error("expected content to be marked loaded")
	}
	if f.Content() != nil {
		t.Errorf("expected nil content for absent file, got %q", f.Content())
	}
	exists, err := f.Exists()
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("expected absent file to not exist")
	}
}

func TestFileSystemDelete(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).
		WithFile("a.json", "{}").
		Build()
	root := NewFileSystemStorage(p.Path).RootFolder()
	if err := root.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f := root.Files()["a.json"]
	if err := f.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := root.Files()["a.json"]; ok {
		t.Error("expected file node to be dropped")
	}
	p.AssertFileNotExists("a.json")
}
