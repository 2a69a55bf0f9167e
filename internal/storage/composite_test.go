package storage

import (
	"context"
	"testing"

	"github.com/packsmith/packsmith/internal/testutil"
)

func TestSplitJoinComposite(t *testing.T) {
	segments := SplitComposite("/world/resources.zip#rp/packs.zip#manifest.json")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %v", segments)
	}
	if got := JoinComposite(segments...); got != "/world/resources.zip#rp/packs.zip#manifest.json" {
		t.Errorf("JoinComposite = %q", got)
	}

	plain := SplitComposite("/bp/entities/golem.json")
	if len(plain) != 1 {
		t.Fatalf("expected 1 segment for plain path, got %v", plain)
	}
}

func TestResolveFileThroughNestedContainers(t *testing.T) {
	ctx := context.Background()

	inner := testutil.BuildZip(t, map[string]string{
		"rp/manifest.json": `{"format_version": 2}`,
	})
	outer := testutil.BuildZip(t, map[string]string{
		"packs/inner.zip": string(inner),
	})

	p := testutil.NewTestProject(t).
		WithBinaryFile("world/resources.zip", outer).
		Build()

	root := NewFileSystemStorage(p.Path).RootFolder()

	f, ok := ResolveFile(ctx, root, "/world/resources.zip#packs/inner.zip#rp/manifest.json")
	if !ok {
		t.Fatal("expected composite path to resolve")
	}
	if err := f.LoadContent(ctx); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if string(f.Content()) != `{"format_version": 2}` {
		t.Errorf("Content = %q", f.Content())
	}
}

func TestArchiveViewDecodedOnce(t *testing.T) {
	ctx := context.Background()

	archive := testutil.BuildZip(t, map[string]string{"manifest.json": "{}"})
	p := testutil.NewTestProject(t).
		WithBinaryFile("packs/bundle.mcaddon", archive).
		Build()

	root := NewFileSystemStorage(p.Path).RootFolder()
	containerFile, ok := ResolveFile(ctx, root, "/packs/bundle.mcaddon")
	if !ok {
		t.Fatal("expected container file to resolve")
	}

	first := ArchiveViewOf(ctx, containerFile)
	if first == nil {
		t.Fatal("expected archive view")
	}
	second := ArchiveViewOf(ctx, containerFile)
	if first != second {
		t.Error("expected cached archive view to be reused")
	}
}

func TestResolveFileMissingContainer(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).Build()
	root := NewFileSystemStorage(p.Path).RootFolder()

	if _, ok := ResolveFile(ctx, root, "/missing.zip#manifest.json"); ok {
		t.Error("expected resolution through a missing container to fail")
	}
}

func TestResolveFileCorruptContainer(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestProject(t).
		WithFile("broken.zip", "definitely not an archive").
		Build()
	root := NewFileSystemStorage(p.Path).RootFolder()

	if _, ok := ResolveFile(ctx, root, "/broken.zip#manifest.json"); ok {
		t.Error("expected resolution through a corrupt container to fail")
	}
}

func TestResolveFolderInsideContainer(t *testing.T) {
	ctx := context.Background()
	archive := testutil.BuildZip(t, map[string]string{
		"rp/textures/icon.png": "png",
	})
	p := testutil.NewTestProject(t).
		WithBinaryFile("resources.zip", archive).
		Build()
	root := NewFileSystemStorage(p.Path).RootFolder()

	folder, ok := ResolveFolder(ctx, root, "/resources.zip#rp/textures")
	if !ok {
		t.Fatal("expected folder to resolve")
	}
	if _, ok := folder.Files()["icon.png"]; !ok {
		t.Errorf("expected icon.png inside resolved folder, got %v", folder.Files())
	}
}
