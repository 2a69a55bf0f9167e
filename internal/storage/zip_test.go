package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/packsmith/packsmith/internal/testutil"
)

func TestFromBytesListsEntries(t *testing.T) {
	data := testutil.BuildZip(t, map[string]string{
		"manifest.json":        `{"format_version": 2}`,
		"entities/zombie.json": `{}`,
	})

	z, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	root := z.RootFolder()
	if _, ok := root.Files()["manifest.json"]; !ok {
		t.Errorf("expected manifest.json at archive root, got %v", root.Files())
	}
	entities, ok := root.Folders()["entities"]
	if !ok {
		t.Fatalf("expected entities folder, got %v", root.Folders())
	}
	f, ok := entities.Files()["zombie.json"]
	if !ok {
		t.Fatalf("expected zombie.json in entities folder")
	}
	if got := f.ProjectPath(); got != "/entities/zombie.json" {
		t.Errorf("ProjectPath = %q, want /entities/zombie.json", got)
	}
	if err := f.LoadContent(context.Background()); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if string(f.Content()) != "{}" {
		t.Errorf("Content = %q, want {}", f.Content())
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, err := FromBytes([]byte("not a zip archive")); err == nil {
		t.Fatal("expected error for non-archive bytes")
	}
}

func TestZipToBytesRoundTrip(t *testing.T) {
	ctx := context.Background()

	z := NewZipStorage()
	f, err := z.RootFolder().EnsureFileFromRelativePath("bp/entities/golem.json")
	if err != nil {
		t.Fatalf("EnsureFileFromRelativePath: %v", err)
	}
	f.SetContent([]byte(`{"minecraft:entity": {}}`))

	if !z.IsModified() {
		t.Error("expected archive to be modified after SetContent")
	}

	data, err := z.ToBytes(ctx)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	reread, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes after ToBytes: %v", err)
	}
	got, ok := ResolveFile(ctx, reread.RootFolder(), "/bp/entities/golem.json")
	if !ok {
		t.Fatal("expected file to resolve after round trip")
	}
	if err := got.LoadContent(ctx); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if !bytes.Equal(got.Content(), []byte(`{"minecraft:entity": {}}`)) {
		t.Errorf("Content = %q", got.Content())
	}
}

func TestZipDeleteDropsEntry(t *testing.T) {
	ctx := context.Background()
	data := testutil.BuildZip(t, map[string]string{"a.json": "{}"})
	z, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	z.ClearModified()

	f := z.RootFolder().Files()["a.json"]
	if err := f.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := z.RootFolder().Files()["a.json"]; ok {
		t.Error("expected entry to be removed")
	}
	if !z.IsModified() {
		t.Error("expected archive to be modified after Delete")
	}
}
