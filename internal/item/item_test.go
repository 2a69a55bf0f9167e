package item

import (
	"context"
	"sync"
	"testing"
)

func TestLoadContentSingleFlight(t *testing.T) {
	h := newStubHost()
	it := New(h, TypeJSON, "/bp/data.json", "data")
	it.SetCreationType(CreationGenerated)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := it.LoadContent(ctx); err != nil {
				t.Errorf("LoadContent: %v", err)
			}
		}()
	}
	wg.Wait()

	if h.autogenCalls != 1 {
		t.Errorf("expected exactly one underlying load, got %d", h.autogenCalls)
	}
	if !it.IsLoaded() {
		t.Error("expected item to be marked loaded")
	}
}

func TestLoadContentCachesResult(t *testing.T) {
	h := newStubHost()
	it := New(h, TypeJSON, "/bp/data.json", "data")
	it.SetCreationType(CreationGenerated)

	ctx := context.Background()
	if err := it.LoadContent(ctx); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if err := it.LoadContent(ctx); err != nil {
		t.Fatalf("LoadContent: %v", err)
	}
	if h.autogenCalls != 1 {
		t.Errorf("expected cached result on second load, got %d calls", h.autogenCalls)
	}
}

func TestNameDerivedFromPath(t *testing.T) {
	h := newStubHost()

	tests := []struct {
		path string
		want string
	}{
		{"/bp/entities/iron_golem.json", "iron_golem"},
		{"/world/resources.zip#rp/manifest.json", "manifest"},
		{"/rp/textures/icon.png", "icon"},
	}
	for _, tc := range tests {
		it := New(h, TypeJSON, tc.path, "")
		if got := it.Name(); got != tc.want {
			t.Errorf("Name for %q = %q, want %q", tc.path, got, tc.want)
		}
	}

	named := New(h, TypeJSON, "/bp/a.json", "Display Name")
	if got := named.Name(); got != "Display Name" {
		t.Errorf("explicit name = %q", got)
	}
}

func TestEnsureVariantValidation(t *testing.T) {
	h := newStubHost()
	it := New(h, TypeJSON, "/bp/a.json", "a")

	if _, err := it.EnsureVariant("bad/label"); err == nil {
		t.Error("expected slash label to be rejected")
	}
	if _, err := it.EnsureVariant("bad#label"); err == nil {
		t.Error("expected container delimiter label to be rejected")
	}

	v, err := it.EnsureVariant("  v2  ")
	if err != nil {
		t.Fatalf("EnsureVariant: %v", err)
	}
	if v.Label() != "v2" {
		t.Errorf("expected trimmed label, got %q", v.Label())
	}
	if len(h.labels) != 1 || h.labels[0] != "v2" {
		t.Errorf("expected project-wide registration of v2, got %v", h.labels)
	}

	again, err := it.EnsureVariant("v2")
	if err != nil {
		t.Fatalf("EnsureVariant: %v", err)
	}
	if again != v {
		t.Error("expected same variant for same label")
	}
}

func TestVariantLabelsOrdering(t *testing.T) {
	h := newStubHost()
	it := New(h, TypeJSON, "/bp/a.json", "a")

	it.DefaultVariant()
	for _, label := range []string{"beta", "v2", "alpha", "v10"} {
		if _, err := it.EnsureVariant(label); err != nil {
			t.Fatalf("EnsureVariant(%q): %v", label, err)
		}
	}

	got := it.VariantLabels()
	want := []string{DefaultVariantLabel, "v10", "v2", "alpha", "beta"}
	if len(got) != len(want) {
		t.Fatalf("VariantLabels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("VariantLabels = %v, want %v", got, want)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	h := newStubHost()
	it := New(h, TypeEntityTypeBehavior, "/bp/entities/golem.json", "golem")
	it.EnsureTag("boss")
	it.EnsureTag("alpha")
	it.SetCreationType(CreationGenerated)
	it.SetError(ErrorUnprocessable, "bad json")
	v, err := it.EnsureVariant("v2")
	if err != nil {
		t.Fatalf("EnsureVariant: %v", err)
	}
	v.SetVariantType(VariantVersionSlice)
	v.SetProjectPath("/bp_v2/entities/golem.json")

	rec := it.Record()
	back := FromRecord(h, rec)

	if back.Type() != TypeEntityTypeBehavior {
		t.Errorf("Type = %v", back.Type())
	}
	if back.ProjectPath() != "/bp/entities/golem.json" {
		t.Errorf("ProjectPath = %q", back.ProjectPath())
	}
	if back.Name() != "golem" {
		t.Errorf("Name = %q", back.Name())
	}
	if back.CreationType() != CreationGenerated {
		t.Errorf("CreationType = %v", back.CreationType())
	}
	if back.ErrorStatus() != ErrorUnprocessable || back.ErrorMessage() != "bad json" {
		t.Errorf("error state = %v %q", back.ErrorStatus(), back.ErrorMessage())
	}
	tags := back.Tags()
	if len(tags) != 2 || tags[0] != "alpha" || tags[1] != "boss" {
		t.Errorf("Tags = %v", tags)
	}
	bv := back.Variant("v2")
	if bv == nil {
		t.Fatal("expected v2 variant to survive round trip")
	}
	if bv.VariantType() != VariantVersionSlice {
		t.Errorf("VariantType = %v", bv.VariantType())
	}
	if bv.ProjectPath() != "/bp_v2/entities/golem.json" {
		t.Errorf("variant ProjectPath = %q", bv.ProjectPath())
	}
}

func TestFromRecordUnknownType(t *testing.T) {
	h := newStubHost()
	back := FromRecord(h, ItemRecord{ItemType: "definitelyNotAType", ProjectPath: "/x", Name: "x"})
	if back.Type() != TypeUnknown {
		t.Errorf("expected unknown type fallback, got %v", back.Type())
	}
}

func TestDeleteItemDetachesFromGraph(t *testing.T) {
	h := newStubHost()
	a := New(h, TypeJSON, "/a.json", "a")
	b := New(h, TypeJSON, "/b.json", "b")
	a.SetCreationType(CreationGenerated)
	b.SetCreationType(CreationGenerated)

	h.graph.Link(a, b)

	if err := b.DeleteItem(context.Background()); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(h.graph.Edges()) != 0 {
		t.Error("expected edges referencing deleted item removed")
	}
	if len(h.removed) != 1 || h.removed[0] != b {
		t.Errorf("expected host removal callback, got %v", h.removed)
	}
}

func seedStubFile(t *testing.T, h *stubHost, projectPath string, content string) {
	t.Helper()
	f, err := h.root.EnsureFileFromRelativePath(projectPath[1:])
	if err != nil {
		t.Fatalf("EnsureFileFromRelativePath(%q): %v", projectPath, err)
	}
	f.SetContent([]byte(content))
}

func TestPrimaryFileVersionSlicePrecedence(t *testing.T) {
	h := newStubHost()
	ctx := context.Background()
	seedStubFile(t, h, "/scripts/main_v1.json", `{"v":1}`)
	seedStubFile(t, h, "/scripts/main_v2.json", `{"v":2}`)

	it := New(h, TypeJSON, "/scripts/main.json", "main")
	for label, path := range map[string]string{
		"v1": "/scripts/main_v1.json",
		"v2": "/scripts/main_v2.json",
	} {
		v, err := it.EnsureVariant(label)
		if err != nil {
			t.Fatalf("EnsureVariant(%q): %v", label, err)
		}
		v.SetVariantType(VariantVersionSlice)
		v.SetProjectPath(path)
	}

	// The latest version slice wins even though the item's own path has
	// no content.
	if got := it.PrimaryVariantLabel(ctx); got != "v2" {
		t.Fatalf("PrimaryVariantLabel = %q, want v2", got)
	}
	f := it.PrimaryFile(ctx)
	if f == nil || f.ProjectPath() != "/scripts/main_v2.json" {
		t.Fatalf("unexpected primary file %v", f)
	}
}

func TestPrimaryFileDefaultBeatsPlainVariants(t *testing.T) {
	h := newStubHost()
	ctx := context.Background()
	seedStubFile(t, h, "/scripts/other.json", `{}`)
	seedStubFile(t, h, "/scripts/other_alpha.json", `{}`)

	it := New(h, TypeJSON, "/scripts/other.json", "other")
	if _, err := it.EnsureVariant(DefaultVariantLabel); err != nil {
		t.Fatalf("EnsureVariant(default): %v", err)
	}
	alpha, err := it.EnsureVariant("alpha")
	if err != nil {
		t.Fatalf("EnsureVariant(alpha): %v", err)
	}
	alpha.SetProjectPath("/scripts/other_alpha.json")

	if got := it.PrimaryVariantLabel(ctx); got != DefaultVariantLabel {
		t.Fatalf("PrimaryVariantLabel = %q, want default", got)
	}
	f := it.PrimaryFile(ctx)
	if f == nil || f.ProjectPath() != "/scripts/other.json" {
		t.Fatalf("unexpected primary file %v", f)
	}
}

func TestPrimaryFileFallsBackToCustomWhenDefaultEmpty(t *testing.T) {
	h := newStubHost()
	ctx := context.Background()
	seedStubFile(t, h, "/scripts/empty_alpha.json", `{}`)

	it := New(h, TypeJSON, "/scripts/empty.json", "empty")
	if _, err := it.EnsureVariant(DefaultVariantLabel); err != nil {
		t.Fatalf("EnsureVariant(default): %v", err)
	}
	alpha, err := it.EnsureVariant("alpha")
	if err != nil {
		t.Fatalf("EnsureVariant(alpha): %v", err)
	}
	alpha.SetProjectPath("/scripts/empty_alpha.json")

	// The default path has no content, so the bound custom variant is the
	// best-effort file.
	if got := it.PrimaryVariantLabel(ctx); got != "alpha" {
		t.Fatalf("PrimaryVariantLabel = %q, want alpha", got)
	}
}
