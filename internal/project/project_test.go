package project

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/packsmith/packsmith/internal/index"
	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
	"github.com/packsmith/packsmith/internal/testutil"
	"github.com/packsmith/packsmith/internal/vanilla"
)

func newProjectOver(tp *testutil.TestProject, opts Options) *Project {
	return New(storage.NewFileSystemStorage(tp.Path).RootFolder(), opts)
}

func TestScanRegistersRecognizedFiles(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("behavior_packs/bp/manifest.json", `{"header": {"uuid": "b"}}`).
		WithFile("behavior_packs/bp/entities/golem.json", `{"minecraft:entity": {}}`).
		WithFile("resource_packs/rp/manifest.json", `{"header": {"uuid": "r"}}`).
		WithFile("resource_packs/rp/textures/blocks/stone.png", "png").
		WithFile("resource_packs/rp/notes.txt", "ignored").
		WithFile(".packsmith/index.db", "skipped dir").
		Build()

	p := newProjectOver(tp, Options{Name: "Test"})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if got := len(p.Items()); got != 4 {
		for _, it := range p.Items() {
			t.Logf("item: %s (%s)", it.ProjectPath(), it.Type())
		}
		t.Fatalf("expected 4 items, got %d", got)
	}

	entity := p.ItemByProjectPath("/behavior_packs/bp/entities/golem.json")
	if entity == nil || entity.Type() != item.TypeEntityTypeBehavior {
		t.Errorf("entity item = %v", entity)
	}
	// Path lookup is case-insensitive.
	if p.ItemByProjectPath("/Behavior_Packs/BP/Entities/Golem.JSON") != entity {
		t.Error("expected case-insensitive path lookup")
	}
	if got := entity.Name(); got != "golem" {
		t.Errorf("entity name = %q", got)
	}
}

func TestScanIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("behavior_packs/bp/manifest.json", `{}`).
		Build()

	p := newProjectOver(tp, Options{})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}
	first := p.ItemByProjectPath("/behavior_packs/bp/manifest.json")
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Items()); got != 1 {
		t.Errorf("expected 1 item after rescan, got %d", got)
	}
	if p.ItemByProjectPath("/behavior_packs/bp/manifest.json") != first {
		t.Error("expected rescan to keep item identity")
	}
}

func TestScanDescendsContainers(t *testing.T) {
	ctx := context.Background()
	archive := testutil.BuildZip(t, map[string]string{
		"bp/manifest.json":       `{"header": {"uuid": "b"}}`,
		"bp/entities/golem.json": `{"minecraft:entity": {}}`,
	})
	tp := testutil.NewTestProject(t).
		WithBinaryFile("packs/bundle.mcaddon", archive).
		Build()

	p := newProjectOver(tp, Options{})
	if err := p.Scan(ctx, ScanOptions{IncludeContainers: true}); err != nil {
		t.Fatal(err)
	}

	inner := p.ItemByProjectPath("/packs/bundle.mcaddon#/bp/entities/golem.json")
	if inner == nil {
		for _, it := range p.Items() {
			t.Logf("item: %s", it.ProjectPath())
		}
		t.Fatal("expected item inside container")
	}
	if inner.Type() != item.TypeEntityTypeBehavior {
		t.Errorf("inner type = %v", inner.Type())
	}

	// Without the option, container content stays out.
	p2 := newProjectOver(tp, Options{})
	if err := p2.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}
	if got := len(p2.Items()); got != 1 {
		t.Errorf("expected only the container item, got %d", got)
	}
}

func TestScanItemizesWorldFolders(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("worlds/my_world/level.dat", "nbtdata").
		WithFile("worlds/my_world/levelname.txt", "My World").
		Build()

	p := newProjectOver(tp, Options{})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}

	world := p.ItemByProjectPath("/worlds/my_world")
	if world == nil || world.Type() != item.TypeWorldFolder {
		t.Fatalf("world item = %v", world)
	}
	if p.ItemByProjectPath("/worlds/my_world/level.dat") == nil {
		t.Error("expected level.dat item alongside the world folder item")
	}
}

func TestCalculateAllPartitionsReferences(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("behavior_packs/bp/entities/golem.json", `{
			"minecraft:entity": {
				"description": {"identifier": "acme:golem"},
				"components": {
					"minecraft:loot": {"table": "loot_tables/entities/golem.json"}
				}
			}
		}`).
		WithFile("behavior_packs/bp/loot_tables/entities/golem.json", `{"pools": []}`).
		WithFile("resource_packs/rp/sounds/sound_definitions.json", `{
			"sound_definitions": {
				"mob.golem.step": {"sounds": ["sounds/mob/golem/step"]},
				"ambient.known": {"sounds": ["sounds/ambient/known"]}
			}
		}`).
		Build()

	p := newProjectOver(tp, Options{
		Vanilla: vanilla.NewStaticIndex("sounds/ambient/known"),
	})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := p.CalculateAll(ctx); err != nil {
		t.Fatalf("CalculateAll: %v", err)
	}

	entity := p.ItemByProjectPath("/behavior_packs/bp/entities/golem.json")
	loot := p.ItemByProjectPath("/behavior_packs/bp/loot_tables/entities/golem.json")
	if !p.Graph().HasEdge(entity, loot) {
		t.Error("expected entity -> loot table edge")
	}

	reports := p.UnresolvedReferences()
	if len(reports) != 1 {
		t.Fatalf("expected one item with unresolved refs, got %d", len(reports))
	}
	r := reports[0]
	if r.Item != p.ItemByProjectPath("/resource_packs/rp/sounds/sound_definitions.json") {
		t.Errorf("unexpected report item %s", r.Item.ProjectPath())
	}
	if len(r.Missing) != 1 || r.Missing[0].Path != "sounds/mob/golem/step" {
		t.Errorf("Missing = %v", r.Missing)
	}
	if len(r.Vanilla) != 1 || r.Vanilla[0].Path != "sounds/ambient/known" {
		t.Errorf("Vanilla = %v", r.Vanilla)
	}

	// Recalculation is idempotent.
	if err := p.CalculateAll(ctx); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Graph().Edges()); got != 1 {
		t.Errorf("expected 1 edge after recalculation, got %d", got)
	}
	if got := len(p.Graph().AllUnfulfilled()); got != 2 {
		t.Errorf("expected 2 unfulfilled after recalculation, got %d", got)
	}
}

func TestEnsureAvailableFilePathProbesSuffixes(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("behavior_packs/bp/scripts/test.js", "// taken").
		Build()

	p := newProjectOver(tp, Options{})

	first, err := p.EnsureAvailableFilePath(ctx, "/behavior_packs/bp/scripts", "test", "js")
	if err != nil {
		t.Fatalf("EnsureAvailableFilePath: %v", err)
	}
	if first != "/behavior_packs/bp/scripts/test1.js" {
		t.Errorf("first = %q", first)
	}

	// The winner is reserved before any file is materialized.
	second, err := p.EnsureAvailableFilePath(ctx, "/behavior_packs/bp/scripts", "test", "js")
	if err != nil {
		t.Fatal(err)
	}
	if second != "/behavior_packs/bp/scripts/test2.js" {
		t.Errorf("second = %q", second)
	}
}

func TestEnsureAvailableFilePathFreshFolder(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).Build()

	p := newProjectOver(tp, Options{})
	got, err := p.EnsureAvailableFilePath(ctx, "/behavior_packs/bp/entities", "golem", "json")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/behavior_packs/bp/entities/golem.json" {
		t.Errorf("got %q", got)
	}
}

func TestCreateItemSeedsNewPack(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).Build()

	p := newProjectOver(tp, Options{Name: "My Addon", Namespace: "acme"})
	it, err := p.CreateItem(ctx, item.TypeEntityTypeBehavior, "Copper Golem")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if it.Type() != item.TypeEntityTypeBehavior {
		t.Errorf("Type = %v", it.Type())
	}
	wantPath := "/behavior_packs/my_addon_bp/entities/copper_golem.json"
	if it.ProjectPath() != wantPath {
		t.Errorf("ProjectPath = %q, want %q", it.ProjectPath(), wantPath)
	}
	if p.ItemByProjectPath(wantPath) != it {
		t.Error("expected created item registered by path")
	}

	tp.AssertFileContains("behavior_packs/my_addon_bp/entities/copper_golem.json", "acme:copper_golem")
	tp.AssertFileExists("behavior_packs/my_addon_bp/manifest.json")
	tp.AssertFileContains("behavior_packs/my_addon_bp/manifest.json", "My Addon")

	manifests := p.ItemsByType(item.TypeBehaviorPackManifestJSON)
	if len(manifests) != 1 {
		t.Errorf("expected seeded manifest item, got %d", len(manifests))
	}
}

func TestCreateItemFollowsExistingConvention(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("behavior_packs/existing_bp/manifest.json", `{"header": {}}`).
		WithFile("behavior_packs/existing_bp/entities/golem.json", `{"minecraft:entity": {}}`).
		Build()

	p := newProjectOver(tp, Options{Name: "Other", Namespace: "acme"})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}

	it, err := p.CreateItem(ctx, item.TypeEntityTypeBehavior, "New Mob")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(it.ProjectPath(), "/behavior_packs/existing_bp/entities/") {
		t.Errorf("expected new entity alongside existing ones, got %q", it.ProjectPath())
	}
}

func TestCreateItemRejectsFolderTypes(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).Build()
	p := newProjectOver(tp, Options{})

	if _, err := p.CreateItem(ctx, item.TypeWorldFolder, "World"); err == nil {
		t.Error("expected folder-backed type to be rejected")
	}
}

func TestResolveSubPackFile(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("resource_packs/rp/manifest.json", `{
			"header": {"name": "RP", "uuid": "x"},
			"subpacks": [{"folder_name": "high_res", "name": "High Resolution"}]
		}`).
		WithFile("resource_packs/rp/textures/blocks/stone.png", "base").
		WithFile("resource_packs/rp/subpacks/high_res/textures/blocks/stone.png", "hires").
		Build()

	p := newProjectOver(tp, Options{})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}

	texture := p.ItemByProjectPath("/resource_packs/rp/textures/blocks/stone.png")
	if texture == nil {
		t.Fatal("texture item missing")
	}

	f := p.ResolveSubPackFile(ctx, texture, "high_res")
	if f == nil {
		t.Fatal("expected sub-pack file by folder name")
	}
	if got := f.ProjectPath(); got != "/resource_packs/rp/subpacks/high_res/textures/blocks/stone.png" {
		t.Errorf("ProjectPath = %q", got)
	}

	// Display name matches case-insensitively.
	if p.ResolveSubPackFile(ctx, texture, "high resolution") == nil {
		t.Error("expected sub-pack file by display name")
	}
	if p.ResolveSubPackFile(ctx, texture, "nope") != nil {
		t.Error("expected nil for undeclared sub-pack")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	tp := testutil.NewTestProject(t).
		WithFile("behavior_packs/bp/entities/golem.json", `{
			"minecraft:entity": {
				"description": {"identifier": "acme:golem"},
				"components": {
					"minecraft:loot": {"table": "loot_tables/entities/golem.json"},
					"minecraft:trade_table": {"table": "trading/golem.json"}
				}
			}
		}`).
		WithFile("behavior_packs/bp/loot_tables/entities/golem.json", `{"pools": []}`).
		Build()

	p := newProjectOver(tp, Options{Name: "Snap"})
	if err := p.Scan(ctx, ScanOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := p.CalculateAll(ctx); err != nil {
		t.Fatal(err)
	}
	p.EnsureProjectVariant("v1.20")

	snap := p.BuildSnapshot()
	if len(snap.Items) != 2 || len(snap.Edges) != 1 || len(snap.Unfulfilled) != 1 {
		t.Fatalf("snapshot = %d items, %d edges, %d unfulfilled",
			len(snap.Items), len(snap.Edges), len(snap.Unfulfilled))
	}

	restored := newProjectOver(tp, Options{Name: "Snap"})
	restored.RestoreSnapshot(snap)

	if got := len(restored.Items()); got != 2 {
		t.Fatalf("restored items = %d", got)
	}
	entity := restored.ItemByProjectPath("/behavior_packs/bp/entities/golem.json")
	loot := restored.ItemByProjectPath("/behavior_packs/bp/loot_tables/entities/golem.json")
	if !restored.Graph().HasEdge(entity, loot) {
		t.Error("expected edge to survive round trip")
	}
	unfulfilled := restored.Graph().UnfulfilledFor(entity)
	if len(unfulfilled) != 1 || unfulfilled[0].Path != "trading/golem.json" {
		t.Errorf("unfulfilled = %v", unfulfilled)
	}
	labels := restored.VariantLabels()
	if len(labels) != 1 || labels[0] != "v1.20" {
		t.Errorf("labels = %v", labels)
	}
}

func TestRestoreSnapshotWithVariantRecords(t *testing.T) {
	tp := testutil.NewTestProject(t).Build()
	p := newProjectOver(tp, Options{Name: "Snap"})

	snap := index.Snapshot{
		Items: []item.ItemRecord{{
			ItemType:    "entityTypeBehavior",
			ProjectPath: "/behavior_packs/bp/entities/golem.json",
			Name:        "golem",
			StorageType: "file",
			Variants: map[string]item.VariantRecord{
				"v1.20": {
					Label:       "v1.20",
					ProjectPath: "/behavior_packs/bp_v1.20/entities/golem.json",
				},
			},
		}},
	}

	// Restoring a variant record re-enters the project through
	// EnsureProjectVariant, so it must not run under the collection lock.
	done := make(chan struct{})
	go func() {
		p.RestoreSnapshot(snap)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RestoreSnapshot did not return")
	}

	it := p.ItemByProjectPath("/behavior_packs/bp/entities/golem.json")
	if it == nil {
		t.Fatal("restored item missing")
	}
	v := it.Variant("v1.20")
	if v == nil {
		t.Fatal("variant missing after restore")
	}
	if got := v.ProjectPath(); got != "/behavior_packs/bp_v1.20/entities/golem.json" {
		t.Errorf("variant ProjectPath = %q", got)
	}
	labels := p.VariantLabels()
	if len(labels) != 1 || labels[0] != "v1.20" {
		t.Errorf("labels = %v", labels)
	}
}
