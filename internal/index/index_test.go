package index

import (
	"errors"
	"reflect"
	"testing"

	"github.com/packsmith/packsmith/internal/item"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshot() Snapshot {
	return Snapshot{
		Items: []item.ItemRecord{
			{
				ItemType:    "entityTypeBehavior",
				ProjectPath: "/behavior_packs/bp/entities/golem.json",
				Name:        "golem",
				Tags:        []string{"entity"},
			},
			{
				ItemType:    "lootTableBehavior",
				ProjectPath: "/behavior_packs/bp/loot_tables/entities/golem.json",
				Name:        "golem",
			},
		},
		Edges: []EdgeRecord{
			{
				ParentPath: "/behavior_packs/bp/entities/golem.json",
				ChildPath:  "/behavior_packs/bp/loot_tables/entities/golem.json",
			},
		},
		Unfulfilled: []UnfulfilledRecord{
			{
				ParentPath: "/behavior_packs/bp/entities/golem.json",
				Path:       "trading/golem.json",
				Type:       "tradingBehaviorJson",
				Vanilla:    false,
			},
			{
				ParentPath: "/behavior_packs/bp/entities/golem.json",
				Path:       "sounds/ambient/cave",
				Type:       "soundDefinitionCatalog",
				Vanilla:    true,
			},
		},
		VariantLabels: []string{"", "v1.20"},
	}
}

func TestReplaceAllRoundTrip(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot()

	if err := db.ReplaceAll(snap); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if !reflect.DeepEqual(got.Items[0], snap.Items[0]) {
		t.Errorf("item mismatch: got %+v, want %+v", got.Items[0], snap.Items[0])
	}
	if !reflect.DeepEqual(got.Edges, snap.Edges) {
		t.Errorf("edge mismatch: got %+v, want %+v", got.Edges, snap.Edges)
	}
	if len(got.Unfulfilled) != 2 {
		t.Fatalf("expected 2 unfulfilled refs, got %d", len(got.Unfulfilled))
	}
	// Rows come back ordered by ref_path.
	if got.Unfulfilled[0].Path != "sounds/ambient/cave" || !got.Unfulfilled[0].Vanilla {
		t.Errorf("unexpected first unfulfilled ref: %+v", got.Unfulfilled[0])
	}
	if got.Unfulfilled[1].Path != "trading/golem.json" || got.Unfulfilled[1].Vanilla {
		t.Errorf("unexpected second unfulfilled ref: %+v", got.Unfulfilled[1])
	}
	if !reflect.DeepEqual(got.VariantLabels, []string{"", "v1.20"}) {
		t.Errorf("unexpected variant labels: %v", got.VariantLabels)
	}
}

func TestReplaceAllOverwritesPreviousState(t *testing.T) {
	db := openTestDB(t)
	if err := db.ReplaceAll(testSnapshot()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	replacement := Snapshot{
		Items: []item.ItemRecord{
			{ItemType: "behaviorPackManifestJson", ProjectPath: "/behavior_packs/bp/manifest.json", Name: "manifest"},
		},
	}
	if err := db.ReplaceAll(replacement); err != nil {
		t.Fatalf("ReplaceAll (second): %v", err)
	}

	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProjectPath != "/behavior_packs/bp/manifest.json" {
		t.Errorf("expected only replacement item, got %+v", got.Items)
	}
	if len(got.Edges) != 0 || len(got.Unfulfilled) != 0 || len(got.VariantLabels) != 0 {
		t.Errorf("expected edges, unfulfilled and labels cleared, got %+v", got)
	}
}

func TestItemRecordLookup(t *testing.T) {
	db := openTestDB(t)
	if err := db.ReplaceAll(testSnapshot()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	rec, err := db.ItemRecord("/behavior_packs/bp/entities/golem.json")
	if err != nil {
		t.Fatalf("ItemRecord: %v", err)
	}
	if rec.ItemType != "entityTypeBehavior" || rec.Name != "golem" {
		t.Errorf("unexpected record: %+v", rec)
	}

	// Path comparison is case-insensitive.
	if _, err := db.ItemRecord("/Behavior_Packs/BP/Entities/Golem.JSON"); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}

	_, err = db.ItemRecord("/behavior_packs/bp/entities/missing.json")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestChildAndParentPaths(t *testing.T) {
	db := openTestDB(t)
	snap := testSnapshot()
	snap.Edges = append(snap.Edges, EdgeRecord{
		ParentPath: "/behavior_packs/bp/entities/golem.json",
		ChildPath:  "/behavior_packs/bp/animations/golem.json",
	})
	if err := db.ReplaceAll(snap); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	children, err := db.ChildPaths("/behavior_packs/bp/entities/golem.json")
	if err != nil {
		t.Fatalf("ChildPaths: %v", err)
	}
	want := []string{
		"/behavior_packs/bp/animations/golem.json",
		"/behavior_packs/bp/loot_tables/entities/golem.json",
	}
	if !reflect.DeepEqual(children, want) {
		t.Errorf("unexpected children: %v", children)
	}

	parents, err := db.ParentPaths("/behavior_packs/bp/loot_tables/entities/golem.json")
	if err != nil {
		t.Fatalf("ParentPaths: %v", err)
	}
	if !reflect.DeepEqual(parents, []string{"/behavior_packs/bp/entities/golem.json"}) {
		t.Errorf("unexpected parents: %v", parents)
	}

	empty, err := db.ChildPaths("/behavior_packs/bp/loot_tables/entities/golem.json")
	if err != nil {
		t.Fatalf("ChildPaths (leaf): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no children for leaf, got %v", empty)
	}
}

func TestItemRecordsByTypes(t *testing.T) {
	db := openTestDB(t)
	if err := db.ReplaceAll(testSnapshot()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	recs, err := db.ItemRecordsByTypes([]string{"lootTableBehavior"})
	if err != nil {
		t.Fatalf("ItemRecordsByTypes: %v", err)
	}
	if len(recs) != 1 || recs[0].ItemType != "lootTableBehavior" {
		t.Errorf("unexpected filtered records: %+v", recs)
	}

	all, err := db.ItemRecordsByTypes(nil)
	if err != nil {
		t.Fatalf("ItemRecordsByTypes (all): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 records without filter, got %d", len(all))
	}

	none, err := db.ItemRecordsByTypes([]string{"blockTypeBehavior"})
	if err != nil {
		t.Fatalf("ItemRecordsByTypes (miss): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no records for unmatched type, got %+v", none)
	}
}

func TestDuplicateEdgesDeduplicated(t *testing.T) {
	db := openTestDB(t)
	edge := EdgeRecord{
		ParentPath: "/behavior_packs/bp/entities/golem.json",
		ChildPath:  "/behavior_packs/bp/loot_tables/entities/golem.json",
	}
	snap := Snapshot{Edges: []EdgeRecord{edge, edge}}
	if err := db.ReplaceAll(snap); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got.Edges) != 1 {
		t.Errorf("expected duplicate edge collapsed, got %d edges", len(got.Edges))
	}
}
