package project

import (
	"testing"

	"github.com/packsmith/packsmith/internal/item"
)

func TestInferTypeFromPath(t *testing.T) {
	tests := []struct {
		path string
		want item.ItemType
	}{
		// Exact names
		{"/worlds/my_world/level.dat", item.TypeLevelDat},
		{"/worlds/my_world/world_behavior_packs.json", item.TypeBehaviorPackListJSON},
		{"/resource_packs/rp/sounds/sound_definitions.json", item.TypeSoundDefinitionCatalog},
		{"/resource_packs/rp/textures/item_texture.json", item.TypeItemTextureCatalog},
		{"/resource_packs/rp/sounds.json", item.TypeSoundCatalog},
		{"/behavior_packs/bp/functions/tick.json", item.TypeTickJSON},
		{"/package.json", item.TypePackageJSON},
		{"/.gitignore", item.TypeGitIgnore},

		// Manifests disambiguated by pack side
		{"/behavior_packs/bp/manifest.json", item.TypeBehaviorPackManifestJSON},
		{"/resource_packs/rp/manifest.json", item.TypeResourcePackManifestJSON},
		{"/skin_packs/sp/manifest.json", item.TypeSkinPackManifestJSON},

		// Behavior folder conventions
		{"/behavior_packs/bp/entities/golem.json", item.TypeEntityTypeBehavior},
		{"/behavior_packs/bp/loot_tables/entities/golem.json", item.TypeLootTableBehavior},
		{"/behavior_packs/bp/recipes/sword.json", item.TypeRecipeBehavior},
		{"/behavior_packs/bp/spawn_rules/golem.json", item.TypeSpawnRuleBehavior},
		{"/behavior_packs/bp/animations/walk.json", item.TypeAnimationBehaviorJSON},

		// Resource folder conventions
		{"/resource_packs/rp/entity/golem.entity.json", item.TypeEntityTypeResource},
		{"/resource_packs/rp/particles/sparkle.json", item.TypeParticleJSON},
		{"/resource_packs/rp/animations/walk.json", item.TypeAnimationResourceJSON},
		// Outer folder wins over an inner folder that is also conventional.
		{"/resource_packs/rp/models/entity/golem.json", item.TypeModelGeometryJSON},

		// Extensions
		{"/behavior_packs/bp/functions/greet.mcfunction", item.TypeFunction},
		{"/behavior_packs/bp/structures/house.mcstructure", item.TypeStructure},
		{"/resource_packs/rp/texts/en_US.lang", item.TypeLang},
		{"/resource_packs/rp/sounds/mob/golem/step.ogg", item.TypeAudio},
		{"/behavior_packs/bp/scripts/main.js", item.TypeJS},
		{"/behavior_packs/bp/scripts/main.ts", item.TypeTS},
		{"/worlds/w/db/000003.ldb", item.TypeLevelDBLedger},
		{"/packs/bundle.mcaddon", item.TypeMCAddon},
		{"/worlds/export.mcworld", item.TypeMCWorld},

		// Images by location
		{"/resource_packs/rp/textures/ui/icon.png", item.TypeUITexture},
		{"/resource_packs/rp/textures/blocks/stone.png", item.TypeTexture},
		{"/marketing/keyart.jpg", item.TypeMarketingAsset},
		{"/pack_icon.png", item.TypeImage},

		// Texture sets and fallbacks
		{"/resource_packs/rp/textures/blocks/stone.texture_set.json", item.TypeTextureSetJSON},
		{"/behavior_packs/bp/misc/notes.json", item.TypeJSON},
		{"/readme.txt", item.TypeUnknown},

		// Composite paths classify by the innermost segment.
		{"/worlds/export.mcworld#behavior_packs/bp/entities/golem.json", item.TypeEntityTypeBehavior},
		{"/packs/bundle.mcaddon#rp/manifest.json", item.TypeResourcePackManifestJSON},
	}
	for _, tc := range tests {
		if got := InferTypeFromPath(tc.path); got != tc.want {
			t.Errorf("InferTypeFromPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestSideOfPath(t *testing.T) {
	tests := []struct {
		path string
		want packSide
	}{
		{"/behavior_packs/bp/entities/a.json", sideBehavior},
		{"/resource_packs/rp/entity/a.json", sideResource},
		{"/worlds/w/level.dat", sideNone},
		// The innermost marker wins inside containers.
		{"/resource_packs/rp/packed.zip#behavior_packs/bp/a.json", sideBehavior},
	}
	for _, tc := range tests {
		if got := sideOfPath(tc.path); got != tc.want {
			t.Errorf("sideOfPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestDottedVersionIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"1.20", 1*10000 + 20},
		{"v1.20", 1*10000 + 20},
		{"1.20.30", (1*10000+20)*10000 + 30},
		{"2", 2},
		{"beta", -1},
		{"1.x", -1},
		{"1.20000", -1},
		{"", -1},
	}
	for _, tc := range tests {
		if got := DottedVersionIndex(tc.label); got != tc.want {
			t.Errorf("DottedVersionIndex(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}

	if DottedVersionIndex("1.21") <= DottedVersionIndex("1.20.5") {
		t.Error("expected 1.21 to order after 1.20.5")
	}
}
