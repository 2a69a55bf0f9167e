package project

import (
	"strings"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/paths"
)

// packSide tells the behavior and resource halves of an add-on apart when
// a folder convention is ambiguous (animations/ exists on both sides).
type packSide int

const (
	sideNone packSide = iota
	sideBehavior
	sideResource
)

func sideOfPath(projectPath string) packSide {
	p := strings.ToLower(projectPath)
	behavior := strings.LastIndex(p, "behavior_pack")
	resource := strings.LastIndex(p, "resource_pack")
	switch {
	case behavior < 0 && resource < 0:
		return sideNone
	case behavior > resource:
		return sideBehavior
	default:
		return sideResource
	}
}

// byExactName classifies files whose base name alone determines the type.
var byExactName = map[string]item.ItemType{
	"level.dat":                  item.TypeLevelDat,
	"level.dat_old":              item.TypeLevelDat,
	"world_behavior_packs.json":  item.TypeBehaviorPackListJSON,
	"world_resource_packs.json":  item.TypeResourcePackListJSON,
	"world_history.json":         item.TypeWorldHistoryJSON,
	"sound_definitions.json":     item.TypeSoundDefinitionCatalog,
	"music_definitions.json":     item.TypeMusicDefinitionCatalog,
	"sounds.json":                item.TypeSoundCatalog,
	"item_texture.json":          item.TypeItemTextureCatalog,
	"terrain_texture.json":       item.TypeTerrainTextureCatalog,
	"flipbook_textures.json":     item.TypeFlipbookTexturesCatalog,
	"textures_list.json":         item.TypeTextureListJSON,
	"blocks.json":                item.TypeBlocksCatalogResourceJSON,
	"biomes_client.json":         item.TypeBiomesClientCatalog,
	"languages.json":             item.TypeLanguagesCatalogResourceJSON,
	"splashes.json":              item.TypeSplashesJSON,
	"tick.json":                  item.TypeTickJSON,
	"item_catalog.json":          item.TypeCraftingItemCatalog,
	"crafting_item_catalog.json": item.TypeCraftingItemCatalog,
	"package.json":               item.TypePackageJSON,
	"package-lock.json":          item.TypePackageLockJSON,
	"jsconfig.json":              item.TypeJSConfigJSON,
	"tsconfig.json":              item.TypeTSConfigJSON,
	"just.config.ts":             item.TypeJustConfigTS,
	"eslint.config.js":           item.TypeESLintConfigJavaScript,
	".eslintrc.js":               item.TypeESLintConfigJavaScript,
	".prettierrc.json":           item.TypePrettierRCJSON,
	".gitignore":                 item.TypeGitIgnore,
	".env":                       item.TypeEnvSettings,
	".mctools.json":              item.TypeMCToolsProjectPreferences,
	"contents.json":              item.TypeContentIndexJSON,
	"content_report.json":        item.TypeContentReportJSON,
	"skins.json":                 item.TypeSkinCatalogJSON,
}

// byFolderBehavior classifies JSON files by their conventional behavior
// pack folder.
var byFolderBehavior = map[string]item.ItemType{
	"entities":              item.TypeEntityTypeBehavior,
	"blocks":                item.TypeBlockTypeBehavior,
	"items":                 item.TypeItemTypeBehavior,
	"loot_tables":           item.TypeLootTableBehavior,
	"recipes":               item.TypeRecipeBehavior,
	"spawn_rules":           item.TypeSpawnRuleBehavior,
	"trading":               item.TypeTradingBehaviorJSON,
	"dialogue":              item.TypeDialogueBehaviorJSON,
	"features":              item.TypeFeatureBehavior,
	"feature_rules":         item.TypeFeatureRuleBehavior,
	"biomes":                item.TypeBiomeBehavior,
	"animations":            item.TypeAnimationBehaviorJSON,
	"animation_controllers": item.TypeAnimationControllerBehaviorJSON,
	"volumes":               item.TypeVolumeBehaviorJSON,
	"cameras":               item.TypeCameraBehaviorJSON,
	"aim_assist":            item.TypeAimAssistPresetJSON,
	"worldgen":              item.TypeJigsawStructure,
	"structure_sets":        item.TypeJigsawStructureSet,
	"template_pools":        item.TypeJigsawTemplatePool,
	"processors":            item.TypeJigsawProcessorList,
}

// byFolderResource classifies JSON files by their conventional resource
// pack folder.
var byFolderResource = map[string]item.ItemType{
	"entity":                item.TypeEntityTypeResource,
	"attachables":           item.TypeAttachableResourceJSON,
	"particles":             item.TypeParticleJSON,
	"render_controllers":    item.TypeRenderControllerJSON,
	"animations":            item.TypeAnimationResourceJSON,
	"animation_controllers": item.TypeAnimationControllerResourceJSON,
	"models":                item.TypeModelGeometryJSON,
	"ui":                    item.TypeUIJSON,
	"fogs":                  item.TypeFogResourceJSON,
	"biomes":                item.TypeBiomeResource,
	"materials":             item.TypeMaterialSetJSON,
	"pieces":                item.TypePersonaPieceJSON,
}

// InferTypeFromPath infers an item type from a project path. Inference
// runs over the innermost container segment so content inside worlds and
// archives classifies the same way as loose files.
func InferTypeFromPath(projectPath string) item.ItemType {
	segment := strings.ToLower(paths.InnermostSegment(projectPath))
	base := segment
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}

	if t, ok := byExactName[base]; ok {
		return t
	}
	if base == "manifest.json" {
		return manifestTypeFor(projectPath)
	}
	if ext := extensionOf(base); ext != "" {
		if t, ok := typeForExtension(projectPath, segment, base, ext); ok {
			return t
		}
	}
	return item.TypeUnknown
}

func manifestTypeFor(projectPath string) item.ItemType {
	p := strings.ToLower(projectPath)
	switch {
	case strings.Contains(p, "skin_pack"):
		return item.TypeSkinPackManifestJSON
	case strings.Contains(p, "persona"):
		return item.TypePersonaManifestJSON
	case strings.Contains(p, "design_pack"):
		return item.TypeDesignPackManifestJSON
	case sideOfPath(projectPath) == sideBehavior:
		return item.TypeBehaviorPackManifestJSON
	default:
		return item.TypeResourcePackManifestJSON
	}
}

func typeForExtension(projectPath, segment, base, ext string) (item.ItemType, bool) {
	switch ext {
	case "mcworld":
		return item.TypeMCWorld, true
	case "mctemplate":
		return item.TypeMCTemplate, true
	case "mcaddon":
		return item.TypeMCAddon, true
	case "mcpack":
		return item.TypeMCPack, true
	case "mcproject":
		return item.TypeMCProject, true
	case "zip":
		return item.TypeZip, true
	case "mcfunction":
		return item.TypeFunction, true
	case "mcstructure":
		return item.TypeStructure, true
	case "lang":
		return item.TypeLang, true
	case "ogg", "wav", "mp3", "fsb":
		return item.TypeAudio, true
	case "js", "cjs", "mjs":
		return item.TypeJS, true
	case "ts":
		return item.TypeTS, true
	case "material":
		return item.TypeMaterial, true
	case "vertex":
		return item.TypeMaterialVertex, true
	case "fragment":
		return item.TypeMaterialFragment, true
	case "geometry":
		return item.TypeMaterialGeometry, true
	case "md":
		return item.TypeDocMarkdown, true
	case "ldb", "log":
		if strings.Contains(segment, "/db/") {
			return item.TypeLevelDBLedger, true
		}
		return item.TypeUnknown, false
	case "png", "jpg", "jpeg", "tga":
		return imageTypeFor(segment), true
	case "svg":
		return item.TypeVectorImage, true
	case "mp4", "webm":
		return item.TypeVideo, true
	case "json":
		return jsonTypeFor(projectPath, segment, base), true
	}
	return item.TypeUnknown, false
}

func imageTypeFor(segment string) item.ItemType {
	switch {
	case strings.Contains(segment, "/textures/ui/"):
		return item.TypeUITexture
	case strings.Contains(segment, "/textures/"):
		return item.TypeTexture
	case strings.Contains(segment, "skin"):
		return item.TypeSkinImage
	case strings.Contains(segment, "marketing"):
		return item.TypeMarketingAsset
	case strings.Contains(segment, "store"):
		return item.TypeStoreAsset
	default:
		return item.TypeImage
	}
}

func jsonTypeFor(projectPath, segment, base string) item.ItemType {
	if strings.HasSuffix(base, ".texture_set.json") {
		return item.TypeTextureSetJSON
	}
	if strings.Contains(segment, "/.vscode/") {
		switch base {
		case "tasks.json":
			return item.TypeVSCodeTasksJSON
		case "launch.json":
			return item.TypeVSCodeLaunchJSON
		case "settings.json":
			return item.TypeVSCodeSettingsJSON
		case "extensions.json":
			return item.TypeVSCodeExtensionsJSON
		}
	}

	side := sideOfPath(projectPath)
	byFolder := byFolderResource
	if side == sideBehavior {
		byFolder = byFolderBehavior
	}
	dirs := strings.Split(strings.Trim(segment, "/"), "/")
	// Walk outward-in so "models/entity/x.json" matches models, not
	// entity.
	for i := 0; i < len(dirs)-1; i++ {
		if t, ok := byFolder[dirs[i]]; ok {
			return t
		}
	}
	return item.TypeJSON
}

func extensionOf(base string) string {
	if idx := strings.LastIndex(base, "."); idx >= 0 && idx < len(base)-1 {
		return base[idx+1:]
	}
	return ""
}
