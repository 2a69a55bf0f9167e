// Package item implements the project item model: typed, addressable
// content units, their labeled storage variants, and the relationship
// graph discovered between them.
package item

import "strings"

// ItemType is the closed enumeration of content kinds a project tracks.
// The enumeration is the single source of truth for the static tables in
// this file (names, storage kind, pack side, default folder roots).
type ItemType int

const (
	TypeUnknown ItemType = iota
	TypeCustom

	// Project-level and world container kinds.
	TypeMCWorld
	TypeMCTemplate
	TypeMCAddon
	TypeMCPack
	TypeMCProject
	TypeZip
	TypeWorldFolder
	TypeLevelDat
	TypeLevelDBLedger
	TypeWorldHistoryJSON
	TypeBehaviorPackListJSON
	TypeResourcePackListJSON

	// Behavior pack kinds.
	TypeBehaviorPackFolder
	TypeBehaviorPackManifestJSON
	TypeEntityTypeBehavior
	TypeBlockTypeBehavior
	TypeItemTypeBehavior
	TypeLootTableBehavior
	TypeRecipeBehavior
	TypeSpawnRuleBehavior
	TypeTradingBehaviorJSON
	TypeDialogueBehaviorJSON
	TypeFeatureBehavior
	TypeFeatureRuleBehavior
	TypeBiomeBehavior
	TypeBiomeResource
	TypeFunction
	TypeStructure
	TypeTickJSON
	TypeVolumeBehaviorJSON
	TypeCameraBehaviorJSON
	TypeAimAssistPresetJSON
	TypeAimAssistCategoryJSON
	TypeCraftingItemCatalog
	TypeJigsawProcessorList
	TypeJigsawStructure
	TypeJigsawStructureSet
	TypeJigsawTemplatePool
	TypeAnimationBehaviorJSON
	TypeAnimationControllerBehaviorJSON

	// Script kinds.
	TypeJS
	TypeTS
	TypeBuildProcessedJS
	TypeCatalogIndexJS

	// Resource pack kinds.
	TypeResourcePackFolder
	TypeResourcePackManifestJSON
	TypeEntityTypeResource
	TypeAttachableResourceJSON
	TypeParticleJSON
	TypeRenderControllerJSON
	TypeAnimationResourceJSON
	TypeAnimationControllerResourceJSON
	TypeModelGeometryJSON
	TypeMaterial
	TypeMaterialSetJSON
	TypeMaterialGeometry
	TypeMaterialFragment
	TypeMaterialVertex
	TypeTexture
	TypeTextureSetJSON
	TypeTextureListJSON
	TypeTerrainTextureCatalog
	TypeItemTextureCatalog
	TypeFlipbookTexturesCatalog
	TypeUIJSON
	TypeUITexture
	TypeNinesliceJSON
	TypeSoundCatalog
	TypeSoundDefinitionCatalog
	TypeMusicDefinitionCatalog
	TypeAudio
	TypeLang
	TypeLanguagesCatalogResourceJSON
	TypeBiomesClientCatalog
	TypeBlocksCatalogResourceJSON
	TypeSplashesJSON
	TypeFogResourceJSON
	TypeLightingJSON
	TypeAtmosphericsJSON
	TypeColorGradingJSON
	TypeWaterJSON
	TypePBRFallbackJSON
	TypePointLightsJSON

	// Skin and persona kinds.
	TypeSkinPackManifestJSON
	TypeSkinCatalogJSON
	TypeSkinImage
	TypePersonaManifestJSON
	TypePersonaPieceJSON
	TypeDesignPackManifestJSON

	// Generic content kinds.
	TypeJSON
	TypeImage
	TypeVectorImage
	TypeMarketingAsset
	TypeStoreAsset
	TypeVideo
	TypeDocumentedTypeFolder
	TypeDocumentedCommandFolder
	TypeDocMarkdown

	// Tooling and metadata kinds.
	TypePackageJSON
	TypePackageLockJSON
	TypeJSConfigJSON
	TypeTSConfigJSON
	TypeJustConfigTS
	TypeESLintConfigJavaScript
	TypePrettierRCJSON
	TypeVSCodeTasksJSON
	TypeVSCodeLaunchJSON
	TypeVSCodeSettingsJSON
	TypeVSCodeExtensionsJSON
	TypeGitIgnore
	TypeEnvSettings
	TypeContentIndexJSON
	TypeContentReportJSON
	TypeActionSetJSON
	TypeFormJSON
	TypeDataFormJSON
	TypeScriptTypesDefinitionJSON
	TypeCommandSetDefinitionJSON
	TypeMCToolsProjectPreferences

	typeCount // keep last
)

// typeNames maps every ItemType to its stable serialized name. Names are
// the unit persisted in item records; the numeric values are free to be
// reordered.
var typeNames = map[ItemType]string{
	TypeUnknown:                         "unknown",
	TypeCustom:                          "custom",
	TypeMCWorld:                         "MCWorld",
	TypeMCTemplate:                      "MCTemplate",
	TypeMCAddon:                         "MCAddon",
	TypeMCPack:                          "MCPack",
	TypeMCProject:                       "MCProject",
	TypeZip:                             "zip",
	TypeWorldFolder:                     "worldFolder",
	TypeLevelDat:                        "levelDat",
	TypeLevelDBLedger:                   "levelDbLedger",
	TypeWorldHistoryJSON:                "worldHistoryJson",
	TypeBehaviorPackListJSON:            "behaviorPackListJson",
	TypeResourcePackListJSON:            "resourcePackListJson",
	TypeBehaviorPackFolder:              "behaviorPackFolder",
	TypeBehaviorPackManifestJSON:        "behaviorPackManifestJson",
	TypeEntityTypeBehavior:              "entityTypeBehavior",
	TypeBlockTypeBehavior:               "blockTypeBehavior",
	TypeItemTypeBehavior:                "itemTypeBehavior",
	TypeLootTableBehavior:               "lootTableBehavior",
	TypeRecipeBehavior:                  "recipeBehavior",
	TypeSpawnRuleBehavior:               "spawnRuleBehavior",
	TypeTradingBehaviorJSON:             "tradingBehaviorJson",
	TypeDialogueBehaviorJSON:            "dialogueBehaviorJson",
	TypeFeatureBehavior:                 "featureBehavior",
	TypeFeatureRuleBehavior:             "featureRuleBehavior",
	TypeBiomeBehavior:                   "biomeBehavior",
	TypeBiomeResource:                   "biomeResource",
	TypeFunction:                        "function",
	TypeStructure:                       "structure",
	TypeTickJSON:                        "tickJson",
	TypeVolumeBehaviorJSON:              "volumeBehaviorJson",
	TypeCameraBehaviorJSON:              "cameraBehaviorJson",
	TypeAimAssistPresetJSON:             "aimAssistPresetJson",
	TypeAimAssistCategoryJSON:           "aimAssistCategoryJson",
	TypeCraftingItemCatalog:             "craftingItemCatalog",
	TypeJigsawProcessorList:             "jigsawProcessorList",
	TypeJigsawStructure:                 "jigsawStructure",
	TypeJigsawStructureSet:              "jigsawStructureSet",
	TypeJigsawTemplatePool:              "jigsawTemplatePool",
	TypeAnimationBehaviorJSON:           "animationBehaviorJson",
	TypeAnimationControllerBehaviorJSON: "animationControllerBehaviorJson",
	TypeJS:                              "js",
	TypeTS:                              "ts",
	TypeBuildProcessedJS:                "buildProcessedJs",
	TypeCatalogIndexJS:                  "catalogIndexJs",
	TypeResourcePackFolder:              "resourcePackFolder",
	TypeResourcePackManifestJSON:        "resourcePackManifestJson",
	TypeEntityTypeResource:              "entityTypeResource",
	TypeAttachableResourceJSON:          "attachableResourceJson",
	TypeParticleJSON:                    "particleJson",
	TypeRenderControllerJSON:            "renderControllerJson",
	TypeAnimationResourceJSON:           "animationResourceJson",
	TypeAnimationControllerResourceJSON: "animationControllerResourceJson",
	TypeModelGeometryJSON:               "modelGeometryJson",
	TypeMaterial:                        "material",
	TypeMaterialSetJSON:                 "materialSetJson",
	TypeMaterialGeometry:                "materialGeometry",
	TypeMaterialFragment:                "materialFragment",
	TypeMaterialVertex:                  "materialVertex",
	TypeTexture:                         "texture",
	TypeTextureSetJSON:                  "textureSetJson",
	TypeTextureListJSON:                 "textureListJson",
	TypeTerrainTextureCatalog:           "terrainTextureCatalog",
	TypeItemTextureCatalog:              "itemTextureCatalog",
	TypeFlipbookTexturesCatalog:         "flipbookTexturesCatalog",
	TypeUIJSON:                          "uiJson",
	TypeUITexture:                       "uiTexture",
	TypeNinesliceJSON:                   "ninesliceJson",
	TypeSoundCatalog:                    "soundCatalog",
	TypeSoundDefinitionCatalog:          "soundDefinitionCatalog",
	TypeMusicDefinitionCatalog:          "musicDefinitionCatalog",
	TypeAudio:                           "audio",
	TypeLang:                            "lang",
	TypeLanguagesCatalogResourceJSON:    "languagesCatalogResourceJson",
	TypeBiomesClientCatalog:             "biomesClientCatalog",
	TypeBlocksCatalogResourceJSON:       "blocksCatalogResourceJson",
	TypeSplashesJSON:                    "splashesJson",
	TypeFogResourceJSON:                 "fogResourceJson",
	TypeLightingJSON:                    "lightingJson",
	TypeAtmosphericsJSON:                "atmosphericsJson",
	TypeColorGradingJSON:                "colorGradingJson",
	TypeWaterJSON:                       "waterJson",
	TypePBRFallbackJSON:                 "pbrFallbackJson",
	TypePointLightsJSON:                 "pointLightsJson",
	TypeSkinPackManifestJSON:            "skinPackManifestJson",
	TypeSkinCatalogJSON:                 "skinCatalogJson",
	TypeSkinImage:                       "skinImage",
	TypePersonaManifestJSON:             "personaManifestJson",
	TypePersonaPieceJSON:                "personaPieceJson",
	TypeDesignPackManifestJSON:          "designPackManifestJson",
	TypeJSON:                            "json",
	TypeImage:                           "image",
	TypeVectorImage:                     "vectorImage",
	TypeMarketingAsset:                  "marketingAsset",
	TypeStoreAsset:                      "storeAsset",
	TypeVideo:                           "video",
	TypeDocumentedTypeFolder:            "documentedTypeFolder",
	TypeDocumentedCommandFolder:         "documentedCommandFolder",
	TypeDocMarkdown:                     "docMarkdown",
	TypePackageJSON:                     "packageJson",
	TypePackageLockJSON:                 "packageLockJson",
	TypeJSConfigJSON:                    "jsconfigJson",
	TypeTSConfigJSON:                    "tsconfigJson",
	TypeJustConfigTS:                    "justConfigTs",
	TypeESLintConfigJavaScript:          "esLintConfigJavaScript",
	TypePrettierRCJSON:                  "prettierRcJson",
	TypeVSCodeTasksJSON:                 "vsCodeTasksJson",
	TypeVSCodeLaunchJSON:                "vsCodeLaunchJson",
	TypeVSCodeSettingsJSON:              "vsCodeSettingsJson",
	TypeVSCodeExtensionsJSON:            "vsCodeExtensionsJson",
	TypeGitIgnore:                       "gitIgnore",
	TypeEnvSettings:                     "envSettings",
	TypeContentIndexJSON:                "contentIndexJson",
	TypeContentReportJSON:               "contentReportJson",
	TypeActionSetJSON:                   "actionSetJson",
	TypeFormJSON:                        "formJson",
	TypeDataFormJSON:                    "dataFormJson",
	TypeScriptTypesDefinitionJSON:       "scriptTypesDefinitionJson",
	TypeCommandSetDefinitionJSON:        "commandSetDefinitionJson",
	TypeMCToolsProjectPreferences:       "mcToolsProjectPreferences",
}

// typesByName is the reverse of typeNames, built at init so the
// enumeration stays the single source of truth.
var typesByName = func() map[string]ItemType {
	m := make(map[string]ItemType, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the stable serialized name of the type.
func (t ItemType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseItemType returns the type for a serialized name.
func ParseItemType(name string) (ItemType, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// StorageKind says whether an item of a type binds a single file or a
// folder.
type StorageKind int

const (
	StorageFile StorageKind = iota
	StorageFolder
)

// folderTypes is the set of folder-backed types; everything else is
// file-backed.
var folderTypes = map[ItemType]struct{}{
	TypeWorldFolder:             {},
	TypeBehaviorPackFolder:      {},
	TypeResourcePackFolder:      {},
	TypeDocumentedTypeFolder:    {},
	TypeDocumentedCommandFolder: {},
}

// Storage returns the storage kind bound by items of this type.
func (t ItemType) Storage() StorageKind {
	if _, ok := folderTypes[t]; ok {
		return StorageFolder
	}
	return StorageFile
}

// containerTypes is the set of types whose file bytes are themselves a
// nested hierarchical store.
var containerTypes = map[ItemType]struct{}{
	TypeMCWorld:    {},
	TypeMCTemplate: {},
	TypeMCAddon:    {},
	TypeMCPack:     {},
	TypeMCProject:  {},
	TypeZip:        {},
}

// IsContainer reports whether files of this type hold a nested archive.
func (t ItemType) IsContainer() bool {
	_, ok := containerTypes[t]
	return ok
}

// IsWorldContainer reports whether this type carries world content and
// needs a world manager attached after load.
func (t ItemType) IsWorldContainer() bool {
	return t == TypeMCWorld || t == TypeMCTemplate || t == TypeWorldFolder
}

// IsImage reports whether this type is a raster image kind.
func (t ItemType) IsImage() bool {
	switch t {
	case TypeTexture, TypeUITexture, TypeImage, TypeSkinImage, TypeMarketingAsset, TypeStoreAsset:
		return true
	}
	return false
}

// defaultFolderRoots maps a type to its preferred folder names, first
// candidate first, used when creating a new item of the type and no
// existing item establishes a convention. Paths are relative to the
// containing pack folder.
var defaultFolderRoots = map[ItemType][]string{
	TypeEntityTypeBehavior:              {"entities"},
	TypeEntityTypeResource:              {"entity"},
	TypeBlockTypeBehavior:               {"blocks"},
	TypeItemTypeBehavior:                {"items"},
	TypeLootTableBehavior:               {"loot_tables"},
	TypeRecipeBehavior:                  {"recipes"},
	TypeSpawnRuleBehavior:               {"spawn_rules"},
	TypeTradingBehaviorJSON:             {"trading"},
	TypeDialogueBehaviorJSON:            {"dialogue"},
	TypeFeatureBehavior:                 {"features"},
	TypeFeatureRuleBehavior:             {"feature_rules"},
	TypeBiomeBehavior:                   {"biomes"},
	TypeFunction:                        {"functions"},
	TypeStructure:                       {"structures"},
	TypeAnimationBehaviorJSON:           {"animations"},
	TypeAnimationControllerBehaviorJSON: {"animation_controllers"},
	TypeAnimationResourceJSON:           {"animations"},
	TypeAnimationControllerResourceJSON: {"animation_controllers"},
	TypeParticleJSON:                    {"particles"},
	TypeRenderControllerJSON:            {"render_controllers"},
	TypeModelGeometryJSON:               {"models", "models/entity"},
	TypeAttachableResourceJSON:          {"attachables"},
	TypeTexture:                         {"textures"},
	TypeTextureSetJSON:                  {"textures"},
	TypeUIJSON:                          {"ui"},
	TypeUITexture:                       {"textures/ui"},
	TypeAudio:                           {"sounds"},
	TypeLang:                            {"texts"},
	TypeFogResourceJSON:                 {"fogs"},
	TypeMaterial:                        {"materials"},
	TypeJS:                              {"scripts"},
	TypeTS:                              {"scripts"},
}

// DefaultFolderRoots returns the conventional folder names for a type,
// or nil when the type has no convention (root-of-pack files such as
// manifests and catalogs).
func (t ItemType) DefaultFolderRoots() []string {
	return defaultFolderRoots[t]
}

// PrimaryFolderRoot returns the first conventional folder name, or "".
func (t ItemType) PrimaryFolderRoot() string {
	roots := defaultFolderRoots[t]
	if len(roots) == 0 {
		return ""
	}
	return roots[0]
}

// DefaultExtension returns the file extension used when creating an item
// of this type.
func (t ItemType) DefaultExtension() string {
	switch t {
	case TypeJS, TypeBuildProcessedJS, TypeCatalogIndexJS, TypeESLintConfigJavaScript:
		return "js"
	case TypeTS, TypeJustConfigTS:
		return "ts"
	case TypeFunction:
		return "mcfunction"
	case TypeStructure:
		return "mcstructure"
	case TypeLang:
		return "lang"
	case TypeAudio:
		return "ogg"
	case TypeTexture, TypeUITexture, TypeImage, TypeSkinImage:
		return "png"
	case TypeMaterial:
		return "material"
	case TypeMCWorld:
		return "mcworld"
	case TypeMCTemplate:
		return "mctemplate"
	case TypeMCAddon:
		return "mcaddon"
	case TypeMCPack:
		return "mcpack"
	case TypeZip:
		return "zip"
	case TypeDocMarkdown:
		return "md"
	case TypeGitIgnore:
		return "gitignore"
	case TypeEnvSettings:
		return "env"
	default:
		return "json"
	}
}

// humanTitles overrides the derived display title for kinds whose camel
// name reads poorly.
var humanTitles = map[ItemType]string{
	TypeMCWorld:                  "World (mcworld)",
	TypeMCTemplate:               "World template",
	TypeMCAddon:                  "Add-on",
	TypeMCPack:                   "Pack",
	TypeMCProject:                "Project (mcproject)",
	TypeJS:                       "JavaScript file",
	TypeTS:                       "TypeScript file",
	TypeUIJSON:                   "UI definition",
	TypeEntityTypeBehavior:       "Entity type",
	TypeEntityTypeResource:       "Entity type visuals and audio",
	TypeSoundCatalog:             "Sound catalog",
	TypeSoundDefinitionCatalog:   "Sound definition catalog",
	TypeMusicDefinitionCatalog:   "Music definition catalog",
	TypeBehaviorPackManifestJSON: "Behavior pack manifest",
	TypeResourcePackManifestJSON: "Resource pack manifest",
}

// Title returns a human-readable display title for the type.
func (t ItemType) Title() string {
	if title, ok := humanTitles[t]; ok {
		return title
	}
	name := t.String()

	// Derive "wordA wordB" from "wordAWordB", keeping acronym runs intact.
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(name[i-1])
			if prev < 'A' || prev > 'Z' {
				b.WriteByte(' ')
			}
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			b.WriteRune(r - 32)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreationType records how an item came to exist.
type CreationType int

const (
	CreationNormal CreationType = iota
	CreationGenerated
	CreationBuild
	CreationDist
)

var creationNames = map[CreationType]string{
	CreationNormal:    "normal",
	CreationGenerated: "generated",
	CreationBuild:     "build",
	CreationDist:      "dist",
}

func (c CreationType) String() string {
	if n, ok := creationNames[c]; ok {
		return n
	}
	return "normal"
}

// ParseCreationType returns the creation type for a serialized name.
func ParseCreationType(name string) CreationType {
	for c, n := range creationNames {
		if n == name {
			return c
		}
	}
	return CreationNormal
}

// EditPreference records how the user prefers to edit an item.
type EditPreference int

const (
	EditProjectDefault EditPreference = iota
	EditForm
	EditRaw
)

// ErrorStatus records a non-fatal load problem surfaced on an item or
// variant instead of an exception.
type ErrorStatus int

const (
	ErrorNone ErrorStatus = iota
	ErrorUnprocessable
)
