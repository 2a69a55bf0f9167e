package definition

import (
	"context"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/storage"
)

// EnsureOnFile attaches and loads the definition manager matching the
// item type, returning nil for types that carry no structured
// definition (textures, audio, scripts). Attachment is idempotent: a
// manager already on the file is returned as-is.
func EnsureOnFile(ctx context.Context, t item.ItemType, f storage.File) (storage.ContentManager, error) {
	switch t {
	case item.TypeEntityTypeBehavior:
		return EnsureEntityTypeBehaviorOnFile(ctx, f)
	case item.TypeEntityTypeResource:
		return EnsureEntityTypeResourceOnFile(ctx, f)
	case item.TypeSpawnRuleBehavior:
		return EnsureSpawnRuleOnFile(ctx, f)
	case item.TypeSoundDefinitionCatalog:
		return EnsureSoundDefinitionCatalogOnFile(ctx, f)
	case item.TypeSoundCatalog:
		return EnsureSoundCatalogOnFile(ctx, f)
	case item.TypeMusicDefinitionCatalog:
		return EnsureMusicCatalogOnFile(ctx, f)
	case item.TypeItemTextureCatalog, item.TypeTerrainTextureCatalog, item.TypeFlipbookTexturesCatalog:
		return EnsureTextureCatalogOnFile(ctx, f)
	case item.TypeTextureSetJSON:
		return EnsureTextureSetOnFile(ctx, f)
	case item.TypeBehaviorPackManifestJSON, item.TypeResourcePackManifestJSON, item.TypeSkinPackManifestJSON:
		return EnsureManifestOnFile(ctx, f)
	case item.TypeMCWorld, item.TypeMCTemplate:
		return EnsureWorldOnFile(ctx, f)
	default:
		return nil, nil
	}
}
