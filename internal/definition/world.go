package definition

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/packsmith/packsmith/internal/storage"
)

// World manages a world container (.mcworld / .mctemplate file or a
// world folder): the level name and the thumbnail image, read from the
// container's archive view or folder listing. Unprocessable containers
// surface as a load error the owning item records as its error status.
type World struct {
	file   storage.File
	folder storage.Folder

	levelName string
	icon      []byte
	loaded    bool
}

// EnsureWorldOnFile returns the world manager attached to a container
// file, attaching and loading one on first access.
func EnsureWorldOnFile(ctx context.Context, f storage.File) (*World, error) {
	if m, ok := f.Manager().(*World); ok {
		return m, nil
	}
	d := &World{file: f}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	f.SetManager(d)
	return d, nil
}

// EnsureWorldOnFolder returns the world manager for a world folder.
// Folder-backed worlds have no file to hang the manager off, so the
// caller owns caching.
func EnsureWorldOnFolder(ctx context.Context, fo storage.Folder) (*World, error) {
	d := &World{folder: fo}
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Load reads the world's level name and icon.
func (d *World) Load(ctx context.Context) error {
	if d.loaded {
		return nil
	}

	root := d.folder
	if root == nil {
		if err := d.file.LoadContent(ctx); err != nil {
			return err
		}
		zs := storage.ArchiveViewOf(ctx, d.file)
		if zs == nil {
			return fmt.Errorf("world container %s is not a readable archive", d.file.ProjectPath())
		}
		root = zs.RootFolder()
	}

	if err := root.Load(ctx); err != nil {
		return err
	}

	if levelDat, ok := root.Files()["level.dat"]; !ok || levelDat == nil {
		return fmt.Errorf("world at %s has no level.dat", root.ProjectPath())
	}

	if nameFile, ok := root.Files()["levelname.txt"]; ok {
		if err := nameFile.LoadContent(ctx); err == nil {
			d.levelName = strings.TrimSpace(string(nameFile.Content()))
		}
	}
	for _, iconName := range []string{"world_icon.jpeg", "world_icon.jpg", "world_icon.png"} {
		if iconFile, ok := root.Files()[iconName]; ok {
			if err := iconFile.LoadContent(ctx); err == nil && len(iconFile.Content()) > 0 {
				d.icon = iconFile.Content()
				break
			}
		}
	}

	d.loaded = true
	return nil
}

// Persist is a no-op; world metadata is read-only at this layer.
func (d *World) Persist() error { return nil }

// LevelName returns the world's display name, or "".
func (d *World) LevelName() string { return d.levelName }

// Thumbnail returns the world icon as an inline data URI, or "".
func (d *World) Thumbnail() string {
	if len(d.icon) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(d.icon)
}
