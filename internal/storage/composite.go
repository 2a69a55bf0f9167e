package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Debug, when true, emits traversal diagnostics to stderr. Unresolvable
// composite paths are an expected condition and never an error; the
// diagnostics exist to explain why an item resolved as absent.
var Debug = false

func debugf(format string, args ...interface{}) {
	if Debug {
		fmt.Fprintf(os.Stderr, "storage: "+format+"\n", args...)
	}
}

// SplitComposite splits a composite project path into its container
// segments. A path with no ContainerDelimiter yields a single segment.
func SplitComposite(projectPath string) []string {
	return strings.Split(projectPath, ContainerDelimiter)
}

// JoinComposite joins container segments back into a composite path.
func JoinComposite(segments ...string) string {
	return strings.Join(segments, ContainerDelimiter)
}

// ArchiveViewOf materializes (or reuses) a nested-archive view over the
// given container file. The view is cached on the file itself, so the
// archive is decoded at most once per file regardless of how many callers
// descend through it. Returns nil if the file's bytes cannot be read or
// are not a readable archive.
func ArchiveViewOf(ctx context.Context, containerFile File) *ZipStorage {
	if zs := containerFile.Archive(); zs != nil {
		return zs
	}

	if err := containerFile.LoadContent(ctx); err != nil {
		debugf("could not load container %s: %v", containerFile.ProjectPath(), err)
		return nil
	}

	data := containerFile.Content()
	if len(data) == 0 {
		debugf("container %s has no binary content", containerFile.ProjectPath())
		return nil
	}

	zs, err := FromBytes(data)
	if err != nil {
		debugf("could not read container %s as an archive: %v", containerFile.ProjectPath(), err)
		return nil
	}

	containerFile.SetArchive(zs)
	return zs
}

// DescendContainers walks every container segment of a composite project
// path: each segment but the last names a container file whose bytes are
// materialized as an archive view, and traversal descends into that view's
// root folder. It returns the folder the final segment resolves against
// and the final in-container path.
//
// Traversal failure (missing container file, unreadable archive) is
// non-fatal: ok is false and the caller should treat the target as absent.
func DescendContainers(ctx context.Context, root Folder, projectPath string) (folder Folder, finalSegment string, ok bool) {
	segments := SplitComposite(projectPath)

	current := root
	for i := 0; i < len(segments)-1; i++ {
		seg := strings.TrimPrefix(segments[i], Delimiter)
		containerFile, err := current.EnsureFileFromRelativePath(seg)
		if err != nil {
			debugf("bad container segment %q in %s: %v", seg, projectPath, err)
			return nil, "", false
		}

		zs := ArchiveViewOf(ctx, containerFile)
		if zs == nil {
			return nil, "", false
		}

		current = zs.RootFolder()
	}

	return current, segments[len(segments)-1], true
}

// ResolveFile resolves a composite project path to a file node, descending
// through any container segments. The returned file node may not exist in
// backing storage; ok is false only when a container layer could not be
// traversed.
func ResolveFile(ctx context.Context, root Folder, projectPath string) (File, bool) {
	folder, final, ok := DescendContainers(ctx, root, projectPath)
	if !ok {
		return nil, false
	}
	f, err := folder.EnsureFileFromRelativePath(strings.TrimPrefix(final, Delimiter))
	if err != nil {
		debugf("bad final segment in %s: %v", projectPath, err)
		return nil, false
	}
	return f, true
}

// ResolveFolder resolves a composite project path to a folder node.
func ResolveFolder(ctx context.Context, root Folder, projectPath string) (Folder, bool) {
	folder, final, ok := DescendContainers(ctx, root, projectPath)
	if !ok {
		return nil, false
	}
	final = strings.TrimPrefix(final, Delimiter)
	if final == "" {
		return folder, true
	}
	fo, err := folder.EnsureFolderFromRelativePath(final)
	if err != nil {
		debugf("bad final segment in %s: %v", projectPath, err)
		return nil, false
	}
	return fo, true
}
