// Package paths provides canonical helpers for matching content
// references against project paths. Catalog formats reference content by
// pack-relative paths anchored at a conventional root folder (textures/,
// sounds/, ...), usually without an extension and with inconsistent
// casing; matching is always done on the canonicalized form, never the
// original string.
package paths

import (
	"strings"
)

// Delimiter separates path segments; ContainerDelimiter separates nested
// archive segments in composite paths. These mirror the storage layer.
const (
	Delimiter          = "/"
	ContainerDelimiter = "#"
)

// NormalizeDirRoot normalizes a folder root to have no leading slash and
// exactly one trailing slash (unless empty).
func NormalizeDirRoot(root string) string {
	root = strings.Trim(strings.ReplaceAll(root, "\\", Delimiter), Delimiter)
	if root == "" {
		return ""
	}
	return root + Delimiter
}

// InnermostSegment returns the final container segment of a composite
// path: the part addressing content inside the innermost archive, or the
// whole path when not composite.
func InnermostSegment(projectPath string) string {
	if idx := strings.LastIndex(projectPath, ContainerDelimiter); idx >= 0 {
		return projectPath[idx+1:]
	}
	return projectPath
}

// StripExtension removes a trailing file extension. Dotfiles keep their
// name.
func StripExtension(p string) string {
	slash := strings.LastIndex(p, Delimiter)
	dot := strings.LastIndex(p, ".")
	if dot > slash+1 {
		return p[:dot]
	}
	return p
}

// Canonicalize converts a referenced path to its canonical matching form:
// forward slashes, no leading slash, extension stripped, case folded.
func Canonicalize(ref string) string {
	ref = strings.ReplaceAll(ref, "\\", Delimiter)
	ref = strings.TrimPrefix(ref, Delimiter)
	return strings.ToLower(StripExtension(ref))
}

// CanonicalizeKeepExtension is Canonicalize without extension stripping,
// for catalogs that reference exact file names.
func CanonicalizeKeepExtension(ref string) string {
	ref = strings.ReplaceAll(ref, "\\", Delimiter)
	ref = strings.TrimPrefix(ref, Delimiter)
	return strings.ToLower(ref)
}

// FromRoot anchors a project path at a conventional root folder name:
// for "/packs/rp/textures/blocks/stone.png" and root "textures" it
// returns "textures/blocks/stone.png". The search runs over the
// innermost container segment so composite paths match the same way as
// plain ones. Returns false when the root folder does not appear.
func FromRoot(projectPath, root string) (string, bool) {
	p := InnermostSegment(projectPath)
	p = strings.ReplaceAll(p, "\\", Delimiter)

	needle := Delimiter + NormalizeDirRoot(root)
	if idx := strings.Index(strings.ToLower(p), strings.ToLower(needle)); idx >= 0 {
		return p[idx+1:], true
	}
	rooted := NormalizeDirRoot(root)
	if strings.HasPrefix(strings.ToLower(strings.TrimPrefix(p, Delimiter)), strings.ToLower(rooted)) {
		return strings.TrimPrefix(p, Delimiter), true
	}
	return "", false
}

// CanonicalFromRoot anchors a project path at a root folder and
// canonicalizes the result for matching.
func CanonicalFromRoot(projectPath, root string) (string, bool) {
	rel, ok := FromRoot(projectPath, root)
	if !ok {
		return "", false
	}
	return Canonicalize(rel), true
}
