// Package names provides canonical name normalization helpers used across
// Packsmith.
//
// Minecraft content uses two naming conventions that must stay in sync:
//   - Namespaced identifiers: "namespace:snake_case_name", used inside
//     definition JSON (entity identifiers, item identifiers, event names).
//   - File components: snake_case path segments on disk.
//
// This package centralizes both so their derivations are not duplicated.
package names

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// FileComponent converts a display name to a file-safe snake_case component.
func FileComponent(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	return strings.ReplaceAll(slugged, "-", "_")
}

// Identifier builds a namespaced identifier from a namespace and display name.
// An empty namespace falls back to "custom" so generated definitions never
// collide with the reserved "minecraft" namespace.
func Identifier(namespace, name string) string {
	ns := FileComponent(namespace)
	if ns == "" {
		ns = "custom"
	}
	return ns + ":" + FileComponent(name)
}

// ShortName returns the portion of a namespaced identifier after the colon,
// or the input unchanged when it carries no namespace.
func ShortName(identifier string) string {
	if i := strings.Index(identifier, ":"); i >= 0 {
		return identifier[i+1:]
	}
	return identifier
}

// Title converts a file component or identifier short name into a
// human-readable title ("iron_golem" -> "Iron Golem").
func Title(s string) string {
	s = ShortName(s)
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, p := range parts {
		runes := []rune(p)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
