// Package template seeds newly created content files with starter
// definitions.
//
// Seeds are embedded JSON documents keyed by the serialized item type name.
// A seed goes through two passes before it is written: textual placeholder
// substitution for names and UUIDs, then a structural pass that writes the
// namespaced identifier into the definition's identifier field so the seeded
// document stays valid JSON even when a display name contains characters the
// textual pass would mangle.
package template

import (
	"embed"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/names"
)

//go:embed seeds/*.json
var seedFS embed.FS

// Values carries the substitutions available to seeds.
type Values struct {
	// Name is the file-safe short name, e.g. "copper_golem".
	Name string
	// Identifier is the namespaced identifier, e.g. "acme:copper_golem".
	Identifier string
	// Title is the human-readable display name, e.g. "Copper Golem".
	Title string
}

// ValuesFor derives seed values from a namespace and a display name.
func ValuesFor(namespace, displayName string) Values {
	short := names.FileComponent(displayName)
	return Values{
		Name:       short,
		Identifier: names.Identifier(namespace, displayName),
		Title:      names.Title(short),
	}
}

// identifierPaths maps item types to the gjson path of the identifier field
// in their definition documents.
var identifierPaths = map[item.ItemType]string{
	item.TypeEntityTypeBehavior: "minecraft:entity.description.identifier",
	item.TypeEntityTypeResource: "minecraft:client_entity.description.identifier",
	item.TypeBlockTypeBehavior:  "minecraft:block.description.identifier",
	item.TypeItemTypeBehavior:   "minecraft:item.description.identifier",
	item.TypeSpawnRuleBehavior:  "minecraft:spawn_rules.description.identifier",
	item.TypeRecipeBehavior:     "minecraft:recipe_shaped.description.identifier",
}

// ForType returns seeded starter content for a new item of the given type.
// Types without a seed get an empty JSON object so a freshly created file is
// always parseable.
func ForType(t item.ItemType, vals Values) []byte {
	raw, err := seedFS.ReadFile("seeds/" + t.String() + ".json")
	if err != nil {
		return []byte("{}\n")
	}
	content := substitute(raw, vals)
	return WithIdentifier(t, content, vals.Identifier)
}

// HasSeed reports whether a starter seed exists for the given type.
func HasSeed(t item.ItemType) bool {
	_, err := seedFS.ReadFile("seeds/" + t.String() + ".json")
	return err == nil
}

// WithIdentifier writes identifier into the definition's identifier field
// when the type carries one. Content that is not valid JSON is returned
// unchanged.
func WithIdentifier(t item.ItemType, content []byte, identifier string) []byte {
	path, ok := identifierPaths[t]
	if !ok || identifier == "" {
		return content
	}
	if !gjson.ValidBytes(content) {
		return content
	}
	updated, err := sjson.SetBytes(content, path, identifier)
	if err != nil {
		return content
	}
	return updated
}

func substitute(raw []byte, vals Values) []byte {
	s := string(raw)
	s = strings.ReplaceAll(s, "{{identifier}}", vals.Identifier)
	s = strings.ReplaceAll(s, "{{name}}", vals.Name)
	s = strings.ReplaceAll(s, "{{title}}", vals.Title)
	for _, placeholder := range []string{"{{uuid}}", "{{uuid2}}"} {
		s = strings.Replace(s, placeholder, uuid.NewString(), 1)
	}
	return []byte(s)
}
