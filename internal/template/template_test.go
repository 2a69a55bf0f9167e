package template

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
)

func TestValuesFor(t *testing.T) {
	vals := ValuesFor("acme", "Copper Golem")
	if vals.Name != "copper_golem" {
		t.Errorf("Name = %q", vals.Name)
	}
	if vals.Identifier != "acme:copper_golem" {
		t.Errorf("Identifier = %q", vals.Identifier)
	}
	if vals.Title != "Copper Golem" {
		t.Errorf("Title = %q", vals.Title)
	}
}

func TestForTypeEntityBehavior(t *testing.T) {
	vals := ValuesFor("acme", "Copper Golem")
	content := ForType(item.TypeEntityTypeBehavior, vals)

	if !gjson.ValidBytes(content) {
		t.Fatalf("seed is not valid JSON:\n%s", content)
	}
	id := gjson.GetBytes(content, "minecraft:entity.description.identifier")
	if id.String() != "acme:copper_golem" {
		t.Errorf("identifier = %q", id.String())
	}
	if strings.Contains(string(content), "{{") {
		t.Errorf("unsubstituted placeholder left in seed:\n%s", content)
	}
}

func TestForTypeManifestGetsDistinctUUIDs(t *testing.T) {
	vals := ValuesFor("acme", "My Pack")
	content := ForType(item.TypeBehaviorPackManifestJSON, vals)

	if !gjson.ValidBytes(content) {
		t.Fatalf("manifest seed is not valid JSON:\n%s", content)
	}
	header := gjson.GetBytes(content, "header.uuid").String()
	module := gjson.GetBytes(content, "modules.0.uuid").String()
	if header == "" || module == "" {
		t.Fatalf("expected uuids in manifest seed:\n%s", content)
	}
	if header == module {
		t.Error("expected header and module uuids to differ")
	}
}

func TestForTypeWithoutSeed(t *testing.T) {
	content := ForType(item.TypeFunction, ValuesFor("acme", "thing"))
	if string(content) != "{}\n" {
		t.Errorf("expected empty object fallback, got %q", content)
	}
	if HasSeed(item.TypeFunction) {
		t.Error("expected no seed for function type")
	}
	if !HasSeed(item.TypeEntityTypeBehavior) {
		t.Error("expected seed for entity behavior")
	}
}

func TestWithIdentifier(t *testing.T) {
	content := []byte(`{"minecraft:block": {"description": {"identifier": "old:id"}}}`)
	updated := WithIdentifier(item.TypeBlockTypeBehavior, content, "acme:new_block")
	got := gjson.GetBytes(updated, "minecraft:block.description.identifier").String()
	if got != "acme:new_block" {
		t.Errorf("identifier = %q", got)
	}

	// Non-JSON content passes through untouched.
	raw := []byte("not json")
	if string(WithIdentifier(item.TypeBlockTypeBehavior, raw, "acme:x")) != "not json" {
		t.Error("expected invalid JSON to pass through unchanged")
	}

	// Types without an identifier field pass through.
	if string(WithIdentifier(item.TypeTexture, content, "acme:x")) != string(content) {
		t.Error("expected identifierless type to pass through unchanged")
	}
}
