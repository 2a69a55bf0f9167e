package paths

import "testing"

func TestNormalizeDirRoot(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"textures", "textures/"},
		{"textures/", "textures/"},
		{"/textures/", "textures/"},
		{"sounds\\music", "sounds/music/"},
	}
	for _, tc := range tests {
		if got := NormalizeDirRoot(tc.in); got != tc.want {
			t.Fatalf("NormalizeDirRoot(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInnermostSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/resource_packs/rp/textures/a.png", "/resource_packs/rp/textures/a.png"},
		{"/world/resources.zip#rp/manifest.json", "rp/manifest.json"},
		{"/a.zip#b.zip#c/entity.json", "c/entity.json"},
	}
	for _, tc := range tests {
		if got := InnermostSegment(tc.in); got != tc.want {
			t.Fatalf("InnermostSegment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"textures/blocks/stone.png", "textures/blocks/stone"},
		{"textures/blocks/stone", "textures/blocks/stone"},
		{"a.b/c", "a.b/c"},
		{"dir/.gitignore", "dir/.gitignore"},
		{".gitignore", ".gitignore"},
		{"sound.ogg", "sound"},
	}
	for _, tc := range tests {
		if got := StripExtension(tc.in); got != tc.want {
			t.Fatalf("StripExtension(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Textures\\Blocks\\Stone.PNG", "textures/blocks/stone"},
		{"/sounds/mob/zombie/say.ogg", "sounds/mob/zombie/say"},
		{"textures/items/apple", "textures/items/apple"},
	}
	for _, tc := range tests {
		if got := Canonicalize(tc.in); got != tc.want {
			t.Fatalf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeKeepExtension(t *testing.T) {
	if got := CanonicalizeKeepExtension("\\Textures\\A.PNG"); got != "textures/a.png" {
		t.Fatalf("got %q", got)
	}
}

func TestFromRoot(t *testing.T) {
	tests := []struct {
		path string
		root string
		want string
		ok   bool
	}{
		{"/resource_packs/rp/textures/blocks/stone.png", "textures", "textures/blocks/stone.png", true},
		{"/resource_packs/rp/sounds/ambient.ogg", "textures", "", false},
		{"textures/blocks/stone.png", "textures", "textures/blocks/stone.png", true},
		{"/world/resources.zip#rp/Textures/ui/icon.png", "textures", "Textures/ui/icon.png", true},
	}
	for _, tc := range tests {
		got, ok := FromRoot(tc.path, tc.root)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("FromRoot(%q, %q) = %q, %v; want %q, %v", tc.path, tc.root, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCanonicalFromRoot(t *testing.T) {
	got, ok := CanonicalFromRoot("/rp/Textures/Blocks/Stone.PNG", "textures")
	if !ok || got != "textures/blocks/stone" {
		t.Fatalf("got %q, %v", got, ok)
	}
}
