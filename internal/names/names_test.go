package names

import "testing"

func TestFileComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Iron Golem", "iron_golem"},
		{"iron_golem", "iron_golem"},
		{"Fancy Sword!", "fancy_sword"},
		{"  Spaced  Out  ", "spaced_out"},
		{"Crème Brûlée", "creme_brulee"},
	}
	for _, tc := range tests {
		if got := FileComponent(tc.in); got != tc.want {
			t.Fatalf("FileComponent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
		want      string
	}{
		{"acme", "Iron Golem", "acme:iron_golem"},
		{"", "Iron Golem", "custom:iron_golem"},
		{"My Pack", "Fire Sword", "my_pack:fire_sword"},
	}
	for _, tc := range tests {
		if got := Identifier(tc.namespace, tc.name); got != tc.want {
			t.Fatalf("Identifier(%q, %q) = %q, want %q", tc.namespace, tc.name, got, tc.want)
		}
	}
}

func TestShortName(t *testing.T) {
	if got := ShortName("acme:iron_golem"); got != "iron_golem" {
		t.Fatalf("got %q", got)
	}
	if got := ShortName("iron_golem"); got != "iron_golem" {
		t.Fatalf("got %q", got)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"iron_golem", "Iron Golem"},
		{"acme:fire_sword", "Fire Sword"},
		{"already Title", "Already Title"},
	}
	for _, tc := range tests {
		if got := Title(tc.in); got != tc.want {
			t.Fatalf("Title(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
