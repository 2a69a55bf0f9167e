package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfigDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my_addon")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig: %v", err)
	}
	if cfg.Name != "my_addon" {
		t.Errorf("expected name from directory, got %q", cfg.Name)
	}
	if !cfg.AutoIndexEnabled() {
		t.Error("auto index should default to enabled")
	}
	if cfg.ScanContainersEnabled() {
		t.Error("container scanning should default to disabled")
	}
}

func TestProjectConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	off := false
	on := true
	cfg := &ProjectConfig{
		Name:               "My Addon",
		Namespace:          "acme",
		BehaviorPacksDir:   "bp",
		AutoIndex:          &off,
		ScanContainers:     &on,
		ExtraVanillaTokens: []string{"sounds/ambient/custom"},
	}

	if err := SaveProjectConfig(dir, cfg); err != nil {
		t.Fatalf("SaveProjectConfig: %v", err)
	}
	loaded, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig: %v", err)
	}

	if loaded.Name != "My Addon" || loaded.Namespace != "acme" {
		t.Errorf("unexpected identity fields: %+v", loaded)
	}
	if loaded.BehaviorPacksDir != "bp" || loaded.ResourcePacksDir != "" {
		t.Errorf("unexpected pack dirs: %+v", loaded)
	}
	if loaded.AutoIndexEnabled() {
		t.Error("auto index should be disabled after round trip")
	}
	if !loaded.ScanContainersEnabled() {
		t.Error("container scanning should be enabled after round trip")
	}
	if len(loaded.ExtraVanillaTokens) != 1 || loaded.ExtraVanillaTokens[0] != "sounds/ambient/custom" {
		t.Errorf("unexpected extra vanilla tokens: %v", loaded.ExtraVanillaTokens)
	}
}

func TestLoadProjectConfigBlankNameFallsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fallback_proj")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ProjectConfigName), []byte("namespace: acme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig: %v", err)
	}
	if cfg.Name != "fallback_proj" {
		t.Errorf("expected directory-name fallback, got %q", cfg.Name)
	}
	if cfg.Namespace != "acme" {
		t.Errorf("unexpected namespace %q", cfg.Namespace)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "behavior_packs", "bp", "entities")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ProjectConfigName), []byte("name: demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if found != root {
		t.Errorf("expected %q, got %q", root, found)
	}
}

func TestFindProjectRootViaIndexDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".packsmith"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "resource_packs")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(sub)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if found != root {
		t.Errorf("expected %q, got %q", root, found)
	}
}
