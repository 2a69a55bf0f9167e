package watcher

import (
	"context"
	"testing"
	"time"
)

func TestNewRequiresProjectPathAndRefresh(t *testing.T) {
	noop := func(ctx context.Context) (Refresh, error) { return Refresh{}, nil }

	if _, err := New(Config{Refresh: noop}); err == nil {
		t.Error("expected error without project path")
	}
	if _, err := New(Config{ProjectPath: "/tmp/proj"}); err == nil {
		t.Error("expected error without refresh function")
	}
	w, err := New(Config{ProjectPath: "/tmp/proj", Refresh: noop})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.debounceDelay != 250*time.Millisecond {
		t.Errorf("unexpected default debounce %v", w.debounceDelay)
	}
}

func TestTakeIfSettledDebounces(t *testing.T) {
	noop := func(ctx context.Context) (Refresh, error) { return Refresh{}, nil }
	w, err := New(Config{
		ProjectPath:   "/tmp/proj",
		Refresh:       noop,
		DebounceDelay: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if w.takeIfSettled() {
		t.Error("clean watcher should not report pending work")
	}

	w.markDirty()
	if w.takeIfSettled() {
		t.Error("fresh event should still be inside the debounce window")
	}

	time.Sleep(30 * time.Millisecond)
	if !w.takeIfSettled() {
		t.Error("settled event should be ready")
	}
	if w.takeIfSettled() {
		t.Error("dirty flag should clear after being taken")
	}
}

func TestShouldIgnore(t *testing.T) {
	noop := func(ctx context.Context) (Refresh, error) { return Refresh{}, nil }
	w, err := New(Config{ProjectPath: "/proj", Refresh: noop})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/proj/behavior_packs/bp/entities/golem.json", false},
		{"/proj/.packsmith/index.db", true},
		{"/proj/.packsmith/index.db-wal", true},
		{"/proj/.git/HEAD", true},
		{"/proj/resource_packs/rp/node_modules/x.json", true},
		{"/proj/packsmith.yml", false},
	}
	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
