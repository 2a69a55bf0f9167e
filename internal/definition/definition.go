// Package definition implements the typed content managers attached to
// project item files: one manager kind per content format, each able to
// parse its file, persist it back, and discover which other project
// items its content references.
package definition

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/paths"
	"github.com/packsmith/packsmith/internal/storage"
	"github.com/packsmith/packsmith/internal/vanilla"
)

// Debug, when true, emits parse diagnostics to stderr. Malformed JSON is
// an expected input condition: it degrades to "no structured content",
// never a failure.
var Debug = false

func debugf(format string, args ...interface{}) {
	if Debug {
		fmt.Fprintf(os.Stderr, "definition: "+format+"\n", args...)
	}
}

// ProjectView is the narrow view of a project that relationship
// discovery needs: the candidate item set, the shared graph, and the
// vanilla-content classifier.
type ProjectView interface {
	Items() []*item.Item
	ItemsByType(t item.ItemType) []*item.Item
	Graph() *item.Graph
	VanillaIndex() vanilla.Index
}

// ChildAdder is implemented by definition managers that can discover
// relationships from their parsed content.
type ChildAdder interface {
	AddChildItems(ctx context.Context, view ProjectView, owner *item.Item) error
}

// jsonDefinition is the shared core of JSON-backed managers: lazy,
// idempotent parse with graceful degradation on malformed content.
type jsonDefinition struct {
	file   storage.File
	root   gjson.Result
	raw    []byte
	loaded bool
}

// Load parses the file's bytes. Malformed JSON leaves the manager loaded
// with no structured content.
func (d *jsonDefinition) Load(ctx context.Context) error {
	if d.loaded {
		return nil
	}
	if err := d.file.LoadContent(ctx); err != nil {
		return err
	}
	data := d.file.Content()
	d.loaded = true
	if len(data) == 0 {
		return nil
	}
	if !gjson.ValidBytes(data) {
		debugf("malformed JSON in %s; treating as empty", d.file.ProjectPath())
		return nil
	}
	d.raw = data
	d.root = gjson.ParseBytes(data)
	return nil
}

// Persist writes the manager's content back into the file.
func (d *jsonDefinition) Persist() error {
	if d.raw != nil {
		d.file.SetContent(d.raw)
	}
	return nil
}

// HasContent reports whether structured content parsed successfully.
func (d *jsonDefinition) HasContent() bool {
	return d.root.Exists() || d.root.Type != gjson.Null || len(d.raw) > 0
}

// File returns the backing file.
func (d *jsonDefinition) File() storage.File { return d.file }

// setRaw replaces the manager's serialized content.
func (d *jsonDefinition) setRaw(data []byte) {
	d.raw = data
	d.root = gjson.ParseBytes(data)
	d.file.SetContent(data)
}

// refResolver runs the common relationship-discovery algorithm: given a
// list of referenced paths from a definition, link every candidate item
// whose canonical path matches a reference, then record the leftovers as
// unfulfilled relationships classified against the vanilla index.
//
// A reference is removed from the remaining set only when it actually
// matches, so redundant references to an already-matched path do not
// mask still-unmatched distinct paths, and one edge at most is created
// per distinct target.
type refResolver struct {
	remaining map[string]string // canonical -> original reference
	order     []string          // canonical, in first-seen order
}

func newRefResolver() *refResolver {
	return &refResolver{remaining: make(map[string]string)}
}

// add registers a referenced path, canonicalized for matching.
func (r *refResolver) add(ref string) {
	canonical := paths.Canonicalize(ref)
	if canonical == "" {
		return
	}
	if _, ok := r.remaining[canonical]; ok {
		return
	}
	r.remaining[canonical] = ref
	r.order = append(r.order, canonical)
}

// linkMatches scans candidates of one type, anchoring each candidate's
// project path at the given conventional root folder, and links matches
// as children of owner.
func (r *refResolver) linkMatches(owner *item.Item, candidates []*item.Item, root string) {
	for _, candidate := range candidates {
		if candidate == owner {
			continue
		}
		canonical, ok := paths.CanonicalFromRoot(candidate.ProjectPath(), root)
		if !ok {
			continue
		}
		if _, want := r.remaining[canonical]; want {
			owner.AddChildItem(candidate)
			delete(r.remaining, canonical)
		}
	}
}

// linkByKey links candidates whose precomputed canonical key matches a
// reference, for formats that match on names rather than paths.
func (r *refResolver) linkByKey(owner *item.Item, candidates []*item.Item, keyOf func(*item.Item) []string) {
	for _, candidate := range candidates {
		if candidate == owner {
			continue
		}
		for _, key := range keyOf(candidate) {
			canonical := paths.Canonicalize(key)
			if _, want := r.remaining[canonical]; want {
				owner.AddChildItem(candidate)
				delete(r.remaining, canonical)
			}
		}
	}
}

// recordUnfulfilled classifies every still-unmatched reference against
// the vanilla index and records it on the owner. Classification is per
// token; it is a recorded fact, not a heuristic.
func (r *refResolver) recordUnfulfilled(ctx context.Context, view ProjectView, owner *item.Item, refType item.ItemType) error {
	for _, canonical := range r.order {
		original, still := r.remaining[canonical]
		if !still {
			continue
		}
		isVanilla, err := view.VanillaIndex().IsVanillaToken(ctx, original)
		if err != nil {
			return fmt.Errorf("classify token %q: %w", original, err)
		}
		view.Graph().AddUnfulfilled(owner, original, refType, isVanilla)
	}
	return nil
}

// stringsFromSoundEntry extracts path strings from a sounds-array entry,
// which may be a bare string or an object with a name field.
func stringsFromSoundEntry(entry gjson.Result) []string {
	switch {
	case entry.Type == gjson.String:
		return []string{entry.String()}
	case entry.IsObject():
		if name := entry.Get("name"); name.Type == gjson.String {
			return []string{name.String()}
		}
	}
	return nil
}
