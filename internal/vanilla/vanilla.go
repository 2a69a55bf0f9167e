// Package vanilla answers whether an identifier or content path is
// supplied by the base game rather than the current project. Unresolved
// references classified as vanilla-dependent are expected to ship with
// the game; the rest are genuinely missing project files.
package vanilla

import (
	"context"
	_ "embed"
	"strings"
	"sync"

	"github.com/packsmith/packsmith/internal/paths"
)

// Index classifies tokens against a vanilla-content catalog. The lookup
// is context-bound because implementations may consult an external
// content index service.
type Index interface {
	IsVanillaToken(ctx context.Context, token string) (bool, error)
}

//go:embed data/vanilla_tokens.txt
var embeddedTokens string

// EmbeddedIndex is an Index backed by the token catalog compiled into
// the binary.
type EmbeddedIndex struct {
	once   sync.Once
	tokens map[string]struct{}
}

// NewEmbeddedIndex creates an index over the embedded vanilla catalog.
func NewEmbeddedIndex() *EmbeddedIndex {
	return &EmbeddedIndex{}
}

func (e *EmbeddedIndex) load() {
	e.tokens = make(map[string]struct{})
	for _, line := range strings.Split(embeddedTokens, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e.tokens[paths.Canonicalize(line)] = struct{}{}
	}
}

// IsVanillaToken reports whether the token names base-game content. A
// "minecraft:"-namespaced identifier is always vanilla; other tokens are
// matched canonically against the embedded catalog.
func (e *EmbeddedIndex) IsVanillaToken(ctx context.Context, token string) (bool, error) {
	e.once.Do(e.load)

	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	if strings.HasPrefix(strings.ToLower(token), "minecraft:") {
		return true, nil
	}
	_, ok := e.tokens[paths.Canonicalize(token)]
	return ok, nil
}

// UnionIndex combines indexes; a token is vanilla when any member says
// so. Used to layer per-project extra tokens over the embedded catalog.
type UnionIndex struct {
	members []Index
}

// NewUnionIndex creates an index over the given members.
func NewUnionIndex(members ...Index) *UnionIndex {
	return &UnionIndex{members: members}
}

// IsVanillaToken asks each member in order.
func (u *UnionIndex) IsVanillaToken(ctx context.Context, token string) (bool, error) {
	for _, m := range u.members {
		ok, err := m.IsVanillaToken(ctx, token)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// StaticIndex is a fixed-set Index for tests and offline use.
type StaticIndex struct {
	tokens map[string]struct{}
}

// NewStaticIndex creates an index over the given tokens.
func NewStaticIndex(tokens ...string) *StaticIndex {
	s := &StaticIndex{tokens: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		s.tokens[paths.Canonicalize(t)] = struct{}{}
	}
	return s
}

// IsVanillaToken reports membership in the static set.
func (s *StaticIndex) IsVanillaToken(ctx context.Context, token string) (bool, error) {
	_, ok := s.tokens[paths.Canonicalize(token)]
	return ok, nil
}
