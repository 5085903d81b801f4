// Package sre implements the symbolic regex algebra: a hash-consed AST of
// symbolic regex nodes with normalization laws, supporting Brzozowski/
// Antimirov-style derivatives over predicate alphabets (spec §3, §4.2-4.3).
//
// Node construction always goes through a *Builder so that structurally
// equal ASTs share identity (hash consing) — two constructions of the same
// regex yield the same *Re pointer, giving O(1) equality and memoization.
// This mirrors the teacher's Thompson-NFA Builder (nfa/builder.go), which
// interns states the same way; here the arena holds AST nodes instead of
// NFA states, and references point only downward (no parent back-links),
// per REDESIGN FLAGS in spec §9.
package sre

import "github.com/srmx/srm/pred"

// Kind tags the variant a Re node holds.
type Kind uint8

const (
	KindSingleton Kind = iota
	KindEpsilon
	KindEmptySet // the regex ∅ (no node in spec's list is named this, but And/Or
	// normalization and loop degeneration both need a canonical "rejects
	// everything" leaf; without it Concat/Or/And absorption has nowhere to
	// bottom out)
	KindConcat
	KindOr
	KindAnd
	KindLoop
	KindIfThenElse
	KindStartAnchor // \A
	KindEndAnchor   // \z
	KindBolAnchor   // ^
	KindEolAnchor   // $
	KindWatchdog
)

// Unbounded marks a Loop's Hi as unbounded (the {lo,} / * case).
const Unbounded = ^uint32(0)

// Re is an immutable, hash-consed symbolic regex node.
//
// Every field below is computed once at construction time (spec §3:
// "precomputed and immutable once constructed") and never mutated again;
// the zero value is never a valid *Re — nodes are only produced by a
// Builder's Mk* methods.
type Re struct {
	id   uint64 // arena index, doubles as identity for hash consing
	kind Kind

	pred Pred_ // KindSingleton payload

	children []*Re // Concat: [left, right]; IfThenElse: [cond, then, else]
	set      []*Re // Or / And operands, canonical order

	loopBody *Re
	loopLo   uint32
	loopHi   uint32
	loopLazy bool

	watchdogLen uint32

	hash            uint64
	isNullable      bool
	containsAnchors bool
	fixedLen        int32 // -1 if variable length
}

// Pred_ avoids importing pred.Pred directly into the exported field name
// collision space while still exposing the real type to callers that need
// singleton inspection.
type Pred_ = pred.Pred

// ID returns the node's hash-cons arena index. Two nodes built from the
// same Builder with the same structure always share the same ID.
func (r *Re) ID() uint64 { return r.id }

// Kind returns the node's tag.
func (r *Re) Kind() Kind { return r.kind }

// IsNullable reports whether r accepts the empty string in its current
// anchor context (computed once at construction, per spec §3).
func (r *Re) IsNullable() bool { return r.isNullable }

// ContainsAnchors reports whether r (or any descendant) mentions an anchor
// node, used by the matcher to decide whether border-derivative stepping is
// needed at all.
func (r *Re) ContainsAnchors() bool { return r.containsAnchors }

// FixedLength returns the exact match length of r if it is statically
// known (every accepted string has the same length), or -1 if variable.
func (r *Re) FixedLength() int32 { return r.fixedLen }

// Pred returns the code-point predicate of a KindSingleton node. Callers
// must check Kind() == KindSingleton first.
func (r *Re) Pred() pred.Pred { return r.pred }

// Children returns Concat's [left, right] or IfThenElse's [cond, then, else].
func (r *Re) Children() []*Re { return r.children }

// Set returns Or/And's canonical operand slice.
func (r *Re) Set() []*Re { return r.set }

// LoopBody, LoopLo, LoopHi, LoopLazy expose a KindLoop node's quantifier.
func (r *Re) LoopBody() *Re    { return r.loopBody }
func (r *Re) LoopLo() uint32   { return r.loopLo }
func (r *Re) LoopHi() uint32   { return r.loopHi }
func (r *Re) LoopLazy() bool   { return r.loopLazy }
func (r *Re) WatchdogLen() uint32 { return r.watchdogLen }

// Hash returns the node's structural hash, usable for intern-table lookups
// and fast inequality checks (equal nodes have equal hash; the converse
// needs the Builder's structural key).
func (r *Re) Hash() uint64 { return r.hash }
