package sre

import (
	"fmt"
	"sort"
	"strings"

	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/pred"
)

// Builder is the structural-sharing factory for Re nodes (spec C3).
//
// All construction goes through a Builder so that structurally equal ASTs
// share identity: the intern table is keyed by (kind, children-ids,
// payload), mirroring the teacher's NFA Builder's state interning
// (nfa/builder.go) lifted to the AST level. A Builder has no cycles and no
// upward references — children are stored by value (pointer into the
// Builder's own arena), never a parent back-link, per the "cyclic
// references" redesign note in spec §9.
type Builder struct {
	arena  []*Re
	intern map[string]*Re

	// predefined singletons, created once per builder
	epsilon  *Re
	emptySet *Re
	dotStar  *Re
}

// NewBuilder creates an empty Builder with its two structural leaves
// (epsilon, emptySet) pre-interned.
func NewBuilder() *Builder {
	b := &Builder{intern: make(map[string]*Re)}
	b.epsilon = b.leaf(KindEpsilon)
	b.emptySet = b.leaf(KindEmptySet)
	b.dotStar = b.MkLoop(b.MkSingleton(pred.Any()), 0, Unbounded, false)
	return b
}

func (b *Builder) leaf(kind Kind) *Re {
	key := fmt.Sprintf("leaf:%d", kind)
	if r, ok := b.intern[key]; ok {
		return r
	}
	r := &Re{id: uint64(len(b.arena)), kind: kind}
	switch kind {
	case KindEpsilon:
		r.isNullable = true
		r.fixedLen = 0
	case KindEmptySet:
		r.fixedLen = -1
	}
	r.hash = hashString(key)
	b.arena = append(b.arena, r)
	b.intern[key] = r
	return r
}

// Epsilon returns the shared ε node.
func (b *Builder) Epsilon() *Re { return b.epsilon }

// EmptySet returns the shared ∅ node.
func (b *Builder) EmptySet() *Re { return b.emptySet }

// DotStar returns the shared `.*` node (Loop{Singleton(⊤), 0, ∞}), used by
// Or/And absorption (spec §4.2 rule 3).
func (b *Builder) DotStar() *Re { return b.dotStar }

func (b *Builder) internNode(key string, build func(id uint64) *Re) *Re {
	if r, ok := b.intern[key]; ok {
		return r
	}
	r := build(uint64(len(b.arena)))
	r.hash = hashString(key)
	b.arena = append(b.arena, r)
	b.intern[key] = r
	return r
}

// MkSingleton builds Singleton(p): any one character satisfying p.
func (b *Builder) MkSingleton(p pred.Pred) *Re {
	key := "S:" + pred.Serialize(p)
	return b.internNode(key, func(id uint64) *Re {
		return &Re{id: id, kind: KindSingleton, pred: p, fixedLen: 1}
	})
}

// MkWatchdog builds a zero-width Watchdog(len) marker, inserted by the
// builder's caller at deterministic commit points (spec §4.3).
func (b *Builder) MkWatchdog(length uint32) *Re {
	key := fmt.Sprintf("W:%d", length)
	return b.internNode(key, func(id uint64) *Re {
		return &Re{id: id, kind: KindWatchdog, watchdogLen: length, isNullable: true, fixedLen: 0}
	})
}

func (b *Builder) mkAnchor(kind Kind, tag string) *Re {
	return b.internNode(tag, func(id uint64) *Re {
		return &Re{id: id, kind: kind, isNullable: true, containsAnchors: true, fixedLen: 0}
	})
}

func (b *Builder) MkStartAnchor() *Re { return b.mkAnchor(KindStartAnchor, "A") }
func (b *Builder) MkEndAnchor() *Re   { return b.mkAnchor(KindEndAnchor, "z") }
func (b *Builder) MkBolAnchor() *Re   { return b.mkAnchor(KindBolAnchor, "^") }
func (b *Builder) MkEolAnchor() *Re   { return b.mkAnchor(KindEolAnchor, "$") }

// MkConcat builds Concat(l, r) applying spec §4.2 rules 1-2: ε/∅ identities
// and right-leaning re-threading (the left child of a Concat is never
// itself a Concat).
func (b *Builder) MkConcat(l, r *Re) *Re {
	if l.kind == KindEmptySet || r.kind == KindEmptySet {
		return b.emptySet
	}
	if l.kind == KindEpsilon {
		return r
	}
	if r.kind == KindEpsilon {
		return l
	}
	if l.kind == KindConcat {
		// Re-thread: Concat(Concat(a,b), r) -> Concat(a, Concat(b,r))
		return b.MkConcat(l.children[0], b.MkConcat(l.children[1], r))
	}
	key := fmt.Sprintf("C:%d,%d", l.id, r.id)
	return b.internNode(key, func(id uint64) *Re {
		n := &Re{id: id, kind: KindConcat, children: []*Re{l, r}}
		n.isNullable = l.isNullable && r.isNullable
		n.containsAnchors = l.containsAnchors || r.containsAnchors
		n.fixedLen = sumFixed(l.fixedLen, r.fixedLen)
		return n
	})
}

func sumFixed(a, b int32) int32 {
	if a < 0 || b < 0 {
		return -1
	}
	return a + b
}

// foldKey identifies a (body,tail) pair for the Or-normalization fold map
// of spec §4.2 rule 4: entries of form Loop(body,0,k) or
// Concat(Loop(body,0,k), tail) fold into one entry keyed by (body,tail).
type foldKey struct{ bodyID, tailID uint64 }

// MkOr builds Or(elements): a commutative, idempotent set of alternatives,
// normalized per spec §4.2 rule 3 (absorb ∅, .* absorbs the whole set,
// singleton collapse) and rule 4 (fold bounded zero-loop entries sharing a
// (body,tail) shape into one loop carrying the max bound — purely for
// canonical-form compactness; semantics are unchanged from the explicit
// union, per spec's "strictly for canonicalization" note).
func (b *Builder) MkOr(elements []*Re) *Re {
	flat := make(map[uint64]*Re)
	var order []uint64
	var addFlat func(r *Re)
	addFlat = func(r *Re) {
		if r.kind == KindEmptySet {
			return
		}
		if r.kind == KindOr {
			for _, e := range r.set {
				addFlat(e)
			}
			return
		}
		if _, seen := flat[r.id]; !seen {
			flat[r.id] = r
			order = append(order, r.id)
		}
	}
	for _, e := range elements {
		if e.id == b.dotStar.id {
			return b.dotStar
		}
		addFlat(e)
	}

	folds := make(map[foldKey]*foldEntry)
	var plain []*Re
	for _, id := range order {
		e := flat[id]
		if body, tail, k, ok := asBoundedZeroLoop(e); ok {
			if tail == nil {
				tail = b.epsilon
			}
			fk := foldKey{body.id, tail.id}
			if cur, exists := folds[fk]; exists {
				if k > cur.maxK {
					cur.maxK = k
				}
			} else {
				folds[fk] = &foldEntry{body: body, tail: tail, maxK: k}
			}
			continue
		}
		plain = append(plain, e)
	}

	var final []*Re
	final = append(final, plain...)
	for _, fe := range folds {
		loop := b.MkLoop(fe.body, 0, fe.maxK, false)
		final = append(final, b.MkConcat(loop, fe.tail))
	}

	if len(final) == 0 {
		return b.emptySet
	}
	dedup := make(map[uint64]*Re, len(final))
	for _, e := range final {
		dedup[e.id] = e
	}
	final = final[:0]
	for _, e := range dedup {
		final = append(final, e)
	}
	sort.Slice(final, func(i, j int) bool { return final[i].id < final[j].id })
	if len(final) == 1 {
		return final[0]
	}

	key := setKey("D", final)
	return b.internNode(key, func(id uint64) *Re {
		n := &Re{id: id, kind: KindOr, set: final}
		n.isNullable = false
		n.fixedLen = final[0].fixedLen
		for _, e := range final {
			n.isNullable = n.isNullable || e.isNullable
			n.containsAnchors = n.containsAnchors || e.containsAnchors
			if e.fixedLen != n.fixedLen {
				n.fixedLen = -1
			}
		}
		return n
	})
}

type foldEntry struct {
	body, tail *Re
	maxK       uint32
}

// asBoundedZeroLoop recognizes Loop(body,0,k,eager) and
// Concat(Loop(body,0,k,eager), tail) shapes for the Or fold map.
func asBoundedZeroLoop(r *Re) (body, tail *Re, k uint32, ok bool) {
	if r.kind == KindLoop && r.loopLo == 0 && r.loopHi != Unbounded && !r.loopLazy {
		return r.loopBody, nil, r.loopHi, true
	}
	if r.kind == KindConcat {
		l := r.children[0]
		if l.kind == KindLoop && l.loopLo == 0 && l.loopHi != Unbounded && !l.loopLazy {
			return l.loopBody, r.children[1], l.loopHi, true
		}
	}
	return nil, nil, 0, false
}

// MkAnd builds And(elements): intersection, from if-then-else lowering,
// normalized per spec §4.2 rule 3 (∅ absorbs the whole set, .* is the
// identity and is dropped, singleton collapse).
func (b *Builder) MkAnd(elements []*Re) *Re {
	flat := make(map[uint64]*Re)
	var order []uint64
	var addFlat func(r *Re)
	addFlat = func(r *Re) {
		if r.id == b.dotStar.id {
			return
		}
		if r.kind == KindAnd {
			for _, e := range r.set {
				addFlat(e)
			}
			return
		}
		if _, seen := flat[r.id]; !seen {
			flat[r.id] = r
			order = append(order, r.id)
		}
	}
	for _, e := range elements {
		if e.kind == KindEmptySet {
			return b.emptySet
		}
		addFlat(e)
	}
	if len(order) == 0 {
		return b.dotStar
	}
	final := make([]*Re, len(order))
	for i, id := range order {
		final[i] = flat[id]
	}
	sort.Slice(final, func(i, j int) bool { return final[i].id < final[j].id })
	if len(final) == 1 {
		return final[0]
	}

	key := setKey("C!", final)
	return b.internNode(key, func(id uint64) *Re {
		n := &Re{id: id, kind: KindAnd, set: final}
		n.isNullable = true
		n.fixedLen = final[0].fixedLen
		for _, e := range final {
			n.isNullable = n.isNullable && e.isNullable
			n.containsAnchors = n.containsAnchors || e.containsAnchors
			if e.fixedLen != n.fixedLen {
				n.fixedLen = -1
			}
		}
		return n
	})
}

func setKey(tag string, elems []*Re) string {
	var sb strings.Builder
	sb.WriteString(tag)
	for _, e := range elems {
		fmt.Fprintf(&sb, ":%d", e.id)
	}
	return sb.String()
}

// MkLoop builds Loop{body, lo, hi, lazy}, applying spec §4.2 rule 5
// (MkLoop(b,0,0,_)=ε; MkLoop(b,1,1,_)=b) and rule 3 (`(.*)*`, an
// unbounded zero-minimum loop of `.*` itself, collapses back to `.*`;
// other bounds around `.*` are kept as written).
func (b *Builder) MkLoop(body *Re, lo, hi uint32, lazy bool) *Re {
	if hi != Unbounded && lo > hi {
		panic(errs.New(errs.InvalidRegex, fmt.Sprintf("loop lower bound %d exceeds upper bound %d", lo, hi)))
	}
	if lo == 0 && hi == 0 {
		return b.epsilon
	}
	if lo == 1 && hi == 1 {
		return body
	}
	if body.kind == KindEmptySet {
		if lo == 0 {
			return b.epsilon
		}
		return b.emptySet
	}
	if b.dotStar != nil && body.id == b.dotStar.id && lo == 0 && hi == Unbounded {
		return b.dotStar
	}
	key := fmt.Sprintf("L:%d,%d,%d,%v", body.id, lo, hi, lazy)
	return b.internNode(key, func(id uint64) *Re {
		n := &Re{id: id, kind: KindLoop, loopBody: body, loopLo: lo, loopHi: hi, loopLazy: lazy}
		n.isNullable = lo == 0 || body.isNullable
		n.containsAnchors = body.containsAnchors
		if lo == hi && body.fixedLen >= 0 {
			n.fixedLen = int32(lo) * body.fixedLen
		} else {
			n.fixedLen = -1
		}
		return n
	})
}

// MkIfThenElse builds IfThenElse{cond,then,else}, applying spec §4.2 rule 6
// (an else-branch of ∅ lowers to And(cond, then)).
func (b *Builder) MkIfThenElse(cond, then, els *Re) *Re {
	if els.kind == KindEmptySet {
		return b.MkAnd([]*Re{cond, then})
	}
	key := fmt.Sprintf("I:%d,%d,%d", cond.id, then.id, els.id)
	return b.internNode(key, func(id uint64) *Re {
		n := &Re{id: id, kind: KindIfThenElse, children: []*Re{cond, then, els}}
		if cond.isNullable {
			n.isNullable = then.isNullable
		} else {
			n.isNullable = els.isNullable
		}
		n.containsAnchors = cond.containsAnchors || then.containsAnchors || els.containsAnchors
		if then.fixedLen == els.fixedLen {
			n.fixedLen = then.fixedLen
		} else {
			n.fixedLen = -1
		}
		return n
	})
}

// hashString is a small FNV-1a hash, used only to populate Re.Hash() for
// callers that want a fast pre-check before falling back to id equality;
// the intern table itself keys on the exact structural string, not this
// hash, so collisions here cannot corrupt hash consing.
func hashString(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
