package sre

import "github.com/srmx/srm/pred"

// Border identifies a zero-width synthetic event the matcher threads
// through anchor-only derivatives (spec §4.3 "Border derivative").
type Border uint8

const (
	BorderStartOfInput Border = iota
	BorderEndOfInput
	BorderStartOfLine
	BorderEndOfLine

	// BorderNone satisfies no anchor; DerivativeBorder(BorderNone, r)
	// resolves every anchor in r to ∅. Used by the matcher when checking
	// finality at a position where neither end-of-input nor end-of-line
	// holds, so any residual \z/$ must vanish rather than pass through.
	BorderNone
)

// Derivative computes d_alpha(r): the regex accepting exactly the suffixes
// w such that some character in alpha followed by w is accepted by r
// (spec §4.3). alpha is always a minterm at run time — a single predicate
// that is either wholly inside or wholly outside any Singleton's predicate,
// which is what lets the Singleton case reduce to a single implication
// test instead of a full intersection.
func (b *Builder) Derivative(alpha pred.Pred, r *Re) *Re {
	switch r.kind {
	case KindSingleton:
		if pred.Implies(alpha, r.pred) {
			return b.epsilon
		}
		return b.emptySet

	case KindEpsilon, KindStartAnchor, KindEndAnchor, KindBolAnchor, KindEolAnchor, KindWatchdog, KindEmptySet:
		return b.emptySet

	case KindOr:
		ds := make([]*Re, len(r.set))
		for i, e := range r.set {
			ds[i] = b.Derivative(alpha, e)
		}
		return b.MkOr(ds)

	case KindAnd:
		ds := make([]*Re, len(r.set))
		for i, e := range r.set {
			ds[i] = b.Derivative(alpha, e)
		}
		return b.MkAnd(ds)

	case KindConcat:
		left, right := r.children[0], r.children[1]
		dLeft := b.MkConcat(b.Derivative(alpha, left), right)
		if left.isNullable {
			return b.MkOr([]*Re{dLeft, b.Derivative(alpha, right)})
		}
		return dLeft

	case KindLoop:
		if r.loopHi == 0 {
			return b.emptySet
		}
		dBody := b.Derivative(alpha, r.loopBody)
		nextLo := uint32(0)
		if r.loopLo > 0 {
			nextLo = r.loopLo - 1
		}
		nextHi := r.loopHi
		if nextHi != Unbounded {
			nextHi--
		}
		return b.MkConcat(dBody, b.MkLoop(r.loopBody, nextLo, nextHi, r.loopLazy))

	case KindIfThenElse:
		cond, then, els := r.children[0], r.children[1], r.children[2]
		return b.MkIfThenElse(b.Derivative(alpha, cond), b.Derivative(alpha, then), b.Derivative(alpha, els))

	default:
		return b.emptySet
	}
}

// satisfiesBorder reports whether anchor kind matches the zero-width event
// beta — the predicate table of spec §4.3's derivative_border operator.
func satisfiesBorder(kind Kind, beta Border) bool {
	switch kind {
	case KindStartAnchor:
		return beta == BorderStartOfInput
	case KindEndAnchor:
		return beta == BorderEndOfInput
	case KindBolAnchor:
		return beta == BorderStartOfInput || beta == BorderStartOfLine
	case KindEolAnchor:
		return beta == BorderEndOfInput || beta == BorderEndOfLine
	default:
		return false
	}
}

// DerivativeBorder computes derivative_border(beta, r): rewrites the anchor
// whose condition beta satisfies into ε and every other anchor into ∅, then
// renormalizes (spec §4.3). Non-anchor leaves (Singleton, Watchdog) and
// structural nodes pass through unchanged except for their anchor
// descendants, which are resolved the same way, bottom-up.
func (b *Builder) DerivativeBorder(beta Border, r *Re) *Re {
	if !r.containsAnchors {
		return r
	}
	switch r.kind {
	case KindStartAnchor, KindEndAnchor, KindBolAnchor, KindEolAnchor:
		if satisfiesBorder(r.kind, beta) {
			return b.epsilon
		}
		return b.emptySet

	case KindConcat:
		return b.MkConcat(b.DerivativeBorder(beta, r.children[0]), b.DerivativeBorder(beta, r.children[1]))

	case KindOr:
		ds := make([]*Re, len(r.set))
		for i, e := range r.set {
			ds[i] = b.DerivativeBorder(beta, e)
		}
		return b.MkOr(ds)

	case KindAnd:
		ds := make([]*Re, len(r.set))
		for i, e := range r.set {
			ds[i] = b.DerivativeBorder(beta, e)
		}
		return b.MkAnd(ds)

	case KindLoop:
		body := b.DerivativeBorder(beta, r.loopBody)
		return b.MkLoop(body, r.loopLo, r.loopHi, r.loopLazy)

	case KindIfThenElse:
		cond := b.DerivativeBorder(beta, r.children[0])
		then := b.DerivativeBorder(beta, r.children[1])
		els := b.DerivativeBorder(beta, r.children[2])
		return b.MkIfThenElse(cond, then, els)

	default:
		return r
	}
}
