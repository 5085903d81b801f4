package sre

// Reverse builds the regex accepting the reverse of every string r accepts,
// used by the matcher driver's reverse find-start scan (spec §4.6, §9
// "reverse correctness": reversing twice yields an equivalent regex).
//
// Grounded on the teacher's nfa/reverse.go, which performs the same
// structural reversal (concatenation order flipped, alternation/loop shape
// preserved) over a Thompson NFA; here it operates directly on the
// symbolic AST instead of compiled states.
func (b *Builder) Reverse(r *Re) *Re {
	switch r.kind {
	case KindSingleton, KindEpsilon, KindEmptySet, KindWatchdog:
		return r

	case KindStartAnchor:
		return b.MkEndAnchor()
	case KindEndAnchor:
		return b.MkStartAnchor()
	case KindBolAnchor:
		return b.MkEolAnchor()
	case KindEolAnchor:
		return b.MkBolAnchor()

	case KindConcat:
		return b.MkConcat(b.Reverse(r.children[1]), b.Reverse(r.children[0]))

	case KindOr:
		rs := make([]*Re, len(r.set))
		for i, e := range r.set {
			rs[i] = b.Reverse(e)
		}
		return b.MkOr(rs)

	case KindAnd:
		rs := make([]*Re, len(r.set))
		for i, e := range r.set {
			rs[i] = b.Reverse(e)
		}
		return b.MkAnd(rs)

	case KindLoop:
		return b.MkLoop(b.Reverse(r.loopBody), r.loopLo, r.loopHi, r.loopLazy)

	case KindIfThenElse:
		return b.MkIfThenElse(b.Reverse(r.children[0]), b.Reverse(r.children[1]), b.Reverse(r.children[2]))

	default:
		return r
	}
}
