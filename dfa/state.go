package dfa

import (
	"github.com/srmx/srm/minterm"
	"github.com/srmx/srm/sre"
)

// StateID indexes a State within a DFA's state table.
type StateID uint32

// DeadState is the sentinel for "no further transitions can ever lead to a
// match" (spec: "is_dead(q) iff the language under q is empty").
const DeadState StateID = 0xFFFFFFFF

// State is a DFA state: a hash-consed Re (already resolved for whatever
// start-of-input/start-of-line border applied on the way in; border steps
// rewrite the Re itself, so the anchor context is part of the Re identity
// rather than a separate field) plus a lazily populated transition array
// indexed by minterm id.
type State struct {
	id    StateID
	re    *sre.Re
	delta []StateID // len == classes.Len(); a slot is valid only where populated is set
	// populated tracks which delta slots hold an actual transition (as
	// opposed to the zero value, which collides with a valid StateID 0).
	populated []bool
}

// ID returns the state's id within its owning DFA.
func (s *State) ID() StateID { return s.id }

// Re returns the symbolic regex this state represents.
func (s *State) Re() *sre.Re { return s.re }

// IsDead reports whether this state's language is empty: it cannot be
// nullable under any border, and every Singleton predicate reachable from
// it is unsatisfiable ... in practice, checking "r == EmptySet" after
// normalization is exact, since the builder's normalization rules collapse
// any node whose language is empty down to the canonical ∅ leaf.
func (s *State) IsDead() bool { return s.re.Kind() == sre.KindEmptySet }

// IsFinal reports whether this state accepts the empty suffix once the end
// border conditions in endCtx are substituted (spec: "is_final(q,end_ctx)
// iff q.is_nullable after substituting terminal border conditions").
func (s *State) IsFinal(b *sre.Builder, endOfInput, endOfLine bool) bool {
	r := s.re
	if r.ContainsAnchors() {
		if endOfInput {
			r = b.DerivativeBorder(sre.BorderEndOfInput, r)
		} else if endOfLine {
			r = b.DerivativeBorder(sre.BorderEndOfLine, r)
		} else {
			// Neither end condition holds here: any EndAnchor/EolAnchor
			// still present must resolve to ∅, and plain characters (no
			// anchors) keep their own nullability untouched.
			r = b.DerivativeBorder(sre.BorderNone, r)
		}
	}
	return r.IsNullable()
}

func newState(id StateID, re *sre.Re, numMinterms int, classes *minterm.Classes) *State {
	_ = classes
	return &State{
		id:        id,
		re:        re,
		delta:     make([]StateID, numMinterms),
		populated: make([]bool, numMinterms),
	}
}
