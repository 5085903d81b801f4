package dfa

import (
	"github.com/srmx/srm/minterm"
	"github.com/srmx/srm/sre"
)

// DFA is a lazily-constructed compiled automaton over a fixed root regex
// and minterm classification (spec C6). States are created on demand the
// first time they're reached; transitions are memoized and bounded by
// Config.MaxTransitions.
type DFA struct {
	builder *sre.Builder
	classes *minterm.Classes
	cfg     Config

	byRe  map[uint64]*State // hash-cons Re id -> State (states are never evicted)
	byID  map[StateID]*State
	lru   *transitionLRU
	nextID StateID

	root *State
}

// New builds a DFA wrapper around root, lazily populated as the matcher
// drives it. root is the fully built, hash-consed Re for the pattern;
// border resolution at the start of a search is left to the caller, which
// applies StepBorder to Root().
func New(b *sre.Builder, classes *minterm.Classes, root *sre.Re, cfg Config) *DFA {
	d := &DFA{
		builder: b,
		classes: classes,
		cfg:     cfg,
		byRe:    make(map[uint64]*State),
		byID:    make(map[StateID]*State),
	}
	d.root = d.intern(root)
	d.lru = newTransitionLRU(cfg.MaxTransitions, d.root.id)
	return d
}

func (d *DFA) intern(re *sre.Re) *State {
	if s, ok := d.byRe[re.ID()]; ok {
		return s
	}
	s := newState(d.nextID, re, d.classes.Len(), d.classes)
	d.byRe[re.ID()] = s
	d.byID[s.id] = s
	d.nextID++
	return s
}

// Root returns the DFA's start state.
func (d *DFA) Root() *State { return d.root }

// Step computes (and caches) the transition from s on minterm id, per the
// core derivative-based determinization rule: the next state's regex is
// Derivative(minterm-predicate, s.Re()).
func (d *DFA) Step(s *State, id minterm.ID) *State {
	idx := uint16(id)
	if s.populated[idx] {
		return d.byID[s.delta[idx]]
	}
	alpha := d.classes.Minterm(id)
	nextRe := d.builder.Derivative(alpha, s.re)
	next := d.intern(nextRe)
	s.delta[idx] = next.id
	s.populated[idx] = true
	d.lru.touch(s.id, idx, d.byID)
	return next
}

// StepBorder computes (and caches, as an ordinary state — border steps are
// zero-width but still produce a distinct hash-consed Re when anchors are
// present) the state reached by applying a border derivative to s without
// consuming a character. Used when the driver crosses a '\n' or starts a
// new search at the beginning of input (spec §4.6 "Anchors are threaded
// through ... inserts a StartOfLine/EndOfLine border derivative step").
func (d *DFA) StepBorder(s *State, beta sre.Border) *State {
	if !s.re.ContainsAnchors() {
		return s
	}
	return d.intern(d.builder.DerivativeBorder(beta, s.re))
}

// NumStates returns how many distinct states have been interned so far.
func (d *DFA) NumStates() int { return len(d.byRe) }
