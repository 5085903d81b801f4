// Package match implements the matcher driver (spec C7): the find-end,
// reverse find-start, bare-DFA find-max-end search loop that drives a trio
// of lazy DFAs built from a symbolic regex to locate leftmost, greedy
// matches in an input string.
//
// Grounded on the teacher's meta package: meta.Engine plays the same role
// (orchestrating a compiled automaton against a haystack), and the
// find-end-then-reverse-find-start shape mirrors meta's reverse searchers
// (reverse_suffix.go, reverse_anchored.go), adapted here from "pick a
// strategy among many NFA/DFA variants" to "drive the one symbolic DFA
// forward, then its reverse twin backward, then re-extend from the
// resolved start to the greedy end".
package match

import (
	"github.com/srmx/srm/dfa"
	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/minterm"
	"github.com/srmx/srm/sre"
)

// Span is a half-open byte-offset range [Start, End) into the searched
// string.
type Span struct {
	Start int
	End   int
}

// Config bounds the work a Matcher is willing to do per search.
type Config struct {
	DFA dfa.Config

	// StepBudget caps the number of character steps a single Find may take
	// across both the forward and reverse passes before it aborts with
	// errs.MatchAborted. Zero means unbounded.
	//
	// Grounded on the teacher's dfa/lazy cache-clear bookkeeping style: both
	// count a resource consumed per step and act once a configured ceiling
	// is crossed, just bounding wall-clock work here instead of cache slots.
	StepBudget uint64

	// DisablePrefilter skips the literal/Aho-Corasick presence gate that
	// Find otherwise consults before running the derivative walk.
	DisablePrefilter bool
}

// DefaultConfig returns the matcher configuration used when none is given.
func DefaultConfig() Config {
	return Config{DFA: dfa.DefaultConfig(), StepBudget: 0}
}

// Matcher drives a forward DFA (over dotStar-prefixed pattern, to search for
// a match starting anywhere) and a reverse DFA (over the structurally
// reversed pattern, to pin down exactly where a found match starts).
type Matcher struct {
	builder *sre.Builder
	pattern *sre.Re

	forward        *dfa.DFA
	forwardClasses *minterm.Classes

	reverse        *dfa.DFA
	reverseClasses *minterm.Classes

	// bare drives the pattern alone, with no dotStar prefix, from a known
	// match start: unlike forward, it has no "start a fresh attempt here"
	// branch keeping it alive, so it reliably dies once the pattern's own
	// language is exhausted and can report the true greedy match length.
	bare        *dfa.DFA
	bareClasses *minterm.Classes

	cfg     Config
	literal *literalGate

	// commitLen is the match length marked by a Watchdog node when pattern
	// lowers to a deterministic, fixed-length regex (spec §4.3), or -1 if
	// the pattern is variable-length. When set, Find can read the match's
	// start straight off its end instead of running the reverse pass.
	commitLen int32
}

// New builds a Matcher for pattern, a fully normalized Re produced by
// builder (e.g. via synparse).
func New(builder *sre.Builder, pattern *sre.Re, cfg Config) *Matcher {
	// The builder marks the canonical accept point by appending a
	// Watchdog(n) once pattern's length is statically fixed (spec §4.3).
	// Concat(pattern, Watchdog) keeps pattern's own nullability (Watchdog
	// is always nullable and contributes 0 to fixedLen), so this changes
	// nothing about what matches; it only gives the driver something
	// concrete to read the commit length off of.
	committed := pattern
	if fl := pattern.FixedLength(); fl >= 0 {
		committed = builder.MkConcat(pattern, builder.MkWatchdog(uint32(fl)))
	}

	searchRoot := builder.MkConcat(builder.DotStar(), committed)
	fc := minterm.Classify(searchRoot)
	fd := dfa.New(builder, fc, searchRoot, cfg.DFA)

	reversed := builder.Reverse(committed)
	rc := minterm.Classify(reversed)
	rd := dfa.New(builder, rc, reversed, cfg.DFA)

	bc := minterm.Classify(committed)
	bd := dfa.New(builder, bc, committed, cfg.DFA)

	var gate *literalGate
	if !cfg.DisablePrefilter {
		gate = buildLiteralGate(pattern)
	}

	commitLen := int32(-1)
	if n, ok := sre.TrailingWatchdogLength(committed); ok {
		commitLen = int32(n)
	}

	return &Matcher{
		builder:        builder,
		pattern:        pattern,
		forward:        fd,
		forwardClasses: fc,
		reverse:        rd,
		reverseClasses: rc,
		bare:           bd,
		bareClasses:    bc,
		cfg:            cfg,
		literal:        gate,
		commitLen:      commitLen,
	}
}

func abortedErr() error {
	return errs.New(errs.MatchAborted, "match step budget exceeded")
}
