// Package srm provides a symbolic regular expression engine: patterns
// compile into a hash-consed predicate-labeled AST (package sre) and run
// against input through three lazily-constructed DFAs (package match),
// rather than backtracking or enumerating a byte-indexed NFA.
//
// Grounded on the teacher's root regex.go: Regex wraps a compiled engine
// and exposes a stdlib-regexp-flavored surface (Compile/MustCompile/
// Find.../Match...); here the wrapped engine is a match.Matcher driving
// Builder-normalized sre.Re trees instead of meta.Engine's NFA/DFA/prefilter
// strategy picker, and capture-group methods are dropped since submatch
// extraction is out of scope (see synparse's OpCapture handling).
package srm

import (
	"iter"

	"github.com/srmx/srm/dfa"
	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/match"
	"github.com/srmx/srm/serial"
	"github.com/srmx/srm/sre"
	"github.com/srmx/srm/synparse"
)

// Re-exported error taxonomy (spec §7), so callers never need to import
// errs directly just to classify a failure.
type (
	// ErrorKind classifies a failure the engine reports.
	ErrorKind = errs.Kind
)

const (
	InvalidRegex       = errs.InvalidRegex
	UnsupportedFeature = errs.UnsupportedFeature
	InvalidFormat      = errs.InvalidFormat
	MatchAborted       = errs.MatchAborted
	Internal           = errs.Internal
)

// Options controls pattern compilation and matching behavior.
type Options struct {
	// IgnoreCase folds ASCII and simple-fold Unicode case during matching,
	// equivalent to prefixing the pattern with (?i).
	IgnoreCase bool

	// Multiline makes ^ and $ match at line boundaries in addition to the
	// start/end of the whole input, equivalent to prefixing with (?m).
	Multiline bool

	// Singleline makes . match \n as well, equivalent to prefixing with
	// (?s).
	Singleline bool

	// DisablePrefilter turns off the literal/Aho-Corasick presence gate
	// (match.literalGate) that Find otherwise uses to skip the derivative
	// walk on haystacks that plainly can't contain the pattern.
	DisablePrefilter bool

	// StateCacheLimit bounds the number of (state, minterm) transition
	// entries each DFA retains before evicting the least-recently-added
	// ones; see dfa.Config.MaxTransitions. Zero means unbounded.
	StateCacheLimit uint32

	// StepBudget caps character-steps per Find call; see
	// match.Config.StepBudget. Zero means unbounded.
	StepBudget uint64
}

// DefaultOptions returns the engine's default compilation/matching
// configuration.
func DefaultOptions() Options {
	return Options{
		StateCacheLimit: dfa.DefaultConfig().MaxTransitions,
	}
}

func (o Options) toMatchConfig() match.Config {
	cfg := match.DefaultConfig()
	cfg.DFA = cfg.DFA.WithMaxTransitions(o.StateCacheLimit)
	cfg.StepBudget = o.StepBudget
	cfg.DisablePrefilter = o.DisablePrefilter
	return cfg
}

func (o Options) flagPrefix() string {
	prefix := ""
	if o.IgnoreCase {
		prefix += "i"
	}
	if o.Multiline {
		prefix += "m"
	}
	if o.Singleline {
		prefix += "s"
	}
	if prefix == "" {
		return ""
	}
	return "(?" + prefix + ")"
}

// Regex is a compiled pattern. It is not safe for concurrent use by
// multiple goroutines: every search lazily adds DFA states, transitions
// and Builder nodes, and none of these writes is synchronized.
type Regex struct {
	builder *sre.Builder
	pattern *sre.Re
	matcher *match.Matcher
	source  string
	opts    Options
}

// Compile parses pattern with default options and builds a Regex.
func Compile(pattern string) (*Regex, error) {
	return CompileOptions(pattern, DefaultOptions())
}

// CompileOptions parses pattern under the given options and builds a Regex.
func CompileOptions(pattern string, opts Options) (*Regex, error) {
	b := sre.NewBuilder()
	re, err := synparse.Parse(b, opts.flagPrefix()+pattern)
	if err != nil {
		return nil, err
	}
	return fromAST(b, re, pattern, opts)
}

// CompileAST builds a Regex directly from an already-normalized symbolic
// regex tree, bypassing the syntax parser entirely (spec §6: "the regex
// source syntax parser... is accepted as an equivalent AST input").
func CompileAST(builder *sre.Builder, pattern *sre.Re) (*Regex, error) {
	return fromAST(builder, pattern, "", DefaultOptions())
}

func fromAST(b *sre.Builder, re *sre.Re, source string, opts Options) (*Regex, error) {
	m := match.New(b, re, opts.toMatchConfig())
	return &Regex{builder: b, pattern: re, matcher: m, source: source, opts: opts}, nil
}

// MustCompile is like Compile but panics if pattern fails to parse.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("srm: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern text, or the empty string for a Regex
// built with CompileAST.
func (r *Regex) String() string { return r.source }

// Options returns the configuration this Regex was compiled with.
func (r *Regex) Options() Options { return r.opts }

// Serialize renders the compiled AST to the textual form in package serial,
// for caching a compiled pattern without re-running the syntax parser.
func (r *Regex) Serialize() string { return serial.Serialize(r.pattern) }

// DeserializeWith rebuilds a Regex from a string produced by Serialize,
// hash-consing the result into builder.
func DeserializeWith(builder *sre.Builder, s string, opts Options) (*Regex, error) {
	re, err := serial.Deserialize(builder, s)
	if err != nil {
		return nil, err
	}
	return fromAST(builder, re, "", opts)
}

// Match reports whether s contains any match of the pattern.
func (r *Regex) Match(s string) bool {
	ok, _ := r.MatchErr(s)
	return ok
}

// MatchErr is Match but surfaces a step-budget abort instead of treating it
// as no-match.
func (r *Regex) MatchErr(s string) (bool, error) {
	_, ok, err := r.matcher.Find(s, 0)
	return ok, err
}

// Find returns the leftmost match in s as a byte-offset pair, or nil if
// there is no match.
func (r *Regex) Find(s string) []int {
	idx, err := r.FindErr(s)
	if err != nil {
		return nil
	}
	return idx
}

// FindErr is Find but returns the step-budget error rather than swallowing
// it as no-match.
func (r *Regex) FindErr(s string) ([]int, error) {
	span, ok, err := r.matcher.Find(s, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []int{span.Start, span.End}, nil
}

// FindString returns the leftmost matching substring of s, or "" if there
// is no match. Since an empty match is indistinguishable from no match,
// callers needing that distinction should use Find.
func (r *Regex) FindString(s string) string {
	loc := r.Find(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindIndex is an alias of Find, named to match stdlib regexp's surface.
func (r *Regex) FindIndex(s string) []int { return r.Find(s) }

// FindAllIndex returns the non-overlapping successive matches of the
// pattern in s. If n >= 0, it returns at most n matches.
func (r *Regex) FindAllIndex(s string, n int) [][]int {
	if n == 0 {
		return nil
	}
	var out [][]int
	pos := 0
	for pos <= len(s) {
		span, ok, err := r.matcher.Find(s, pos)
		if err != nil || !ok {
			break
		}
		out = append(out, []int{span.Start, span.End})
		if n > 0 && len(out) >= n {
			break
		}
		if span.End > pos {
			pos = span.End
		} else {
			pos++
		}
	}
	return out
}

// FindAll returns the substrings of the non-overlapping successive matches
// of the pattern in s. If n >= 0, it returns at most n matches.
func (r *Regex) FindAll(s string, n int) []string {
	locs := r.FindAllIndex(s, n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = s[loc[0]:loc[1]]
	}
	return out
}

// FindAllString is an alias of FindAll, named to match stdlib regexp's
// surface.
func (r *Regex) FindAllString(s string, n int) []string { return r.FindAll(s, n) }

// Matches returns an iterator (Go 1.23+ range-over-func) over the
// non-overlapping successive matches of the pattern in s, stopping early if
// the consumer's loop body returns false. A step-budget abort or any other
// error simply ends iteration; use FindAllIndex if the error itself
// matters.
func (r *Regex) Matches(s string) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		pos := 0
		for pos <= len(s) {
			span, ok, err := r.matcher.Find(s, pos)
			if err != nil || !ok {
				return
			}
			if !yield([]int{span.Start, span.End}) {
				return
			}
			if span.End > pos {
				pos = span.End
			} else {
				pos++
			}
		}
	}
}
