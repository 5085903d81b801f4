// Package dfa implements the lazily-constructed compiled DFA (spec C6): a
// (state, minterm-id) -> next-state transition table built on demand and
// interned with a bounded transition cache, grounded on the teacher's
// dfa/lazy package (Config/Cache/State shape), adapted from byte-indexed
// NFA-state-set determinization to minterm-indexed symbolic-derivative
// determinization.
package dfa

import "github.com/srmx/srm/errs"

// Config controls the DFA's transition cache.
type Config struct {
	// MaxTransitions bounds how many (state, minterm) transition entries
	// the cache retains before evicting the least-recently-added ones
	// (spec §3 "Lifecycle": "a configurable cap triggers eviction of the
	// least-recently-added compiled transitions but never evicts the root
	// state"). Zero means unbounded.
	MaxTransitions uint32
}

// DefaultConfig mirrors the teacher's dfa/lazy.DefaultConfig() defaults,
// scaled down: this engine's states are symbolic-AST nodes rather than
// NFA-state subsets, so a given state count carries more information and a
// smaller cache suffices for the same memory budget.
func DefaultConfig() Config {
	return Config{MaxTransitions: 100_000}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	// Every value of MaxTransitions (including 0, meaning unbounded) is
	// valid; Validate exists for symmetry with the other Config types and
	// as a forward-compatible hook for future fields.
	_ = c
	return nil
}

// WithMaxTransitions returns a copy of c with MaxTransitions set.
func (c Config) WithMaxTransitions(n uint32) Config {
	c.MaxTransitions = n
	return c
}

// errInternal builds an Internal-kind error for invariant violations.
func errInternal(msg string) error { return errs.New(errs.Internal, msg) }
