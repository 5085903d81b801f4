// Package minterm implements the minterm classifier (spec C5): given the
// finite set of predicates mentioned in a compiled regex, it produces an
// ordered list of disjoint minterms and a character-to-minterm-id lookup,
// so every subsequent derivative is taken with respect to minterms rather
// than arbitrary predicates (spec §4.4).
//
// The lookup is a dense BMP array, the same shape as the teacher's
// nfa.ByteClasses (a [256]byte table mapping byte -> equivalence class)
// widened from 256 bytes to the 65536 BMP code units this engine covers.
package minterm

import (
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

// ID identifies a minterm (an atom of the Boolean algebra generated by the
// regex's predicates).
type ID uint16

// Classes holds the classified minterms and the dense code-point lookup.
type Classes struct {
	minterms []pred.Pred
	lookup   [pred.MaxCodePoint + 1]ID
}

// Classify collects the predicates mentioned in root, generates the
// minterm partition (pred.GenerateMinterms), and builds the dense
// code-point -> minterm-id lookup table (spec §4.4, §4.5).
func Classify(root *sre.Re) *Classes {
	preds := sre.CollectPredicates(root)
	minterms := pred.GenerateMinterms(preds)
	if len(minterms) == 0 {
		minterms = []pred.Pred{pred.Any()}
	}
	c := &Classes{minterms: minterms}
	for id, m := range minterms {
		for _, r := range m.Ranges() {
			for cp := r.Lo; cp <= r.Hi; cp++ {
				c.lookup[cp] = ID(id)
				if cp == pred.MaxCodePoint {
					break
				}
			}
		}
	}
	return c
}

// Len returns the number of minterms.
func (c *Classes) Len() int { return len(c.minterms) }

// Minterm returns the predicate for minterm id.
func (c *Classes) Minterm(id ID) pred.Pred { return c.minterms[id] }

// IDFor returns the minterm id containing code point c. Every BMP code
// point belongs to exactly one minterm (spec invariant "minterm
// partition"), so this is always defined.
func (c *Classes) IDFor(r rune) ID {
	if r < 0 || r > pred.MaxCodePoint {
		return c.lookup[pred.MaxCodePoint]
	}
	return c.lookup[r]
}

// All returns the ordered minterm slice. Callers must not mutate it.
func (c *Classes) All() []pred.Pred { return c.minterms }
