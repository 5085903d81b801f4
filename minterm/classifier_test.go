package minterm

import (
	"testing"

	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

func TestMintermsPartitionAlphabet(t *testing.T) {
	b := sre.NewBuilder()
	re := b.MkOr([]*sre.Re{
		b.MkSingleton(pred.MkRange('a', 'm', false)),
		b.MkSingleton(pred.MkRange('g', 'z', false)),
	})
	c := Classify(re)

	// Disjointness: every pair of distinct minterms must intersect in
	// nothing (spec invariant 5).
	all := c.All()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].And(all[j]).IsSatisfiable() {
				t.Fatalf("minterms %d and %d overlap", i, j)
			}
		}
	}

	// Union covers the full alphabet: every code point maps to some minterm
	// whose predicate actually contains it.
	for _, r := range []rune{0, 'a', 'g', 'm', 'z', 0xFFFF} {
		id := c.IDFor(r)
		if !c.Minterm(id).Contains(r) {
			t.Fatalf("code point %q mapped to a minterm that does not contain it", r)
		}
	}
}

func TestMintermLookupDistinguishesPredicates(t *testing.T) {
	b := sre.NewBuilder()
	re := b.MkConcat(b.MkSingleton(pred.MkRange('0', '9', false)), b.MkSingleton(pred.MkRange('a', 'z', false)))
	c := Classify(re)
	if c.IDFor('5') == c.IDFor('b') {
		t.Fatalf("digits and lowercase letters must land in different minterms")
	}
}
