package dfa

import (
	"testing"

	"github.com/srmx/srm/minterm"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

func buildLiteral(b *sre.Builder, s string) *sre.Re {
	cur := b.Epsilon()
	for _, c := range s {
		cur = b.MkConcat(cur, b.MkSingleton(pred.MkChar(c, false)))
	}
	return cur
}

func runMatch(d *DFA, b *sre.Builder, classes *minterm.Classes, s string) bool {
	cur := d.Root()
	for _, c := range s {
		id := classes.IDFor(c)
		cur = d.Step(cur, id)
		if cur.IsDead() {
			return false
		}
	}
	return cur.IsFinal(b, true, true)
}

func TestDFAAcceptsLiteral(t *testing.T) {
	b := sre.NewBuilder()
	re := buildLiteral(b, "abc")
	classes := minterm.Classify(re)
	d := New(b, classes, re, DefaultConfig())

	if !runMatch(d, b, classes, "abc") {
		t.Fatal("expected abc to match")
	}
	if runMatch(d, b, classes, "abd") {
		t.Fatal("expected abd to reject")
	}
}

func TestDFADeadState(t *testing.T) {
	b := sre.NewBuilder()
	re := buildLiteral(b, "ab")
	classes := minterm.Classify(re)
	d := New(b, classes, re, DefaultConfig())

	cur := d.Root()
	cur = d.Step(cur, classes.IDFor('x'))
	if !cur.IsDead() {
		t.Fatal("expected dead state after a mismatching character")
	}
}

func TestDFACachesTransitions(t *testing.T) {
	b := sre.NewBuilder()
	re := buildLiteral(b, "ab")
	classes := minterm.Classify(re)
	d := New(b, classes, re, DefaultConfig())

	s1 := d.Step(d.Root(), classes.IDFor('a'))
	s2 := d.Step(d.Root(), classes.IDFor('a'))
	if s1 != s2 {
		t.Fatal("expected cached transition to return the same state pointer")
	}
}

func TestTransitionEvictionNeverTouchesRoot(t *testing.T) {
	b := sre.NewBuilder()
	re := b.MkLoop(b.MkSingleton(pred.Any()), 0, sre.Unbounded, false)
	classes := minterm.Classify(re)
	d := New(b, classes, re, Config{MaxTransitions: 1})

	root := d.Root()
	d.Step(root, classes.IDFor('a'))
	d.Step(root, classes.IDFor('b'))
	// With a cap of 1, the second Step call should have evicted some
	// non-root entry if one existed, but since both calls above touch the
	// ROOT state's own transitions, those must never be evicted.
	again := d.Step(root, classes.IDFor('a'))
	if again.IsDead() {
		t.Fatal("root transitions must survive eviction")
	}
}
