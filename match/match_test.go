package match

import (
	"errors"
	"testing"

	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

func literal(b *sre.Builder, s string, ignoreCase bool) *sre.Re {
	cur := b.Epsilon()
	for _, c := range s {
		cur = b.MkConcat(cur, b.MkSingleton(pred.MkChar(c, ignoreCase)))
	}
	return cur
}

func TestFindLocatesLiteralSubstring(t *testing.T) {
	b := sre.NewBuilder()
	re := literal(b, "abc", true)
	m := New(b, re, DefaultConfig())

	span, ok, err := m.Find("xbxabcabxxxxaBCabcxx", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if span != (Span{Start: 3, End: 6}) {
		t.Fatalf("got %+v, want {3 6}", span)
	}
}

func TestFindAllOccurrences(t *testing.T) {
	b := sre.NewBuilder()
	re := literal(b, "abc", true)
	m := New(b, re, DefaultConfig())

	s := "xbxabcabxxxxaBCabcxx"
	var got []Span
	pos := 0
	for pos <= len(s) {
		span, ok, err := m.Find(s, pos)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		got = append(got, span)
		if span.End == span.Start {
			pos = span.End + 1
		} else {
			pos = span.End
		}
	}
	want := []Span{{3, 6}, {12, 15}, {15, 18}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFindNoMatch(t *testing.T) {
	b := sre.NewBuilder()
	re := literal(b, "zzz", false)
	m := New(b, re, DefaultConfig())

	_, ok, err := m.Find("hello world", 0)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no match")
	}
}

func TestFindRespectsStartAnchor(t *testing.T) {
	b := sre.NewBuilder()
	re := b.MkConcat(b.MkStartAnchor(), literal(b, "abc", false))
	m := New(b, re, DefaultConfig())

	if _, ok, _ := m.Find("xabc", 0); ok {
		t.Fatal("expected \\A to reject a match not at position 0")
	}
	span, ok, err := m.Find("abcxyz", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || span != (Span{0, 3}) {
		t.Fatalf("got span=%+v ok=%v, want {0 3} true", span, ok)
	}
}

func TestFindRespectsMultilineBol(t *testing.T) {
	b := sre.NewBuilder()
	re := b.MkConcat(b.MkBolAnchor(), literal(b, "go", false))
	m := New(b, re, DefaultConfig())

	span, ok, err := m.Find("no\ngo\n", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || span != (Span{3, 5}) {
		t.Fatalf("got span=%+v ok=%v, want {3 5} true", span, ok)
	}
}

func TestFindAlternation(t *testing.T) {
	b := sre.NewBuilder()
	plus := func(body *sre.Re) *sre.Re { return b.MkLoop(body, 1, sre.Unbounded, false) }
	bcd := literal(b, "bcd", false)
	cc := plus(literal(b, "cc", false))
	ePlus := plus(b.MkSingleton(pred.MkChar('e', false)))
	re := b.MkOr([]*sre.Re{bcd, cc, ePlus})
	m := New(b, re, DefaultConfig())

	span, ok, err := m.Find("xxcccce", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	// (cc)+ is nullable after every pair of c's it consumes ("cc", then
	// "cccc"), so the greedy match must extend through all four c's, not
	// stop at the first nullable position.
	if span != (Span{Start: 2, End: 6}) {
		t.Fatalf("got %+v, want {2 6}", span)
	}
}

func TestFindAbortsOnStepBudget(t *testing.T) {
	b := sre.NewBuilder()
	re := literal(b, "needle", false)
	cfg := DefaultConfig()
	cfg.StepBudget = 2
	m := New(b, re, cfg)

	_, _, err := m.Find("a long haystack with no match in it at all", 0)
	if err == nil {
		t.Fatal("expected a step-budget error")
	}
	if !errors.Is(err, errs.New(errs.MatchAborted, "")) {
		t.Fatalf("got %v, want MatchAborted", err)
	}
}
