package synparse

import (
	"testing"

	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

// acceptsString drives r's derivative one character at a time with an
// exact single-character predicate; it's not a minterm classification,
// just enough precision to exercise Derivative's Singleton/Implies case
// for these tests.
func acceptsString(b *sre.Builder, r *sre.Re, s string) bool {
	cur := r
	for _, c := range s {
		cur = b.Derivative(pred.MkChar(c, false), cur)
	}
	return cur.IsNullable()
}

func TestParseLiteral(t *testing.T) {
	b := sre.NewBuilder()
	re, err := Parse(b, `abc`)
	if err != nil {
		t.Fatal(err)
	}
	if !acceptsString(b, re, "abc") {
		t.Fatal("expected abc to match")
	}
	if acceptsString(b, re, "abd") {
		t.Fatal("expected abd to reject")
	}
}

func TestParseCharClass(t *testing.T) {
	b := sre.NewBuilder()
	re, err := Parse(b, `[a-c]+`)
	if err != nil {
		t.Fatal(err)
	}
	if !acceptsString(b, re, "abcba") {
		t.Fatal("expected abcba to match")
	}
	if acceptsString(b, re, "abcd") {
		t.Fatal("expected abcd to reject (trailing d out of class)")
	}
}

func TestParseBoundedRepeat(t *testing.T) {
	b := sre.NewBuilder()
	re, err := Parse(b, `a{2,4}`)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"a":     false,
		"aa":    true,
		"aaa":   true,
		"aaaa":  true,
		"aaaaa": false,
	}
	for s, want := range cases {
		if got := acceptsString(b, re, s); got != want {
			t.Errorf("acceptsString(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseAnchors(t *testing.T) {
	b := sre.NewBuilder()
	re, err := Parse(b, `\Aabcd|abc\z|^abc$`)
	if err != nil {
		t.Fatal(err)
	}
	if re.Kind() != sre.KindOr {
		t.Fatalf("expected a top-level Or, got %v", re.Kind())
	}
}

func TestParseRejectsWordBoundary(t *testing.T) {
	b := sre.NewBuilder()
	_, err := Parse(b, `\bfoo\b`)
	if err == nil {
		t.Fatal("expected an error")
	}
	e, ok := err.(*errs.Error)
	if !ok || e.Kind != errs.UnsupportedFeature {
		t.Fatalf("got %v, want UnsupportedFeature", err)
	}
}

func TestParseInvalidSyntax(t *testing.T) {
	b := sre.NewBuilder()
	_, err := Parse(b, `(`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	e, ok := err.(*errs.Error)
	if !ok || e.Kind != errs.InvalidRegex {
		t.Fatalf("got %v, want InvalidRegex", err)
	}
}

func TestParseInvalidRepeatBounds(t *testing.T) {
	b := sre.NewBuilder()
	_, err := Parse(b, `a{5,2}`)
	if err == nil {
		t.Fatal("expected an error for a backwards repeat count")
	}
}
