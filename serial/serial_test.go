package serial

import (
	"strings"
	"testing"

	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

func roundTrip(t *testing.T, r *sre.Re) string {
	t.Helper()
	b2 := sre.NewBuilder()
	s1 := Serialize(r)
	got, err := Deserialize(b2, s1)
	if err != nil {
		t.Fatalf("Deserialize(%q) failed: %v", s1, err)
	}
	s2 := Serialize(got)
	if s1 != s2 {
		t.Fatalf("round trip mismatch:\n first:  %s\n second: %s", s1, s2)
	}
	return s1
}

func TestRoundTripLiteral(t *testing.T) {
	b := sre.NewBuilder()
	r := b.MkConcat(b.MkSingleton(pred.MkChar('a', false)), b.MkSingleton(pred.MkChar('b', false)))
	roundTrip(t, r)
}

func TestRoundTripCharClass(t *testing.T) {
	b := sre.NewBuilder()
	p := pred.MkRange('a', 'c', false).Or(pred.MkRange('0', '9', false))
	r := b.MkLoop(b.MkSingleton(p), 1, sre.Unbounded, false)
	roundTrip(t, r)
}

func TestRoundTripLoopBounds(t *testing.T) {
	b := sre.NewBuilder()
	r := b.MkLoop(b.MkSingleton(pred.MkChar('x', false)), 2, 4, true)
	s := roundTrip(t, r)
	if !strings.Contains(s, "Loop 2 4 true") {
		t.Fatalf("expected serialized loop bounds in %q", s)
	}
}

func TestRoundTripAnchors(t *testing.T) {
	b := sre.NewBuilder()
	r := b.MkConcat(b.MkStartAnchor(), b.MkConcat(b.MkSingleton(pred.MkChar('a', false)), b.MkEndAnchor()))
	roundTrip(t, r)

	r2 := b.MkConcat(b.MkBolAnchor(), b.MkConcat(b.MkSingleton(pred.MkChar('a', false)), b.MkEolAnchor()))
	roundTrip(t, r2)
}

func TestRoundTripOrAnd(t *testing.T) {
	b := sre.NewBuilder()
	or := b.MkOr([]*sre.Re{
		b.MkSingleton(pred.MkChar('a', false)),
		b.MkSingleton(pred.MkChar('b', false)),
		b.MkSingleton(pred.MkChar('c', false)),
	})
	roundTrip(t, or)

	and := b.MkAnd([]*sre.Re{
		b.MkSingleton(pred.MkRange('a', 'z', false)),
		b.MkSingleton(pred.MkRange('a', 'm', false)),
	})
	roundTrip(t, and)
}

func TestRoundTripIfThenElse(t *testing.T) {
	b := sre.NewBuilder()
	r := b.MkIfThenElse(b.MkStartAnchor(), b.MkSingleton(pred.MkChar('a', false)), b.MkSingleton(pred.MkChar('b', false)))
	roundTrip(t, r)
}

func TestRoundTripWatchdog(t *testing.T) {
	b := sre.NewBuilder()
	r := b.MkWatchdog(5)
	roundTrip(t, r)
}

func TestRoundTripEpsilonAndEmptySet(t *testing.T) {
	b := sre.NewBuilder()
	roundTrip(t, b.Epsilon())
	roundTrip(t, b.EmptySet())
}

func TestDeserializeRejectsUnknownVersion(t *testing.T) {
	b := sre.NewBuilder()
	_, err := Deserialize(b, "v2:(Epsilon)")
	if err == nil {
		t.Fatal("expected an error for an unrecognized version tag")
	}
	e, ok := err.(*errs.Error)
	if !ok || e.Kind != errs.InvalidFormat {
		t.Fatalf("got %v, want InvalidFormat", err)
	}
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	b := sre.NewBuilder()
	cases := []string{
		"v1:",
		"v1:(",
		"v1:(Bogus)",
		"v1:(Concat (Epsilon))",
		"v1:(Epsilon) trailing",
	}
	for _, s := range cases {
		if _, err := Deserialize(b, s); err == nil {
			t.Fatalf("Deserialize(%q): expected an error", s)
		}
	}
}
