package match

import (
	"strings"

	"github.com/itgcl/ahocorasick"
	"github.com/srmx/srm/internal/accel"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

// literalGate is a cheap pre-check the forward search runs before driving
// the DFA at all: if it can prove a literal substring is required for any
// match and that substring is absent, the whole search is skipped.
//
// Grounded on the teacher's meta.Engine prefilter dispatch (meta/find.go's
// findAhoCorasick/findTeddy paths): a multi-literal alternation gets an
// Aho-Corasick automaton, a single fixed prefix gets a direct byte scan.
type literalGate struct {
	// exactly one of the following is set.
	single    byte
	pair      [2]byte
	hasPair   bool
	hasSingle bool

	ac *ahocorasick.Matcher // set when the pattern is a pure literal alternation
}

func buildLiteralGate(root *sre.Re) *literalGate {
	if alts, ok := literalAlternatives(root); ok && len(alts) > 1 {
		return &literalGate{ac: ahocorasick.NewStringMatcher(alts)}
	}

	prefix, ok := literalPrefix(root)
	if !ok || len(prefix) == 0 {
		return nil
	}
	switch len(prefix) {
	case 1:
		return &literalGate{single: prefix[0], hasSingle: true}
	default:
		return &literalGate{pair: [2]byte{prefix[0], prefix[1]}, hasPair: true}
	}
}

func (g *literalGate) mayMatch(s string) bool {
	switch {
	case g.ac != nil:
		_, ok := g.ac.MatchFirstString(s)
		return ok
	case g.hasSingle:
		return accel.IndexByte([]byte(s), g.single) != -1
	case g.hasPair:
		return accel.IndexAny2([]byte(s), g.pair[0], g.pair[1]) != -1
	default:
		return true
	}
}

// literalPrefix walks the left spine of Concat nodes (and through bare
// Singletons) collecting leading ASCII literal characters, stopping at the
// first node that isn't a single-character Singleton (spec §6 "fixed-prefix
// extraction"). It returns at most 2 bytes since that's all the accel fast
// paths use.
func literalPrefix(r *sre.Re) (string, bool) {
	var sb strings.Builder
	cur := r
	for sb.Len() < 2 {
		c, rest, ok := leadingChar(cur)
		if !ok {
			break
		}
		sb.WriteByte(c)
		if rest == nil {
			break
		}
		cur = rest
	}
	return sb.String(), sb.Len() > 0
}

// leadingChar reports the single ASCII byte a node must start with, plus
// the remaining node to continue from (nil if r is fully consumed), when r
// begins with an unambiguous exact-character Singleton.
func leadingChar(r *sre.Re) (b byte, rest *sre.Re, ok bool) {
	switch r.Kind() {
	case sre.KindSingleton:
		if c, ok := exactASCIIChar(r.Pred()); ok {
			return c, nil, true
		}
	case sre.KindConcat:
		children := r.Children()
		if c, ok := exactASCIIChar(childPred(children[0])); ok {
			return c, children[1], true
		}
	}
	return 0, nil, false
}

func childPred(r *sre.Re) pred.Pred {
	if r.Kind() == sre.KindSingleton {
		return r.Pred()
	}
	return pred.None()
}

func exactASCIIChar(p pred.Pred) (byte, bool) {
	ranges := p.Ranges()
	if len(ranges) != 1 {
		return 0, false
	}
	if ranges[0].Lo != ranges[0].Hi || ranges[0].Lo < 0 || ranges[0].Lo > 0x7f {
		return 0, false
	}
	return byte(ranges[0].Lo), true
}

// literalAlternatives reports the set of plain-literal strings an Or node's
// branches reduce to, when every branch is a fully literal Concat chain
// (spec §6 "multi-literal alternation"). Used to decide whether an
// Aho-Corasick automaton is worth building as a prefilter.
func literalAlternatives(r *sre.Re) ([]string, bool) {
	if r.Kind() != sre.KindOr {
		return nil, false
	}
	out := make([]string, 0, len(r.Set()))
	for _, branch := range r.Set() {
		s, ok := fullLiteral(branch)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func fullLiteral(r *sre.Re) (string, bool) {
	var sb strings.Builder
	cur := r
	for {
		if cur.Kind() == sre.KindEpsilon {
			return sb.String(), true
		}
		c, rest, ok := leadingChar(cur)
		if !ok {
			return "", false
		}
		sb.WriteByte(c)
		if rest == nil {
			return sb.String(), true
		}
		cur = rest
	}
}
