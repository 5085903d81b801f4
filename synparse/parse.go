// Package synparse adapts the stdlib's regexp/syntax parser into the
// symbolic regex algebra (spec §3 "external interfaces: a pattern string is
// parsed by a collaborating library, then lowered into the Re algebra").
//
// Grounded on the teacher's nfa/compile.go: both walk a syntax.Regexp tree
// by Op and build up an engine-native representation one case at a time;
// here the target is a hash-consed *sre.Re instead of a Thompson-NFA
// fragment, so there's no Builder.Patch bookkeeping, but the op-by-op
// structure and the unsupported-construct rejection list are the same
// shape.
package synparse

import (
	"regexp/syntax"

	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

// Parse parses pattern with Perl syntax and lowers it into b's algebra.
// The result carries no implicit anchors: only anchors written in the
// pattern appear in it. Search semantics come from the match package,
// which prepends its own dotStar prefix.
func Parse(b *sre.Builder, pattern string) (*sre.Re, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidRegex, "parse pattern", err)
	}
	return lower(b, re)
}

func lower(b *sre.Builder, re *syntax.Regexp) (*sre.Re, error) {
	switch re.Op {
	case syntax.OpLiteral:
		return lowerLiteral(b, re)

	case syntax.OpCharClass:
		return lowerCharClass(b, re.Rune)

	case syntax.OpAnyChar:
		return b.MkSingleton(pred.Any()), nil

	case syntax.OpAnyCharNotNL:
		return b.MkSingleton(pred.Dot(false)), nil

	case syntax.OpConcat:
		return lowerConcat(b, re.Sub)

	case syntax.OpAlternate:
		return lowerAlternate(b, re.Sub)

	case syntax.OpStar:
		return lowerRepeat(b, re.Sub[0], 0, sre.Unbounded, re.Flags&syntax.NonGreedy != 0)

	case syntax.OpPlus:
		return lowerRepeat(b, re.Sub[0], 1, sre.Unbounded, re.Flags&syntax.NonGreedy != 0)

	case syntax.OpQuest:
		return lowerRepeat(b, re.Sub[0], 0, 1, re.Flags&syntax.NonGreedy != 0)

	case syntax.OpRepeat:
		hi := sre.Unbounded
		if re.Max >= 0 {
			hi = uint32(re.Max)
		}
		return lowerRepeat(b, re.Sub[0], uint32(re.Min), hi, re.Flags&syntax.NonGreedy != 0)

	case syntax.OpCapture:
		// Capture groups have no analogue in the symbolic algebra (spec
		// Non-goals exclude submatch extraction); only the matched span
		// matters, so a capture lowers to its body.
		return lower(b, re.Sub[0])

	case syntax.OpBeginText:
		return b.MkStartAnchor(), nil

	case syntax.OpEndText:
		return b.MkEndAnchor(), nil

	case syntax.OpBeginLine:
		return b.MkBolAnchor(), nil

	case syntax.OpEndLine:
		return b.MkEolAnchor(), nil

	case syntax.OpEmptyMatch:
		return b.Epsilon(), nil

	case syntax.OpNoMatch:
		return b.EmptySet(), nil

	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil, errs.New(errs.UnsupportedFeature, "word boundary assertions (\\b, \\B) are not supported")

	default:
		return nil, errs.New(errs.UnsupportedFeature, "unsupported regex construct: "+re.Op.String())
	}
}

func lowerLiteral(b *sre.Builder, re *syntax.Regexp) (*sre.Re, error) {
	foldCase := re.Flags&syntax.FoldCase != 0
	cur := b.Epsilon()
	for _, r := range re.Rune {
		cur = b.MkConcat(cur, b.MkSingleton(pred.MkChar(r, foldCase)))
	}
	return cur, nil
}

// lowerCharClass converts regexp/syntax's [lo,hi,lo,hi,...] rune-pair
// encoding into a single Or'd predicate (spec §1's Pred.Or closure).
func lowerCharClass(b *sre.Builder, ranges []rune) (*sre.Re, error) {
	if len(ranges) == 0 {
		return b.EmptySet(), nil
	}
	p := pred.None()
	for i := 0; i+1 < len(ranges); i += 2 {
		p = p.Or(pred.MkRange(ranges[i], ranges[i+1], false))
	}
	return b.MkSingleton(p), nil
}

func lowerConcat(b *sre.Builder, subs []*syntax.Regexp) (*sre.Re, error) {
	cur := b.Epsilon()
	for _, sub := range subs {
		child, err := lower(b, sub)
		if err != nil {
			return nil, err
		}
		cur = b.MkConcat(cur, child)
	}
	return cur, nil
}

func lowerAlternate(b *sre.Builder, subs []*syntax.Regexp) (*sre.Re, error) {
	elems := make([]*sre.Re, 0, len(subs))
	for _, sub := range subs {
		child, err := lower(b, sub)
		if err != nil {
			return nil, err
		}
		elems = append(elems, child)
	}
	return b.MkOr(elems), nil
}

func lowerRepeat(b *sre.Builder, sub *syntax.Regexp, lo, hi uint32, lazy bool) (r *sre.Re, err error) {
	body, err := lower(b, sub)
	if err != nil {
		return nil, err
	}
	return build(func() *sre.Re { return b.MkLoop(body, lo, hi, lazy) })
}

// build recovers from the Builder's panic-on-invalid-bounds (sre.MkLoop) so
// a malformed repeat count surfaces as an *errs.Error instead of a panic,
// matching every other error path in this package.
func build(f func() *sre.Re) (r *sre.Re, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(*errs.Error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()
	return f(), nil
}
