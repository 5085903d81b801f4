// Package serial implements persistence for compiled symbolic regexes
// (spec C8): a compact textual form that round-trips a *sre.Re through a
// Builder without re-parsing the original pattern string.
//
// Grounded on pred/serialize.go's ranges-form text encoding (hex bounds,
// comma-separated) for predicate payloads; the tree itself is encoded as a
// small S-expression grammar, one tag per sre.Kind, since the corpus has no
// existing whole-AST serializer to ground this part on and a hand-rolled
// recursive-descent reader is the simplest thing that can parse ~12 node
// shapes (see DESIGN.md for why no third-party serialization library was
// wired in here).
package serial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srmx/srm/errs"
	"github.com/srmx/srm/pred"
	"github.com/srmx/srm/sre"
)

// version is prefixed to every serialized form so a future format change
// can be rejected cleanly instead of silently misparsed.
const version = "v1:"

// Serialize renders r as a versioned, self-contained string.
func Serialize(r *sre.Re) string {
	var sb strings.Builder
	sb.WriteString(version)
	writeNode(&sb, r)
	return sb.String()
}

// Deserialize parses a string produced by Serialize back into a *sre.Re
// hash-consed within b. Returns errs.InvalidFormat on any malformed input,
// including an unrecognized version tag.
func Deserialize(b *sre.Builder, s string) (*sre.Re, error) {
	if !strings.HasPrefix(s, version) {
		return nil, errs.New(errs.InvalidFormat, "unrecognized or missing version tag")
	}
	p := &parser{b: b, s: s[len(version):]}
	r, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, errs.New(errs.InvalidFormat, "trailing data after top-level expression")
	}
	return r, nil
}

func writeNode(sb *strings.Builder, r *sre.Re) {
	switch r.Kind() {
	case sre.KindEpsilon:
		sb.WriteString("(Epsilon)")
	case sre.KindEmptySet:
		sb.WriteString("(EmptySet)")
	case sre.KindStartAnchor:
		sb.WriteString("(StartAnchor)")
	case sre.KindEndAnchor:
		sb.WriteString("(EndAnchor)")
	case sre.KindBolAnchor:
		sb.WriteString("(BolAnchor)")
	case sre.KindEolAnchor:
		sb.WriteString("(EolAnchor)")
	case sre.KindWatchdog:
		fmt.Fprintf(sb, "(Watchdog %d)", r.WatchdogLen())
	case sre.KindSingleton:
		fmt.Fprintf(sb, "(Singleton %s)", pred.Serialize(r.Pred()))
	case sre.KindConcat:
		sb.WriteString("(Concat ")
		writeNode(sb, r.Children()[0])
		sb.WriteByte(' ')
		writeNode(sb, r.Children()[1])
		sb.WriteByte(')')
	case sre.KindIfThenElse:
		sb.WriteString("(IfThenElse ")
		writeNode(sb, r.Children()[0])
		sb.WriteByte(' ')
		writeNode(sb, r.Children()[1])
		sb.WriteByte(' ')
		writeNode(sb, r.Children()[2])
		sb.WriteByte(')')
	case sre.KindOr:
		writeSet(sb, "Or", r.Set())
	case sre.KindAnd:
		writeSet(sb, "And", r.Set())
	case sre.KindLoop:
		fmt.Fprintf(sb, "(Loop %d %d %t ", r.LoopLo(), r.LoopHi(), r.LoopLazy())
		writeNode(sb, r.LoopBody())
		sb.WriteByte(')')
	}
}

func writeSet(sb *strings.Builder, tag string, elems []*sre.Re) {
	sb.WriteByte('(')
	sb.WriteString(tag)
	for _, e := range elems {
		sb.WriteByte(' ')
		writeNode(sb, e)
	}
	sb.WriteByte(')')
}

// parser is a minimal recursive-descent reader over the S-expression
// grammar written by writeNode.
type parser struct {
	b   *sre.Builder
	s   string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) fail(msg string) error {
	return errs.New(errs.InvalidFormat, fmt.Sprintf("%s at offset %d", msg, p.pos))
}

func (p *parser) expectByte(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.s) || p.s[p.pos] != c {
		return p.fail(fmt.Sprintf("expected %q", c))
	}
	p.pos++
	return nil
}

// readToken reads a run of non-space, non-paren characters.
func (p *parser) readToken() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ' ' && p.s[p.pos] != '(' && p.s[p.pos] != ')' {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *parser) atClose() bool {
	p.skipSpace()
	return p.pos < len(p.s) && p.s[p.pos] == ')'
}

func (p *parser) parseExpr() (*sre.Re, error) {
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	tag := p.readToken()
	var r *sre.Re
	var err error
	switch tag {
	case "Epsilon":
		r = p.b.Epsilon()
	case "EmptySet":
		r = p.b.EmptySet()
	case "StartAnchor":
		r = p.b.MkStartAnchor()
	case "EndAnchor":
		r = p.b.MkEndAnchor()
	case "BolAnchor":
		r = p.b.MkBolAnchor()
	case "EolAnchor":
		r = p.b.MkEolAnchor()
	case "Watchdog":
		n, perr := p.parseUint32()
		if perr != nil {
			return nil, perr
		}
		r = p.b.MkWatchdog(n)
	case "Singleton":
		tok := p.readToken()
		pd, perr := pred.Deserialize(tok)
		if perr != nil {
			return nil, errs.Wrap(errs.InvalidFormat, "bad predicate", perr)
		}
		r = p.b.MkSingleton(pd)
	case "Concat":
		l, lerr := p.parseExpr()
		if lerr != nil {
			return nil, lerr
		}
		rgt, rerr := p.parseExpr()
		if rerr != nil {
			return nil, rerr
		}
		r = p.b.MkConcat(l, rgt)
	case "IfThenElse":
		cond, e1 := p.parseExpr()
		if e1 != nil {
			return nil, e1
		}
		then, e2 := p.parseExpr()
		if e2 != nil {
			return nil, e2
		}
		els, e3 := p.parseExpr()
		if e3 != nil {
			return nil, e3
		}
		r = p.b.MkIfThenElse(cond, then, els)
	case "Or", "And":
		elems, perr := p.parseExprList()
		if perr != nil {
			return nil, perr
		}
		if tag == "Or" {
			r = p.b.MkOr(elems)
		} else {
			r = p.b.MkAnd(elems)
		}
	case "Loop":
		lo, e1 := p.parseUint32()
		if e1 != nil {
			return nil, e1
		}
		hi, e2 := p.parseUint32()
		if e2 != nil {
			return nil, e2
		}
		lazy, e3 := p.parseBool()
		if e3 != nil {
			return nil, e3
		}
		body, e4 := p.parseExpr()
		if e4 != nil {
			return nil, e4
		}
		r, err = recoverLoop(p.b, body, lo, hi, lazy)
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.fail("unknown node tag " + tag)
	}
	if err2 := p.expectByte(')'); err2 != nil {
		return nil, err2
	}
	return r, nil
}

func (p *parser) parseExprList() ([]*sre.Re, error) {
	var out []*sre.Re
	for !p.atClose() {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (p *parser) parseUint32() (uint32, error) {
	tok := p.readToken()
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidFormat, "bad integer "+tok, err)
	}
	return uint32(n), nil
}

func (p *parser) parseBool() (bool, error) {
	tok := p.readToken()
	switch tok {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, p.fail("expected true/false, got " + tok)
	}
}

// recoverLoop converts the Builder's panic-on-invalid-bounds into an error,
// matching the same guard synparse uses around MkLoop.
func recoverLoop(b *sre.Builder, body *sre.Re, lo, hi uint32, lazy bool) (r *sre.Re, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(*errs.Error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()
	return b.MkLoop(body, lo, hi, lazy), nil
}
