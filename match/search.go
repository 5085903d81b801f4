package match

import (
	"unicode/utf8"

	"github.com/srmx/srm/dfa"
	"github.com/srmx/srm/sre"
)

// Find returns the leftmost match in s starting at or after byte offset at,
// or ok=false if none exists. err is non-nil only if the configured step
// budget was exceeded (errs.MatchAborted).
func (m *Matcher) Find(s string, at int) (span Span, ok bool, err error) {
	if at > len(s) {
		return Span{}, false, nil
	}
	if m.literal != nil && !m.literal.mayMatch(s[at:]) {
		return Span{}, false, nil
	}

	candidateEnd, steps, ok, err := m.findEnd(s, at, 0)
	if err != nil {
		return Span{}, false, err
	}
	if !ok {
		return Span{}, false, nil
	}

	if m.commitLen >= 0 {
		// Passing through the compiled Watchdog records the accept length
		// directly (spec §4.3): a deterministic pattern has exactly one
		// possible start for any end, so it needs neither the reverse pass
		// nor a greedy re-extension.
		if start := candidateEnd - int(m.commitLen); start >= at {
			return Span{Start: start, End: candidateEnd}, true, nil
		}
		// Unreachable for a correctly built forward automaton (it never
		// begins consuming before at), but fall back rather than risk a
		// wrong span.
	}

	start, steps, ok, err := m.findStart(s, at, candidateEnd, steps)
	if err != nil {
		return Span{}, false, err
	}
	if !ok {
		// The forward pass claims a match ends here but the reverse pass
		// found no corresponding start; this cannot happen for a correctly
		// built reverse automaton, but report no-match rather than panic.
		return Span{}, false, nil
	}

	// candidateEnd only proves a match exists; re-extend from the now
	// known true start to find the greedy (maximal) end, since a
	// quantifier in the pattern can nullify more than once on the way
	// there (spec §4.6).
	end, _, ok, err := m.findMaxEnd(s, start, steps)
	if err != nil {
		return Span{}, false, err
	}
	if !ok {
		// Unreachable: start was just proven to reach candidateEnd.
		return Span{Start: start, End: candidateEnd}, true, nil
	}
	return Span{Start: start, End: end}, true, nil
}

// findEnd runs the forward, dotStar-prefixed DFA from at, returning the
// first position at which some suffix starting at or after at has fully
// matched the pattern. Because the dotStar prefix keeps "start a fresh
// attempt right here" alive at every position, this automaton is
// essentially never dead before EOF, so it cannot itself be used to find
// the *maximal* match length (see findMaxEnd for that) — its only job is
// to prove a match exists at or after at and hand findStart a witness end
// to resolve the true leftmost start from (spec §4.6 "forward pass proves
// a match exists; the reverse pass resolves the exact start").
func (m *Matcher) findEnd(s string, at int, stepsUsed uint64) (end int, steps uint64, ok bool, err error) {
	state := m.forward.Root()
	state = m.applyStartBorders(m.forward, state, s, at)

	if m.isFinalAt(m.forward, state, s, at) {
		return at, stepsUsed, true, nil
	}

	pos := at
	for pos < len(s) {
		if m.cfg.StepBudget != 0 && stepsUsed >= m.cfg.StepBudget {
			return 0, stepsUsed, false, abortedErr()
		}
		r, size := utf8.DecodeRuneInString(s[pos:])
		id := m.forwardClasses.IDFor(r)
		state = m.forward.Step(state, id)
		stepsUsed++
		pos += size
		if state.IsDead() {
			return 0, stepsUsed, false, nil
		}
		if r == '\n' {
			state = m.forward.StepBorder(state, sre.BorderStartOfLine)
		}
		if m.isFinalAt(m.forward, state, s, pos) {
			return pos, stepsUsed, true, nil
		}
	}
	return 0, stepsUsed, false, nil
}

// findMaxEnd runs the bare (non-dotStar-prefixed) pattern DFA forward from
// a known match start, tracking the latest nullable position and reporting
// it once the automaton dies or input ends (spec §4.6's Seeking/Scanning/
// Report state machine: "Scanning(q,la)" keeps overwriting la on every
// later final transition and only reports on dead/EOF). Unlike the
// dotStar-prefixed forward DFA, this one has no "start fresh here" escape
// hatch keeping it alive, so it reliably dies once the pattern's own
// language from start is exhausted — which is what lets a quantifier that
// re-nullifies more than once while scanning, like (cc)+ matching "cccc"
// rather than stopping after the first "cc", report its true greedy
// length instead of its earliest one.
func (m *Matcher) findMaxEnd(s string, start int, stepsUsed uint64) (end int, steps uint64, ok bool, err error) {
	state := m.bare.Root()
	state = m.applyStartBorders(m.bare, state, s, start)

	lastFinal := -1
	if m.isFinalAt(m.bare, state, s, start) {
		lastFinal = start
	}

	pos := start
	for pos < len(s) {
		if m.cfg.StepBudget != 0 && stepsUsed >= m.cfg.StepBudget {
			return 0, stepsUsed, false, abortedErr()
		}
		r, size := utf8.DecodeRuneInString(s[pos:])
		id := m.bareClasses.IDFor(r)
		state = m.bare.Step(state, id)
		stepsUsed++
		pos += size
		if state.IsDead() {
			break
		}
		if r == '\n' {
			state = m.bare.StepBorder(state, sre.BorderStartOfLine)
		}
		if m.isFinalAt(m.bare, state, s, pos) {
			lastFinal = pos
		}
	}
	if lastFinal == -1 {
		return 0, stepsUsed, false, nil
	}
	return lastFinal, stepsUsed, true, nil
}

// findStart runs the reverse DFA backward from end to at, returning the
// leftmost position that is still reachable as the true start of the match
// (spec §4.6 "reverse pass resolves the exact start").
func (m *Matcher) findStart(s string, at, end int, stepsUsed uint64) (start int, steps uint64, ok bool, err error) {
	state := m.reverse.Root()

	atTrueEnd := end == len(s)
	atLineEnd := atTrueEnd || s[end] == '\n'
	if atTrueEnd {
		state = m.reverse.StepBorder(state, sre.BorderStartOfInput)
	}
	if atLineEnd {
		state = m.reverse.StepBorder(state, sre.BorderStartOfLine)
	}

	last := -1
	if m.isReverseFinalAt(state, s, end) {
		last = end
	}

	pos := end
	for pos > at {
		if m.cfg.StepBudget != 0 && stepsUsed >= m.cfg.StepBudget {
			return 0, stepsUsed, false, abortedErr()
		}
		r, size := utf8.DecodeLastRuneInString(s[:pos])
		pos -= size
		id := m.reverseClasses.IDFor(r)
		state = m.reverse.Step(state, id)
		stepsUsed++
		if state.IsDead() {
			break
		}
		if r == '\n' {
			state = m.reverse.StepBorder(state, sre.BorderStartOfLine)
		}
		if m.isReverseFinalAt(state, s, pos) {
			last = pos
		}
	}
	if last == -1 {
		return 0, stepsUsed, false, nil
	}
	return last, stepsUsed, true, nil
}

// applyStartBorders resolves any StartAnchor/BolAnchor at the absolute
// beginning of the forward scan window.
func (m *Matcher) applyStartBorders(d *dfa.DFA, state *dfa.State, s string, at int) *dfa.State {
	if at == 0 {
		state = d.StepBorder(state, sre.BorderStartOfInput)
	}
	if at == 0 || s[at-1] == '\n' {
		state = d.StepBorder(state, sre.BorderStartOfLine)
	}
	return state
}

// isFinalAt reports whether the forward state is nullable once the border
// conditions at byte offset pos (within the full string s) are substituted.
func (m *Matcher) isFinalAt(d *dfa.DFA, state *dfa.State, s string, pos int) bool {
	endOfInput := pos == len(s)
	endOfLine := endOfInput || s[pos] == '\n'
	return state.IsFinal(m.builder, endOfInput, endOfLine)
}

// isReverseFinalAt mirrors isFinalAt for the reverse automaton: a candidate
// start position pos is valid exactly when reversed-EndAnchor/EolAnchor
// (which are the original StartAnchor/BolAnchor, after sre.Reverse's swap)
// resolve true there.
func (m *Matcher) isReverseFinalAt(state *dfa.State, s string, pos int) bool {
	startOfInput := pos == 0
	startOfLine := startOfInput || s[pos-1] == '\n'
	return state.IsFinal(m.builder, startOfInput, startOfLine)
}
