package sre

import "github.com/srmx/srm/pred"

// CollectPredicates gathers every distinct Singleton predicate mentioned in
// r, in first-encounter order. This is the input to the minterm classifier
// (spec §4.4): "collect predicates = R.collect_predicates()".
func CollectPredicates(r *Re) []pred.Pred {
	seen := make(map[uint64]bool)
	var out []pred.Pred
	var visit func(n *Re)
	visited := make(map[uint64]bool)
	visit = func(n *Re) {
		if visited[n.id] {
			return
		}
		visited[n.id] = true
		switch n.kind {
		case KindSingleton:
			key := hashString(pred.Serialize(n.pred))
			if !seen[key] {
				seen[key] = true
				out = append(out, n.pred)
			}
		case KindConcat:
			visit(n.children[0])
			visit(n.children[1])
		case KindOr, KindAnd:
			for _, e := range n.set {
				visit(e)
			}
		case KindLoop:
			visit(n.loopBody)
		case KindIfThenElse:
			visit(n.children[0])
			visit(n.children[1])
			visit(n.children[2])
		}
	}
	visit(r)
	return out
}

// TrailingWatchdogLength reports the commit length marked by a Watchdog
// node at r's canonical accept point (spec §4.3), if r carries one. Concat
// is right-leaning by construction (MkConcat never leaves a Concat as a
// left child), so a Watchdog appended after a pattern body always ends up
// as the rightmost leaf of the chain.
func TrailingWatchdogLength(r *Re) (uint32, bool) {
	for r.kind == KindConcat {
		r = r.children[1]
	}
	if r.kind == KindWatchdog {
		return r.watchdogLen, true
	}
	return 0, false
}

// StartSet returns the set of Singleton predicates that can appear as the
// very first consumed character of r (spec §4.2: "start_set ... computed
// at construction and cached" — computed on demand here rather than cached
// on every node).
func StartSet(r *Re) []pred.Pred {
	var out []pred.Pred
	visited := make(map[uint64]bool)
	var visit func(n *Re)
	visit = func(n *Re) {
		if n == nil || visited[n.id] {
			return
		}
		visited[n.id] = true
		switch n.kind {
		case KindSingleton:
			out = append(out, n.pred)
		case KindConcat:
			visit(n.children[0])
			if n.children[0].isNullable {
				visit(n.children[1])
			}
		case KindOr, KindAnd:
			for _, e := range n.set {
				visit(e)
			}
		case KindLoop:
			visit(n.loopBody)
		case KindIfThenElse:
			visit(n.children[1])
			visit(n.children[2])
		}
	}
	visit(r)
	return out
}
