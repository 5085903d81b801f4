package pred

// GenerateMinterms partitions the alphabet into the non-empty atoms of the
// Boolean algebra generated by preds, per spec §4.1: incremental refinement
// starting from [⊤], splitting each existing atom a by every predicate p
// into the non-empty elements of {a∧p, a∧¬p}.
//
// The result is an ordered slice of pairwise-disjoint predicates whose
// union is the full alphabet (spec invariant "minterm partition").
func GenerateMinterms(preds []Pred) []Pred {
	atoms := []Pred{Any()}
	for _, p := range preds {
		var next []Pred
		for _, a := range atoms {
			pos := a.And(p)
			neg := a.And(p.Not())
			if pos.IsSatisfiable() {
				next = append(next, pos)
			}
			if neg.IsSatisfiable() {
				next = append(next, neg)
			}
		}
		if len(next) == 0 {
			// All atoms became unsatisfiable only if preds themselves
			// degenerate (e.g. p == ⊥ and a == ⊥); preserve invariant by
			// keeping the previous atom set in that corner case.
			continue
		}
		atoms = next
	}
	return atoms
}
