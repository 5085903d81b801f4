package dfa

import "container/list"

// transitionKey identifies one populated (state, minterm) transition entry
// for the purposes of LRU eviction (spec §3 Lifecycle / §4.5 Eviction).
type transitionKey struct {
	state StateID
	id    uint16
}

// transitionLRU tracks the insertion order of populated transitions so the
// cache can evict the least-recently-added ones once MaxTransitions is
// exceeded, without ever evicting the root state's own transitions.
//
// Grounded on the teacher's dfa/lazy.Cache, which bounds whole states by a
// map capacity and clears-on-full; here the bounded resource is individual
// transition entries (states themselves are cheap: they're just a hash-cons
// id plus a lazily-sized slice), so eviction is finer-grained and never
// needs to blow away a state that's still reachable from the root.
type transitionLRU struct {
	max   uint32
	order *list.List
	index map[transitionKey]*list.Element
	root  StateID
}

func newTransitionLRU(max uint32, root StateID) *transitionLRU {
	return &transitionLRU{
		max:   max,
		order: list.New(),
		index: make(map[transitionKey]*list.Element),
		root:  root,
	}
}

// touch records that (state,id) now holds a populated transition, evicting
// the oldest non-root entries if the cache is over its bound.
func (l *transitionLRU) touch(state StateID, id uint16, states map[StateID]*State) {
	if l.max == 0 {
		return // unbounded
	}
	k := transitionKey{state, id}
	if _, ok := l.index[k]; ok {
		return
	}
	l.index[k] = l.order.PushBack(k)
	for uint32(l.order.Len()) > l.max {
		l.evictOldest(states)
	}
}

func (l *transitionLRU) evictOldest(states map[StateID]*State) {
	for e := l.order.Front(); e != nil; e = e.Next() {
		k := e.Value.(transitionKey)
		if k.state == l.root {
			continue // root transitions are never evicted
		}
		l.order.Remove(e)
		delete(l.index, k)
		if st, ok := states[k.state]; ok && int(k.id) < len(st.populated) {
			st.populated[k.id] = false
			st.delta[k.id] = 0
		}
		return
	}
	// Only root-state entries remain; nothing evictable. Stop trying so we
	// don't spin — the root set is explicitly exempt from the bound.
	l.max = uint32(l.order.Len()) + 1
}
