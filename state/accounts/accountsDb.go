package accounts

import (
	"calcvoices/engine/library"
	"github.com/sasha-s/go-deadlock"
)

// Validator reports whether a raw delegation target is a well-formed account id.
type Validator func(id library.Account) bool

// AnyNonEmpty accepts every non-empty id.
func AnyNonEmpty(id library.Account) bool {
	return len(id) > 0
}

// Registry owns every account of a run, keyed by id and kept in insertion order.
// Its own methods may be called concurrently. The per-graph links of an Account are only
// written under the registry lock but read without it, so Account accessors must not run
// while a resolver is writing; resolution is single writer.
type Registry struct {
	valid   Validator
	order   []library.Account
	data    map[library.Account]*Account
	intents [2][]Intent
	mutex   *deadlock.RWMutex
}

// NewRegistry returns an empty registry. A nil validator accepts any non-empty id.
func NewRegistry(valid Validator) *Registry {
	if valid == nil {
		valid = AnyNonEmpty
	}
	return &Registry{
		valid: valid,
		data:  make(map[library.Account]*Account),
		mutex: &deadlock.RWMutex{},
	}
}

// Add inserts the account unless its id is already known. It returns the registered
// instance and whether it was inserted.
func (r *Registry) Add(a *Account) (*Account, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.add(a)
}

func (r *Registry) add(a *Account) (*Account, bool) {
	if existing, ok := r.data[a.ID]; ok {
		return existing, false
	}
	r.data[a.ID] = a
	r.order = append(r.order, a.ID)
	return a, true
}

// Ingest registers a source record and its delegation intents. Invalid raw targets are
// treated as absent. Re-ingesting a known id changes nothing.
func (r *Registry) Ingest(rec Record) (*Account, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	a, inserted := r.add(NewAccount(rec.ID, rec.Balance))
	if !inserted {
		return a, false
	}
	for _, g := range library.Graphs {
		target := rec.Delegate(g)
		if !r.valid(target) {
			continue
		}
		a.links[g].Intent = target
		r.intents[g] = append(r.intents[g], Intent{Delegator: a.ID, Target: target})
	}
	return a, true
}

func (r *Registry) Get(id library.Account) (*Account, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	a, ok := r.data[id]
	return a, ok
}

func (r *Registry) Exists(id library.Account) bool {
	_, ok := r.Get(id)
	return ok
}

// All returns the accounts in insertion order.
func (r *Registry) All() []*Account {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	all := make([]*Account, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.data[id])
	}
	return all
}

func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.order)
}

// Intents returns the intents of graph g in ingestion order.
func (r *Registry) Intents(g library.Graph) []Intent {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return append([]Intent(nil), r.intents[g]...)
}

// SetDelegate records the resolved edge delegator -> target in g on both ends.
func (r *Registry) SetDelegate(g library.Graph, delegator, target *Account) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delegator.links[g].Delegate = target.ID
	for _, id := range target.links[g].Delegators {
		if id == delegator.ID {
			return
		}
	}
	target.links[g].Delegators = append(target.links[g].Delegators, delegator.ID)
}

// MarkBroken excises a's outgoing edge in g from aggregation.
func (r *Registry) MarkBroken(g library.Graph, a *Account) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	a.links[g].Broken = true
}
