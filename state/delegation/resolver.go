package delegation

import (
	"fmt"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
)

// Resolver turns the registry's delegation intents into resolved edges, one graph at a time.
type Resolver struct {
	registry *accounts.Registry
	loader   Loader
	log      library.Logger
}

// NewResolver returns a resolver over registry. A nil loader never finds anything.
func NewResolver(registry *accounts.Registry, loader Loader, log library.Logger) *Resolver {
	if loader == nil {
		loader = LoaderFunc(func(id library.Account) (accounts.Record, error) {
			return accounts.Record{}, fmt.Errorf("no loader for %s", id)
		})
	}
	return &Resolver{registry: registry, loader: loader, log: library.OrNop(log)}
}

// ResolveAll resolves every graph in library.Graphs.
func (r *Resolver) ResolveAll() ([]Summary, error) {
	var summaries []Summary
	for _, g := range library.Graphs {
		s, err := r.Resolve(g)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Resolve walks every pending intent of graph g. Chains are followed transitively in one
// walk; a walk that meets one of its own accounts again marks the delegator closing the
// loop as broken. Failures stay local to their chain.
func (r *Resolver) Resolve(g library.Graph) (Summary, error) {
	return r.ResolveIntents(g, r.registry.Intents(g))
}

// ResolveIntents resolves the given intents of graph g. Every delegator must already be in
// the registry, otherwise the pass stops with ErrUnknownAccount.
func (r *Resolver) ResolveIntents(g library.Graph, intents []accounts.Intent) (Summary, error) {
	summary := Summary{Graph: g}
	queue := library.NewQueue()
	for _, intent := range intents {
		queue.Push(intent.Delegator)
	}
	processed := make(map[library.Account]struct{})

	for {
		delegatorID, ok := queue.Pop()
		if !ok {
			break
		}
		if _, done := processed[delegatorID]; done {
			continue
		}
		r.log.Debug("%s: starting walk at %s", g, delegatorID)
		origin, ok := r.registry.Get(delegatorID)
		if !ok {
			return summary, fmt.Errorf("%s delegation of %s: %w", g, delegatorID, ErrUnknownAccount)
		}
		chain := map[library.Account]struct{}{origin.ID: {}}
		delegator := origin
		for delegator != nil {
			targetID := delegator.Intent(g)
			r.log.Debug("%s: %s delegates to %s", g, delegator.ID, targetID)
			target, ok := r.registry.Get(targetID)
			if !ok {
				r.log.Debug("%s: loading new account %s", g, targetID)
				if target, ok = r.load(targetID); !ok {
					r.log.Warn("%s: could not load %s delegated to by %s", g, targetID, delegator.ID)
					r.registry.MarkBroken(g, origin)
					summary.Broken = append(summary.Broken, Broken{Account: origin.ID, Target: targetID, Reason: Unloadable})
					if delegator != origin {
						r.registry.MarkBroken(g, delegator)
						summary.Broken = append(summary.Broken, Broken{Account: delegator.ID, Target: targetID, Reason: Unloadable})
					}
					processed[delegator.ID] = struct{}{}
					break
				}
				summary.Loaded++
			}

			r.registry.SetDelegate(g, delegator, target)
			processed[delegator.ID] = struct{}{}
			summary.Resolved++

			if _, seen := chain[target.ID]; seen {
				r.log.Warn("%s: endless loop, %s delegates back into its own chain at %s", g, delegator.ID, target.ID)
				r.registry.MarkBroken(g, delegator)
				summary.Broken = append(summary.Broken, Broken{Account: delegator.ID, Target: target.ID, Reason: Cycle})
				break
			}
			chain[target.ID] = struct{}{}

			_, done := processed[target.ID]
			if len(target.Intent(g)) > 0 && !done {
				delegator = target
			} else {
				delegator = nil
			}
		}
	}
	return summary, nil
}

func (r *Resolver) load(id library.Account) (*accounts.Account, bool) {
	rec, err := r.loader.Load(id)
	if err != nil {
		r.log.Debug("load %s: %s", id, err.Error())
		return nil, false
	}
	if rec.ID != id {
		r.log.Debug("load %s: loader returned %s", id, rec.ID)
		return nil, false
	}
	a, _ := r.registry.Ingest(rec)
	return a, true
}
