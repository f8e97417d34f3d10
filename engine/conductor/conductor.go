// Package conductor runs one calculation: ingest the token holders, resolve both delegation
// graphs, aggregate, select the council and diff it against the observed signers.
package conductor

import (
	"context"
	"fmt"

	"calcvoices/engine/library"
	"calcvoices/messaging/report"
	"calcvoices/state/accounts"
	"calcvoices/state/council"
	"calcvoices/state/delegation"
	"calcvoices/state/power"
	"github.com/google/uuid"
)

// Source lists the token holders.
type Source interface {
	Holders() ([]accounts.Record, error)
}

// Observer reads the main account's current signer configuration.
type Observer interface {
	Observe() (council.Observed, error)
}

// Validating is implemented by sources that know which delegate ids are well formed.
type Validating interface {
	Valid(id library.Account) bool
}

// Warmer is implemented by loaders that can fetch ahead of resolution.
type Warmer interface {
	Warm(ctx context.Context, ids []library.Account, workers int) error
}

// Collaborators are the I/O edges of a run.
type Collaborators struct {
	Source   Source
	Loader   delegation.Loader
	Observer Observer
}

// Options tune a run. Zero values mean: the source's own validator (any non-empty id if it
// has none), one prefetch worker, council.Size seats, no logging.
type Options struct {
	Validator       accounts.Validator
	PrefetchWorkers int
	CouncilSize     int
	Log             library.Logger
}

// Result is everything a run computed.
type Result struct {
	RunID      string
	Holders    int // accounts ingested from the source; lazily loaded ones follow them
	Registry   *accounts.Registry
	Aggregator *power.Aggregator
	Summaries  []delegation.Summary
	Partition  council.Partition
	Members    []council.Member
	Observed   council.Observed
	Plan       council.Plan
}

// Run executes the whole calculation. Collaborator failures and ErrUnknownAccount are
// returned; broken delegation chains are not errors.
func Run(ctx context.Context, c Collaborators, opts Options) (*Result, error) {
	log := library.OrNop(opts.Log)
	if opts.CouncilSize < 1 {
		opts.CouncilSize = council.Size
	}
	if opts.PrefetchWorkers < 1 {
		opts.PrefetchWorkers = 1
	}
	if v, ok := c.Source.(Validating); ok && opts.Validator == nil {
		opts.Validator = v.Valid
	}
	res := &Result{RunID: uuid.New().String(), Registry: accounts.NewRegistry(opts.Validator)}
	log.Info("run %s started", res.RunID)

	holders, err := c.Source.Holders()
	if err != nil {
		return nil, err
	}
	for _, rec := range holders {
		res.Registry.Ingest(rec)
	}
	res.Holders = res.Registry.Len()
	log.Info("ingested %d accounts", res.Holders)

	if w, ok := c.Loader.(Warmer); ok {
		missing := unknownTargets(res.Registry)
		log.Debug("prefetching %d delegation targets", len(missing))
		if err = w.Warm(ctx, missing, opts.PrefetchWorkers); err != nil {
			return nil, fmt.Errorf("prefetching delegation targets: %w", err)
		}
	}

	res.Summaries, err = delegation.NewResolver(res.Registry, c.Loader, log).ResolveAll()
	if err != nil {
		return nil, err
	}

	res.Aggregator = power.NewAggregator(res.Registry)
	res.Partition = council.Select(res.Registry, res.Aggregator, opts.CouncilSize)
	res.Members = council.Weigh(res.Partition.Candidates)

	if res.Observed, err = c.Observer.Observe(); err != nil {
		return nil, err
	}
	if res.Plan, err = council.Diff(res.Members, res.Observed); err != nil {
		return nil, err
	}
	log.Info("run %s: %d council members, %d changes, threshold %d", res.RunID, len(res.Members), len(res.Plan.Changes), res.Plan.Threshold)
	return res, nil
}

// unknownTargets are the distinct delegation targets, across both graphs, that were not
// ingested.
func unknownTargets(registry *accounts.Registry) []library.Account {
	seen := make(map[library.Account]struct{})
	var ids []library.Account
	for _, g := range library.Graphs {
		for _, in := range registry.Intents(g) {
			if _, dup := seen[in.Target]; dup || registry.Exists(in.Target) {
				continue
			}
			seen[in.Target] = struct{}{}
			ids = append(ids, in.Target)
		}
	}
	return ids
}

// Print writes every report section for res.
func (res *Result) Print(p *report.Printer, token string) {
	p.Holders(token, res.Registry.All()[:res.Holders])
	p.Resolution(res.Summaries)
	p.Assembly(res.Registry, res.Aggregator)
	p.Broken(res.Partition, res.Aggregator)
	p.Roots(res.Partition, res.Aggregator)
	p.Expected(res.Members)
	p.Current(res.Observed)
	p.Difference(res.Plan)
}
