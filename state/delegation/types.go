package delegation

import (
	"errors"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
)

// ErrUnknownAccount means an account the resolver must already know is missing from the
// registry. It is an invariant violation, not a broken chain.
var ErrUnknownAccount = errors.New("unknown account (not from the preloaded list)")

// Loader fetches an account that was not ingested up front. Any error is treated as not found.
type Loader interface {
	Load(id library.Account) (accounts.Record, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(id library.Account) (accounts.Record, error)

func (f LoaderFunc) Load(id library.Account) (accounts.Record, error) {
	return f(id)
}

// Reason says why a delegator was marked broken.
type Reason int

const (
	// Cycle means the delegator's edge closed a loop (self delegation included).
	Cycle Reason = iota
	// Unloadable means a target along the delegator's chain could not be loaded.
	Unloadable
)

func (r Reason) String() string {
	if r == Cycle {
		return "cycle"
	}
	return "unloadable"
}

// Broken records one delegator excised from a graph.
type Broken struct {
	Account library.Account
	Target  library.Account
	Reason  Reason
}

// Summary describes one resolution pass over a graph.
type Summary struct {
	Graph    library.Graph
	Resolved int // delegators with a recorded edge
	Loaded   int // accounts pulled in through the loader
	Broken   []Broken
}
