package accounts

import (
	"calcvoices/engine/library"
)

// Record is one raw account as delivered by an account source or loader.
type Record struct {
	ID               library.Account `yaml:"id"`
	Balance          int64           `yaml:"balance"`
	AssemblyDelegate library.Account `yaml:"assembly_delegate,omitempty"`
	CouncilDelegate  library.Account `yaml:"council_delegate,omitempty"`
}

// Delegate returns the raw delegation target for the graph.
func (r Record) Delegate(g library.Graph) library.Account {
	if g == library.Assembly {
		return r.AssemblyDelegate
	}
	return r.CouncilDelegate
}

// Link is one account's position in a single delegation graph. Edges are account ids, the
// registry owns the accounts.
type Link struct {
	Intent     library.Account   // raw target recorded at ingestion, empty if none
	Delegate   library.Account   // resolved target, empty if none
	Delegators []library.Account // accounts resolved to delegate to this one, in resolution order
	Broken     bool
}

// Account is a token holder. Balance never changes after ingestion.
type Account struct {
	ID      library.Account
	Balance int64
	links   [2]Link
}

// NewAccount returns an account with no delegation in either graph.
func NewAccount(id library.Account, balance int64) *Account {
	return &Account{ID: id, Balance: balance}
}

// Link returns a copy of the account's state in graph g.
func (a *Account) Link(g library.Graph) Link {
	l := a.links[g]
	l.Delegators = append([]library.Account(nil), l.Delegators...)
	return l
}

func (a *Account) Delegate(g library.Graph) library.Account {
	return a.links[g].Delegate
}

func (a *Account) HasDelegate(g library.Graph) bool {
	return len(a.links[g].Delegate) > 0
}

func (a *Account) IsBroken(g library.Graph) bool {
	return a.links[g].Broken
}

// Delegators is the reverse edge set in g. The returned slice must not be modified.
func (a *Account) Delegators(g library.Graph) []library.Account {
	return a.links[g].Delegators
}

// Intent is the raw delegation target recorded at ingestion.
func (a *Account) Intent(g library.Graph) library.Account {
	return a.links[g].Intent
}

// Intent is a pending delegator -> target pair discovered at ingestion.
type Intent struct {
	Delegator library.Account
	Target    library.Account
}
