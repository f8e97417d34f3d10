package power

import (
	"calcvoices/engine/library"
	"calcvoices/state/accounts"
)

// Totals is the aggregate of one account over the non-broken part of its delegation tree.
type Totals struct {
	Own       int64 // the account's own balance
	Delegated int64 // council: token amount delegated in; assembly: voices delegated in
}

// Aggregator computes token power (council) and voice power (assembly) over the resolved
// reverse-delegation trees. Results are memoized per account and graph.
type Aggregator struct {
	registry *accounts.Registry
	memo     [2]map[library.Account]int64
}

func NewAggregator(registry *accounts.Registry) *Aggregator {
	return &Aggregator{
		registry: registry,
		memo:     [2]map[library.Account]int64{make(map[library.Account]int64), make(map[library.Account]int64)},
	}
}

// own is what an account contributes by itself in g: its balance in the council graph, one
// voice in the assembly graph if it holds anything.
func own(g library.Graph, a *accounts.Account) int64 {
	if g == library.Council {
		return a.Balance
	}
	if a.Balance > 0 {
		return 1
	}
	return 0
}

// children are the delegators of a in g whose edge was not excised.
func (ag *Aggregator) children(g library.Graph, a *accounts.Account) []*accounts.Account {
	var out []*accounts.Account
	for _, id := range a.Delegators(g) {
		child, ok := ag.registry.Get(id)
		if !ok || child.IsBroken(g) {
			continue
		}
		out = append(out, child)
	}
	return out
}

type frame struct {
	account  *accounts.Account
	children []*accounts.Account
	next     int
}

// total returns own + everything delegated to id in g, walking the tree post-order with an
// explicit stack so depth is bounded only by memory.
func (ag *Aggregator) total(g library.Graph, id library.Account) int64 {
	memo := ag.memo[g]
	if v, ok := memo[id]; ok {
		return v
	}
	root, ok := ag.registry.Get(id)
	if !ok {
		return 0
	}
	onStack := map[library.Account]struct{}{root.ID: {}}
	stack := []*frame{{account: root, children: ag.children(g, root)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.children) {
			child := top.children[top.next]
			top.next++
			if _, done := memo[child.ID]; done {
				continue
			}
			if _, looping := onStack[child.ID]; looping {
				continue
			}
			onStack[child.ID] = struct{}{}
			stack = append(stack, &frame{account: child, children: ag.children(g, child)})
			continue
		}
		sum := own(g, top.account)
		for _, child := range top.children {
			sum += memo[child.ID]
		}
		memo[top.account.ID] = sum
		delete(onStack, top.account.ID)
		stack = stack[:len(stack)-1]
	}
	return memo[id]
}

// TokenPower is own balance plus all token power delegated in through the council graph.
func (ag *Aggregator) TokenPower(id library.Account) int64 {
	return ag.total(library.Council, id)
}

// DelegatedTokenAmount is TokenPower without the account's own balance.
func (ag *Aggregator) DelegatedTokenAmount(id library.Account) int64 {
	return ag.Council(id).Delegated
}

// VoicePower is the account's own voice plus all voices delegated in through the assembly graph.
func (ag *Aggregator) VoicePower(id library.Account) int64 {
	return ag.total(library.Assembly, id)
}

// DelegatedVoices is VoicePower without the account's own voice.
func (ag *Aggregator) DelegatedVoices(id library.Account) int64 {
	return ag.Assembly(id).Delegated
}

func (ag *Aggregator) Council(id library.Account) Totals {
	return ag.totals(library.Council, id)
}

func (ag *Aggregator) Assembly(id library.Account) Totals {
	return ag.totals(library.Assembly, id)
}

func (ag *Aggregator) totals(g library.Graph, id library.Account) Totals {
	a, ok := ag.registry.Get(id)
	if !ok {
		return Totals{}
	}
	t := ag.total(g, id)
	return Totals{Own: a.Balance, Delegated: t - own(g, a)}
}
