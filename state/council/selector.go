package council

import (
	"sort"

	"calcvoices/state/accounts"
	"calcvoices/state/power"
)

// Select partitions the registry along the council graph and ranks the candidates: token
// power descending, account id ascending. At most size candidates are kept.
func Select(registry *accounts.Registry, ag *power.Aggregator, size int) Partition {
	var p Partition
	var candidates []Candidate
	for _, a := range registry.All() {
		if a.IsBroken(councilGraph) {
			p.Broken = append(p.Broken, a)
			continue
		}
		if a.HasDelegate(councilGraph) {
			continue
		}
		p.Roots = append(p.Roots, a)
		if tp := ag.TokenPower(a.ID); tp > 0 {
			candidates = append(candidates, Candidate{Account: a.ID, TokenPower: tp})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].TokenPower != candidates[j].TokenPower {
			return candidates[i].TokenPower > candidates[j].TokenPower
		}
		return candidates[i].Account < candidates[j].Account
	})
	if len(candidates) > size {
		candidates = candidates[:size]
	}
	p.Candidates = candidates
	return p
}

// Weigh attaches a signer weight to every candidate, keeping the ranking.
func Weigh(candidates []Candidate) []Member {
	members := make([]Member, 0, len(candidates))
	for _, c := range candidates {
		members = append(members, Member{Candidate: c, Weight: Weight(c.TokenPower)})
	}
	return members
}
