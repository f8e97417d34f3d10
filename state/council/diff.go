package council

import (
	"errors"

	"calcvoices/engine/library"
	"golang.org/x/exp/slices"
)

// ErrEmptyCommittee is returned instead of a plan that would leave the main account with
// neither a master key nor signers.
var ErrEmptyCommittee = errors.New("no council candidates, refusing to remove every signer")

// Diff compares the selected council with the observed configuration. Observed signers that
// left the council are removed (observed order), new or reweighted members follow in ranking
// order, unchanged members are omitted. The threshold is a strict majority of the full
// council's weight.
func Diff(members []Member, observed Observed) (Plan, error) {
	if len(members) == 0 {
		return Plan{}, ErrEmptyCommittee
	}
	var plan Plan
	selected := make([]library.Account, 0, len(members))
	for _, m := range members {
		selected = append(selected, m.Account)
		plan.VoicesSum += m.Weight
	}
	plan.Threshold = plan.VoicesSum/2 + 1

	for _, s := range observed.Signers {
		if s.Key == observed.Account {
			continue
		}
		if !slices.Contains(selected, s.Key) {
			plan.Changes = append(plan.Changes, SignerWeightChange{Account: s.Key, Weight: 0, Previous: s.Weight})
		}
	}
	current := observed.Weights()
	for _, m := range members {
		previous, ok := current[m.Account]
		if !ok || previous != m.Weight {
			plan.Changes = append(plan.Changes, SignerWeightChange{Account: m.Account, Weight: m.Weight, Previous: previous})
		}
	}

	target := ThresholdUpdate{MasterWeight: 0, Low: plan.Threshold, Medium: plan.Threshold, High: plan.Threshold}
	now := ThresholdUpdate{
		MasterWeight: observed.MasterWeight,
		Low:          observed.Thresholds.Low,
		Medium:       observed.Thresholds.Medium,
		High:         observed.Thresholds.High,
	}
	if len(plan.Changes) > 0 || now != target {
		plan.Thresholds = &target
	}
	return plan, nil
}
