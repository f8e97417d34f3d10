package council

import (
	"calcvoices/engine/library"
	"calcvoices/state/accounts"
)

// Size is the number of council seats.
const Size = 20

const councilGraph = library.Council

// Candidate is a non-delegating account eligible for a council seat.
type Candidate struct {
	Account    library.Account
	TokenPower int64
}

// Member is a selected candidate with its signer weight.
type Member struct {
	Candidate
	Weight uint32
}

// Partition splits the registry along the council graph.
type Partition struct {
	Broken     []*accounts.Account // flagged broken, never candidates
	Roots      []*accounts.Account // no resolved council delegate, not broken
	Candidates []Candidate         // roots with token power, ranked
}

// Signer is an observed signer of the main account.
type Signer struct {
	Key    library.Account `yaml:"key"`
	Weight uint32          `yaml:"weight"`
}

// Thresholds are the main account's operation thresholds.
type Thresholds struct {
	Low    uint32 `yaml:"low"`
	Medium uint32 `yaml:"medium"`
	High   uint32 `yaml:"high"`
}

// Observed is the current on-chain multisig configuration of the main account.
type Observed struct {
	Account      library.Account `yaml:"account"`
	Sequence     int64           `yaml:"sequence"`
	MasterWeight uint32          `yaml:"master_weight"`
	Thresholds   Thresholds      `yaml:"thresholds"`
	Signers      []Signer        `yaml:"signers"` // master key excluded
}

// Weights maps signer key to weight.
func (o Observed) Weights() map[library.Account]uint32 {
	m := make(map[library.Account]uint32, len(o.Signers))
	for _, s := range o.Signers {
		m[s.Key] = s.Weight
	}
	return m
}

// SignerWeightChange sets one signer's weight. Weight 0 removes the signer.
type SignerWeightChange struct {
	Account  library.Account
	Weight   uint32
	Previous uint32
}

// ThresholdUpdate is the account level step of a plan: master key weight and the three
// operation thresholds.
type ThresholdUpdate struct {
	MasterWeight uint32
	Low          uint32
	Medium       uint32
	High         uint32
}

// Plan is the minimal set of changes that turns the observed configuration into the
// selected council.
type Plan struct {
	Changes    []SignerWeightChange
	Thresholds *ThresholdUpdate // nil when master weight and thresholds already match
	VoicesSum  uint32
	Threshold  uint32
}

// Empty reports whether applying the plan would change nothing.
func (p Plan) Empty() bool {
	return len(p.Changes) == 0 && p.Thresholds == nil
}
