package council

import (
	"fmt"
	"testing"

	"calcvoices/state/accounts"
	"calcvoices/state/delegation"
	"calcvoices/state/power"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectFrom(t *testing.T, records ...accounts.Record) Partition {
	t.Helper()
	r := accounts.NewRegistry(nil)
	for _, rec := range records {
		r.Ingest(rec)
	}
	_, err := delegation.NewResolver(r, nil, nil).ResolveAll()
	require.NoError(t, err)
	return Select(r, power.NewAggregator(r), Size)
}

func TestSelectTopTwentyOfTwentyFive(t *testing.T) {
	var records []accounts.Record
	for i := 1; i <= 25; i++ {
		records = append(records, accounts.Record{ID: fmt.Sprintf("G%02d", i), Balance: int64(i * 10)})
	}
	p := selectFrom(t, records...)

	require.Len(t, p.Candidates, Size)
	assert.Equal(t, "G25", p.Candidates[0].Account)
	assert.Equal(t, "G06", p.Candidates[Size-1].Account)
	for i := 1; i < len(p.Candidates); i++ {
		assert.Greater(t, p.Candidates[i-1].TokenPower, p.Candidates[i].TokenPower)
	}
	assert.Len(t, p.Roots, 25)
}

func TestSelectTieBreaksOnID(t *testing.T) {
	p := selectFrom(t,
		accounts.Record{ID: "GB", Balance: 5},
		accounts.Record{ID: "GA", Balance: 5},
		accounts.Record{ID: "GC", Balance: 6},
	)
	var ids []string
	for _, c := range p.Candidates {
		ids = append(ids, c.Account)
	}
	assert.Equal(t, []string{"GC", "GA", "GB"}, ids)
}

func TestSelectPartitions(t *testing.T) {
	p := selectFrom(t,
		accounts.Record{ID: "ROOT", Balance: 1},
		accounts.Record{ID: "ZERO", Balance: 0},
		accounts.Record{ID: "DELEGATOR", Balance: 10, CouncilDelegate: "ROOT"},
		accounts.Record{ID: "SELF", Balance: 50, CouncilDelegate: "SELF"},
	)
	require.Len(t, p.Broken, 1)
	assert.Equal(t, "SELF", p.Broken[0].ID)

	var roots []string
	for _, a := range p.Roots {
		roots = append(roots, a.ID)
	}
	assert.Equal(t, []string{"ROOT", "ZERO"}, roots)
	assert.Equal(t, []Candidate{{Account: "ROOT", TokenPower: 11}}, p.Candidates)
}

func TestWeigh(t *testing.T) {
	members := Weigh([]Candidate{{Account: "A", TokenPower: 150}, {Account: "B", TokenPower: 1}})
	assert.Equal(t, []Member{
		{Candidate: Candidate{Account: "A", TokenPower: 150}, Weight: 3},
		{Candidate: Candidate{Account: "B", TokenPower: 1}, Weight: 1},
	}, members)
}

func member(id string, weight uint32) Member {
	return Member{Candidate: Candidate{Account: id}, Weight: weight}
}

func TestDiffAddsRemovesAndSkipsUnchanged(t *testing.T) {
	observed := Observed{
		Account: "MAIN",
		Signers: []Signer{{Key: "X", Weight: 2}, {Key: "Y", Weight: 3}},
	}
	plan, err := Diff([]Member{member("Y", 3), member("Z", 5)}, observed)
	require.NoError(t, err)

	assert.Equal(t, []SignerWeightChange{
		{Account: "X", Weight: 0, Previous: 2},
		{Account: "Z", Weight: 5, Previous: 0},
	}, plan.Changes)
	assert.Equal(t, uint32(8), plan.VoicesSum)
	assert.Equal(t, uint32(5), plan.Threshold)
	require.NotNil(t, plan.Thresholds)
	assert.Equal(t, ThresholdUpdate{MasterWeight: 0, Low: 5, Medium: 5, High: 5}, *plan.Thresholds)
	assert.False(t, plan.Empty())
}

func TestDiffUpdatesWeight(t *testing.T) {
	plan, err := Diff([]Member{member("Y", 4)}, Observed{Signers: []Signer{{Key: "Y", Weight: 3}}})
	require.NoError(t, err)
	assert.Equal(t, []SignerWeightChange{{Account: "Y", Weight: 4, Previous: 3}}, plan.Changes)
	assert.Equal(t, uint32(3), plan.Threshold)
}

func TestDiffNothingToChange(t *testing.T) {
	observed := Observed{
		Account:    "MAIN",
		Signers:    []Signer{{Key: "A", Weight: 2}, {Key: "B", Weight: 1}},
		Thresholds: Thresholds{Low: 2, Medium: 2, High: 2},
	}
	plan, err := Diff([]Member{member("A", 2), member("B", 1)}, observed)
	require.NoError(t, err)
	assert.Empty(t, plan.Changes)
	assert.Nil(t, plan.Thresholds)
	assert.True(t, plan.Empty())
}

func TestDiffThresholdDriftAloneProducesStep(t *testing.T) {
	observed := Observed{
		MasterWeight: 1,
		Signers:      []Signer{{Key: "A", Weight: 2}},
		Thresholds:   Thresholds{Low: 2, Medium: 2, High: 2},
	}
	plan, err := Diff([]Member{member("A", 2)}, observed)
	require.NoError(t, err)
	assert.Empty(t, plan.Changes)
	require.NotNil(t, plan.Thresholds)
	assert.Equal(t, uint32(0), plan.Thresholds.MasterWeight)
}

func TestDiffRefusesEmptyCommittee(t *testing.T) {
	_, err := Diff(nil, Observed{Signers: []Signer{{Key: "A", Weight: 1}}})
	assert.ErrorIs(t, err, ErrEmptyCommittee)
}
