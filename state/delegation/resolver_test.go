package delegation

import (
	"errors"
	"testing"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	records map[library.Account]accounts.Record
	calls   []library.Account
}

func (f *fakeLoader) Load(id library.Account) (accounts.Record, error) {
	f.calls = append(f.calls, id)
	if rec, ok := f.records[id]; ok {
		return rec, nil
	}
	return accounts.Record{}, errors.New("not found")
}

func council(id, target string) accounts.Record {
	return accounts.Record{ID: id, Balance: 1, CouncilDelegate: target}
}

func registryOf(records ...accounts.Record) *accounts.Registry {
	r := accounts.NewRegistry(nil)
	for _, rec := range records {
		r.Ingest(rec)
	}
	return r
}

func brokenIDs(r *accounts.Registry, g library.Graph) []string {
	var ids []string
	for _, a := range r.All() {
		if a.IsBroken(g) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestSelfDelegationIsBroken(t *testing.T) {
	r := registryOf(council("A", "A"), council("B", ""))
	s, err := NewResolver(r, nil, nil).Resolve(library.Council)
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, brokenIDs(r, library.Council))
	require.Len(t, s.Broken, 1)
	assert.Equal(t, Broken{Account: "A", Target: "A", Reason: Cycle}, s.Broken[0])
	assert.Empty(t, brokenIDs(r, library.Assembly))
}

func TestThreeCycleBreaksExactlyOnceForAnyOrder(t *testing.T) {
	orders := [][]accounts.Record{
		{council("A", "B"), council("B", "C"), council("C", "A")},
		{council("B", "C"), council("C", "A"), council("A", "B")},
		{council("C", "A"), council("A", "B"), council("B", "C")},
		{council("C", "A"), council("B", "C"), council("A", "B")},
	}
	for _, order := range orders {
		r := registryOf(order...)
		s, err := NewResolver(r, nil, nil).Resolve(library.Council)
		require.NoError(t, err)
		assert.Len(t, brokenIDs(r, library.Council), 1)
		assert.Len(t, s.Broken, 1)
		assert.Equal(t, 3, s.Resolved)
		// the delegator closing the loop is the one whose target is the walk's origin
		assert.Equal(t, order[0].ID, s.Broken[0].Target)
	}
}

func TestLinearChainResolvesEveryHop(t *testing.T) {
	r := registryOf(council("A1", "A2"), council("A2", "A3"), council("A3", "A4"), council("A4", ""))
	s, err := NewResolver(r, nil, nil).Resolve(library.Council)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Resolved)
	assert.Empty(t, s.Broken)
	for _, pair := range [][2]string{{"A1", "A2"}, {"A2", "A3"}, {"A3", "A4"}} {
		a, _ := r.Get(pair[0])
		b, _ := r.Get(pair[1])
		assert.Equal(t, pair[1], a.Delegate(library.Council))
		assert.Equal(t, []string{pair[0]}, b.Delegators(library.Council))
	}
}

func TestMissingTargetIsLoadedAndFollowed(t *testing.T) {
	loader := &fakeLoader{records: map[library.Account]accounts.Record{
		"X": council("X", "Y"),
		"Y": council("Y", ""),
	}}
	r := registryOf(council("A", "X"))
	s, err := NewResolver(r, loader, nil).Resolve(library.Council)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Loaded)
	assert.Equal(t, 2, s.Resolved)
	x, ok := r.Get("X")
	require.True(t, ok)
	assert.Equal(t, "Y", x.Delegate(library.Council))
	assert.Equal(t, []library.Account{"X", "Y"}, loader.calls)
}

func TestUnloadableTargetBreaksOriginOnly(t *testing.T) {
	r := registryOf(council("A", "GONE"), council("B", ""))
	s, err := NewResolver(r, &fakeLoader{}, nil).Resolve(library.Council)
	require.NoError(t, err)

	a, _ := r.Get("A")
	assert.True(t, a.IsBroken(library.Council))
	assert.False(t, a.HasDelegate(library.Council))
	assert.Equal(t, []Broken{{Account: "A", Target: "GONE", Reason: Unloadable}}, s.Broken)
	assert.False(t, r.Exists("GONE"))
}

func TestUnloadableMidChainBreaksOriginAndHop(t *testing.T) {
	loader := &fakeLoader{records: map[library.Account]accounts.Record{"B": council("B", "GONE")}}
	r := registryOf(council("A", "B"), council("C", "A"))
	s, err := NewResolver(r, loader, nil).Resolve(library.Council)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"A", "B"}, brokenIDs(r, library.Council))
	a, _ := r.Get("A")
	assert.Equal(t, "B", a.Delegate(library.Council))

	// C reaches A after A was resolved: C's own edge is fine
	c, _ := r.Get("C")
	assert.False(t, c.IsBroken(library.Council))
	assert.Equal(t, "A", c.Delegate(library.Council))
	assert.Len(t, s.Broken, 2)
	assert.Equal(t, []library.Account{"B", "GONE"}, loader.calls)
}

func TestResolvedDelegatorIsNotWalkedAgain(t *testing.T) {
	loader := &fakeLoader{}
	r := registryOf(council("A", "B"), council("B", "C"), council("C", ""))
	_, err := NewResolver(r, loader, nil).Resolve(library.Council)
	require.NoError(t, err)

	b, _ := r.Get("B")
	assert.Equal(t, []string{"A"}, b.Delegators(library.Council))
	assert.Empty(t, loader.calls)
}

func TestGraphsAreResolvedIndependently(t *testing.T) {
	r := registryOf(
		accounts.Record{ID: "A", Balance: 1, AssemblyDelegate: "A", CouncilDelegate: "B"},
		accounts.Record{ID: "B", Balance: 1, AssemblyDelegate: "A"},
	)
	summaries, err := NewResolver(r, nil, nil).ResolveAll()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, []string{"A"}, brokenIDs(r, library.Assembly))
	assert.Empty(t, brokenIDs(r, library.Council))
	a, _ := r.Get("A")
	assert.Equal(t, "B", a.Delegate(library.Council))
}

func TestUnknownQueuedDelegatorIsFatal(t *testing.T) {
	r := registryOf(council("B", ""))
	_, err := NewResolver(r, nil, nil).ResolveIntents(library.Council, []accounts.Intent{{Delegator: "GHOST", Target: "B"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAccount)
	assert.Contains(t, err.Error(), "GHOST")
}
