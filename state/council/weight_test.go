package council

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeight(t *testing.T) {
	table := []struct {
		tokenPower int64
		weight     uint32
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{10, 1},
		{11, 2},
		{100, 2},
		{101, 3},
		{1000, 3},
		{1001, 4},
		{10001, 5},
		{9223372036854775807, 19},
	}
	for _, tc := range table {
		assert.Equal(t, tc.weight, Weight(tc.tokenPower), "token power %d", tc.tokenPower)
	}
}

func TestWeightIsNonDecreasing(t *testing.T) {
	previous := Weight(1)
	for tp := int64(2); tp < 200000; tp++ {
		w := Weight(tp)
		assert.GreaterOrEqual(t, w, previous)
		previous = w
	}
}
