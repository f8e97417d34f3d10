package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(q *Queue) []Account {
	var got []Account
	for {
		id, ok := q.Pop()
		if !ok {
			return got
		}
		got = append(got, id)
	}
}

func TestQueueIsFIFO(t *testing.T) {
	q := NewQueue("A", "B", "C")
	q.Push("D")
	require.Equal(t, 4, q.Len())

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "A", first)

	q.Push("E")
	assert.Equal(t, []Account{"B", "C", "D", "E"}, drain(q))
	assert.Equal(t, 0, q.Len())
}

func TestQueueReusableAfterDrain(t *testing.T) {
	q := NewQueue("A")
	assert.Equal(t, []Account{"A"}, drain(q))

	q.Push("B")
	q.Push("C")
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []Account{"B", "C"}, drain(q))
}

func TestQueueEmptyPop(t *testing.T) {
	_, ok := NewQueue().Pop()
	assert.False(t, ok)
}

func TestGraphString(t *testing.T) {
	assert.Equal(t, "assembly", Assembly.String())
	assert.Equal(t, "council", Council.String())
	assert.Equal(t, "unknown", Graph(7).String())
}
