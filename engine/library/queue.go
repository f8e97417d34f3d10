package library

// Queue holds account ids waiting to be walked, first in first out.
type Queue struct {
	ids  []Account
	head int
}

// NewQueue returns a queue already holding ids, in order.
func NewQueue(ids ...Account) *Queue {
	return &Queue{ids: append(make([]Account, 0, len(ids)), ids...)}
}

func (q *Queue) Push(id Account) {
	q.ids = append(q.ids, id)
}

// Pop returns the oldest id. Once the queue drains, the backing array is reused.
func (q *Queue) Pop() (Account, bool) {
	if q.head == len(q.ids) {
		return "", false
	}
	id := q.ids[q.head]
	q.head++
	if q.head == len(q.ids) {
		q.ids, q.head = q.ids[:0], 0
	}
	return id, true
}

func (q *Queue) Len() int {
	return len(q.ids) - q.head
}
