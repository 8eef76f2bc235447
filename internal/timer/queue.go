package timer

import (
	"container/heap"
	"time"
)

// Handle is a pending callback that can be cancelled.
type Handle interface {
	// Stop cancels the callback. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs a callback after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Queue is a Scheduler backed by absolute deadlines taken from a Clock.
// Callbacks never fire on their own: the owner calls RunDue once per frame
// and every due callback runs in deadline order on that call.
type Queue struct {
	clock Clock
	items entryHeap
	seq   uint64
}

// NewQueue creates an empty queue reading time from clock.
func NewQueue(clock Clock) *Queue {
	return &Queue{clock: clock}
}

// Clock returns the clock deadlines are measured against.
func (q *Queue) Clock() Clock {
	return q.clock
}

// After schedules fn to run once d has elapsed from now.
func (q *Queue) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	q.seq++
	e := &entry{
		queue:    q,
		deadline: q.clock.Now().Add(d),
		seq:      q.seq,
		fn:       fn,
	}
	heap.Push(&q.items, e)
	return e
}

// RunDue fires every callback whose deadline has passed and returns how many ran.
// Ties on deadline fire in the order they were scheduled. Callbacks may
// schedule further callbacks; those fire in the same call if already due.
func (q *Queue) RunDue() int {
	now := q.clock.Now()
	fired := 0
	for len(q.items) > 0 {
		next := q.items[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&q.items)
		next.done = true
		next.fn()
		fired++
	}
	return fired
}

// Pending returns the number of callbacks waiting to fire.
func (q *Queue) Pending() int {
	return len(q.items)
}

type entry struct {
	queue    *Queue
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
	done     bool
}

// Stop removes the entry from its queue.
func (e *entry) Stop() bool {
	if e.done {
		return false
	}
	e.done = true
	heap.Remove(&e.queue.items, e.index)
	return true
}

// entryHeap orders entries by deadline, then by schedule order.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
