package timer

import "time"

// Group scopes callbacks to an owner's lifetime. StopAll cancels everything
// still pending, so nothing fires into an owner that has been torn down.
type Group struct {
	parent  Scheduler
	pending map[*groupHandle]struct{}
	closed  bool
}

// NewGroup creates a group scheduling through parent.
func NewGroup(parent Scheduler) *Group {
	return &Group{
		parent:  parent,
		pending: make(map[*groupHandle]struct{}),
	}
}

// After schedules fn through the parent and tracks it.
// A closed group accepts nothing and returns an already-stopped handle.
func (g *Group) After(d time.Duration, fn func()) Handle {
	h := &groupHandle{group: g}
	if g.closed {
		h.done = true
		return h
	}
	g.pending[h] = struct{}{}
	h.inner = g.parent.After(d, func() {
		if h.done {
			return
		}
		h.done = true
		delete(g.pending, h)
		fn()
	})
	return h
}

// Pending returns the number of callbacks still waiting in this group.
func (g *Group) Pending() int {
	return len(g.pending)
}

// StopAll cancels every pending callback. The group stays usable.
func (g *Group) StopAll() int {
	n := 0
	for h := range g.pending {
		if h.Stop() {
			n++
		}
	}
	return n
}

// Close cancels pending callbacks and rejects new ones.
func (g *Group) Close() {
	g.StopAll()
	g.closed = true
}

type groupHandle struct {
	group *Group
	inner Handle
	done  bool
}

func (h *groupHandle) Stop() bool {
	if h.done {
		return false
	}
	h.done = true
	delete(h.group.pending, h)
	if h.inner != nil {
		h.inner.Stop()
	}
	return true
}
