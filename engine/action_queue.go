package engine

import (
	"sync/atomic"

	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/parameter"
)

// actionQueue is a bounded lock-free MPSC ring for pending actions
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Drain: single consumer (the match loop)
//   - Published flags prevent reading partial writes
//
// Unlike the event ring, a full queue rejects instead of overwriting:
// dropping a submitted action silently would break FIFO determinism.
type actionQueue struct {
	actions   [parameter.ActionQueueSize]combat.Action
	published [parameter.ActionQueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64

	// capacity is the configured depth cap, at most the ring size
	capacity uint64
}

func newActionQueue(capacity int) *actionQueue {
	if capacity <= 0 || capacity > parameter.ActionQueueSize {
		capacity = parameter.ActionQueueSize
	}
	return &actionQueue{capacity: uint64(capacity)}
}

// Push enqueues an action, false when the queue is at capacity
func (q *actionQueue) Push(a combat.Action) bool {
	for {
		currentTail := q.tail.Load()
		if currentTail-q.head.Load() >= q.capacity {
			return false
		}
		if q.tail.CompareAndSwap(currentTail, currentTail+1) {
			idx := currentTail & parameter.ActionQueueMask
			q.actions[idx] = a
			q.published[idx].Store(true) // must follow the slot write
			return true
		}
	}
}

// Drain returns all pending actions in FIFO order and advances head.
// Single-consumer design; unpublished slots are spun on briefly because a
// producer that won the tail CAS is mid-write.
func (q *actionQueue) Drain() []combat.Action {
	currentHead := q.head.Load()
	currentTail := q.tail.Load()
	if currentTail == currentHead {
		return nil
	}

	out := make([]combat.Action, 0, currentTail-currentHead)
	for i := currentHead; i < currentTail; i++ {
		idx := i & parameter.ActionQueueMask
		for !q.published[idx].Load() {
			// producer is between CAS and slot write
		}
		out = append(out, q.actions[idx])
		q.published[idx].Store(false)
	}
	q.head.Store(currentTail)
	return out
}

// Len is the pending depth, approximate under concurrent pushes
func (q *actionQueue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}
