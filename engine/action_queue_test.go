package engine

import (
	"sync"
	"testing"

	"github.com/nskoria/meme-arena/combat"
	"github.com/nskoria/meme-arena/parameter"
)

func TestActionQueueFIFO(t *testing.T) {
	q := newActionQueue(8)

	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		if !q.Push(combat.Action{ID: id, Type: combat.ActionDefend}) {
			t.Fatalf("push %s rejected below capacity", id)
		}
	}
	if q.Len() != 3 {
		t.Errorf("Len = %d, want 3", q.Len())
	}

	drained := q.Drain()
	if len(drained) != 3 {
		t.Fatalf("drained %d actions, want 3", len(drained))
	}
	for i, a := range drained {
		if a.ID != ids[i] {
			t.Errorf("drained[%d].ID = %s, want %s", i, a.ID, ids[i])
		}
	}
	if again := q.Drain(); len(again) != 0 {
		t.Errorf("second drain returned %d actions, want 0", len(again))
	}
}

func TestActionQueueCapacity(t *testing.T) {
	q := newActionQueue(2)

	if !q.Push(combat.Action{ID: "a"}) || !q.Push(combat.Action{ID: "b"}) {
		t.Fatal("pushes below capacity rejected")
	}
	if q.Push(combat.Action{ID: "c"}) {
		t.Error("push at capacity must return false")
	}

	q.Drain()
	if !q.Push(combat.Action{ID: "d"}) {
		t.Error("drained queue must accept again")
	}
}

func TestActionQueueCapacityClamped(t *testing.T) {
	q := newActionQueue(parameter.ActionQueueSize * 2)
	if q.capacity != parameter.ActionQueueSize {
		t.Errorf("capacity = %d, want clamped to ring size %d", q.capacity, parameter.ActionQueueSize)
	}
	q = newActionQueue(0)
	if q.capacity != parameter.ActionQueueSize {
		t.Errorf("zero capacity = %d, want ring size default", q.capacity)
	}
}

func TestActionQueueConcurrentProducers(t *testing.T) {
	q := newActionQueue(parameter.ActionQueueSize)
	producers := 8
	perProducer := 16

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				if !q.Push(combat.Action{ID: "x", Type: combat.ActionDefend}) {
					t.Error("push rejected with ring far from full")
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != producers*perProducer {
		t.Errorf("drained %d actions, want %d", got, producers*perProducer)
	}
}
