package event

import (
	"sync"
	"testing"

	"github.com/nskoria/meme-arena/parameter"
)

func TestQueueBasic(t *testing.T) {
	q := NewQueue()

	q.Push(Event{Type: TypeActionAccepted, Payload: "a"})
	q.Push(Event{Type: TypeActionResolved, Payload: "b"})
	q.Push(Event{Type: TypeEntityDied, Payload: "c"})

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Type != TypeActionAccepted || events[0].Payload != "a" {
		t.Errorf("event 0 mismatch: %+v", events[0])
	}
	if events[1].Type != TypeActionResolved || events[1].Payload != "b" {
		t.Errorf("event 1 mismatch: %+v", events[1])
	}
	if events[2].Type != TypeEntityDied || events[2].Payload != "c" {
		t.Errorf("event 2 mismatch: %+v", events[2])
	}

	if again := q.Consume(); len(again) != 0 {
		t.Errorf("expected empty second consume, got %d", len(again))
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	producers := 10
	perProducer := 50

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Push(Event{Type: TypeActionResolved, Payload: id*1000 + j})
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, ev := range q.Consume() {
		v := ev.Payload.(int)
		if seen[v] {
			t.Fatalf("duplicate event payload %d", v)
		}
		seen[v] = true
	}
	if len(seen) != producers*perProducer {
		t.Errorf("got %d unique events, want %d", len(seen), producers*perProducer)
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	total := parameter.EventQueueSize + 100
	for i := 0; i < total; i++ {
		q.Push(Event{Type: TypeActionResolved, Payload: i})
	}

	events := q.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("got %d events, want full ring %d", len(events), parameter.EventQueueSize)
	}
	// survivors are the newest ring-size payloads in order
	if events[0].Payload != 100 {
		t.Errorf("oldest surviving payload = %v, want 100", events[0].Payload)
	}
	if events[len(events)-1].Payload != total-1 {
		t.Errorf("newest payload = %v, want %d", events[len(events)-1].Payload, total-1)
	}
}

func TestQueueLen(t *testing.T) {
	q := NewQueue()
	if q.Len() != 0 {
		t.Fatal("fresh queue must be empty")
	}
	q.Push(Event{Type: TypeActionAccepted})
	q.Push(Event{Type: TypeActionAccepted})
	if q.Len() != 2 {
		t.Errorf("len = %d, want 2", q.Len())
	}
	q.Consume()
	if q.Len() != 0 {
		t.Errorf("len after consume = %d, want 0", q.Len())
	}
}
