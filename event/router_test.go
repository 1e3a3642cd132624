package event

import "testing"

type recordingHandler struct {
	types []Type
	seen  []Event
}

func (h *recordingHandler) HandleEvent(ev Event) { h.seen = append(h.seen, ev) }
func (h *recordingHandler) EventTypes() []Type   { return h.types }

func TestRouterDispatch(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	deaths := &recordingHandler{types: []Type{TypeEntityDied}}
	everything := &recordingHandler{types: []Type{TypeEntityDied, TypeActionResolved}}
	r.Register(deaths)
	r.Register(everything)

	q.Push(Event{Type: TypeActionResolved, Payload: 1})
	q.Push(Event{Type: TypeEntityDied, Payload: 2})
	q.Push(Event{Type: TypePerfAlert, Payload: 3}) // nobody registered

	r.DispatchAll()

	if len(deaths.seen) != 1 || deaths.seen[0].Payload != 2 {
		t.Errorf("death handler saw %+v, want only the death event", deaths.seen)
	}
	if len(everything.seen) != 2 {
		t.Fatalf("broad handler saw %d events, want 2", len(everything.seen))
	}
	if everything.seen[0].Payload != 1 || everything.seen[1].Payload != 2 {
		t.Errorf("dispatch order broken: %+v", everything.seen)
	}

	if r.HandlerCount(TypeEntityDied) != 2 {
		t.Errorf("handler count = %d, want 2", r.HandlerCount(TypeEntityDied))
	}
	if r.HandlerCount(TypePerfAlert) != 0 {
		t.Errorf("unregistered type must count 0")
	}
}

func TestRouterEmptyQueue(t *testing.T) {
	r := NewRouter(NewQueue())
	r.DispatchAll() // must not panic with no handlers and no events
}
