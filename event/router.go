package event

// Handler receives routed events. Register it for the types it declares.
type Handler interface {
	// HandleEvent is called synchronously during dispatch, inside the match
	// loop's tick. Handlers must not block.
	HandleEvent(ev Event)

	// EventTypes returns the event types this handler wants
	EventTypes() []Type
}

// Router dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch inside the tick, no concurrent handler calls
//   - Multiple handlers can register for the same type
//   - Handlers are invoked in registration order
type Router struct {
	handlers map[Type][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[Type][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes pending events and routes them in FIFO order.
// All handlers for an event are called before the next event.
func (r *Router) DispatchAll() {
	for _, ev := range r.queue.Consume() {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t Type) int {
	return len(r.handlers[t])
}
