package event

import (
	"runtime/debug"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/AthenaLink/dockronos/internal/logging"
)

// DefaultReplayLimit is the number of events buffered per type for replay.
const DefaultReplayLimit = 100

// Handler is a function that handles an event.
type Handler func(Event)

// subscription represents a registered event handler.
type subscription struct {
	id        string
	eventType string
	handler   Handler
}

// Hub is a priority-aware publish/subscribe hub.
//
// Normal-priority events are queued and delivered by a single dispatch
// goroutine in priority-then-arrival order. Urgent events (priority above
// PriorityUrgentThreshold) are delivered immediately from Emit, ahead of
// anything still queued. A panicking subscriber never blocks or drops
// delivery to the others.
type Hub struct {
	mu     sync.Mutex
	cond   *sync.Cond
	closed bool

	subscriptions map[string][]subscription
	replay        map[string][]Event
	replayLimit   int
	queue         []Event
	seq           uint64

	nextID atomic.Uint64
	wg     conc.WaitGroup
	logger *logging.Logger
}

// Option configures a Hub.
type Option func(*Hub)

// WithReplayLimit overrides the per-type replay buffer size.
func WithReplayLimit(limit int) Option {
	return func(h *Hub) {
		if limit > 0 {
			h.replayLimit = limit
		}
	}
}

// WithLogger sets the logger used to report subscriber panics.
func WithLogger(logger *logging.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHub creates a Hub and starts its dispatch goroutine.
// Callers must Close the hub to stop delivery and release the goroutine.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subscriptions: make(map[string][]subscription),
		replay:        make(map[string][]Event),
		replayLimit:   DefaultReplayLimit,
		logger:        logging.NopLogger(),
	}
	h.cond = sync.NewCond(&h.mu)
	for _, opt := range opts {
		opt(h)
	}

	h.wg.Go(h.dispatchLoop)
	return h
}

// Emit wraps payload in an Event, records it in the replay buffer, and
// schedules delivery. Urgent events are delivered before Emit returns;
// everything else is queued for the dispatch goroutine.
func (h *Hub) Emit(eventType string, payload any, priority int) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}

	h.seq++
	ev := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
		Priority:  priority,
		seq:       h.seq,
	}
	h.bufferLocked(ev)

	if ev.Urgent() {
		subs := h.snapshotLocked(ev.Type)
		h.mu.Unlock()
		h.deliver(subs, ev)
		return
	}

	h.enqueueLocked(ev)
	h.cond.Signal()
	h.mu.Unlock()
}

// Subscribe registers a handler for a specific event type.
// Returns a subscription ID that can be used to unsubscribe.
func (h *Hub) Subscribe(eventType string, handler Handler) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := "sub-" + strconv.FormatUint(h.nextID.Add(1), 10)
	h.subscriptions[eventType] = append(h.subscriptions[eventType], subscription{
		id:        id,
		eventType: eventType,
		handler:   handler,
	})
	return id
}

// SubscribeAll registers a handler for all event types.
func (h *Hub) SubscribeAll(handler Handler) string {
	return h.Subscribe("*", handler)
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed.
func (h *Hub) Unsubscribe(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for eventType, subs := range h.subscriptions {
		for i, sub := range subs {
			if sub.id == id {
				h.subscriptions[eventType] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Replay delivers buffered events of the given type to the handler, oldest
// first. If since is non-zero, only events emitted after it are delivered.
// Returns the number of events delivered.
func (h *Hub) Replay(eventType string, handler Handler, since time.Time) int {
	h.mu.Lock()
	buffered := make([]Event, len(h.replay[eventType]))
	copy(buffered, h.replay[eventType])
	h.mu.Unlock()

	delivered := 0
	for _, ev := range buffered {
		if !since.IsZero() && !ev.Timestamp.After(since) {
			continue
		}
		h.safeCall(handler, ev)
		delivered++
	}
	return delivered
}

// SubscriptionCount returns the total number of active subscriptions.
func (h *Hub) SubscriptionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, subs := range h.subscriptions {
		count += len(subs)
	}
	return count
}

// Close drains the queue, stops the dispatch goroutine, and waits for it to
// exit. Emit calls after Close are dropped. Close is idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.cond.Broadcast()
	h.mu.Unlock()

	h.wg.Wait()
}

// dispatchLoop delivers queued events in priority-then-arrival order until
// the hub is closed and the queue is drained.
func (h *Hub) dispatchLoop() {
	h.mu.Lock()
	for {
		for len(h.queue) == 0 && !h.closed {
			h.cond.Wait()
		}
		if len(h.queue) == 0 && h.closed {
			h.mu.Unlock()
			return
		}

		ev := h.queue[0]
		h.queue = h.queue[1:]
		subs := h.snapshotLocked(ev.Type)
		h.mu.Unlock()

		h.deliver(subs, ev)

		h.mu.Lock()
	}
}

// enqueueLocked inserts the event keeping the queue sorted by priority
// (highest first), then by arrival order. Callers must hold h.mu.
func (h *Hub) enqueueLocked(ev Event) {
	i := sort.Search(len(h.queue), func(i int) bool {
		if h.queue[i].Priority != ev.Priority {
			return h.queue[i].Priority < ev.Priority
		}
		return h.queue[i].seq > ev.seq
	})
	h.queue = append(h.queue, Event{})
	copy(h.queue[i+1:], h.queue[i:])
	h.queue[i] = ev
}

// bufferLocked appends the event to its type's replay buffer, evicting the
// oldest entry once the buffer is full. Callers must hold h.mu.
func (h *Hub) bufferLocked(ev Event) {
	buf := append(h.replay[ev.Type], ev)
	if len(buf) > h.replayLimit {
		buf = buf[len(buf)-h.replayLimit:]
	}
	h.replay[ev.Type] = buf
}

// snapshotLocked copies the handlers registered for the event type plus the
// wildcard handlers. Callers must hold h.mu.
func (h *Hub) snapshotLocked(eventType string) []subscription {
	specific := h.subscriptions[eventType]
	wildcard := h.subscriptions["*"]

	subs := make([]subscription, 0, len(specific)+len(wildcard))
	subs = append(subs, specific...)
	subs = append(subs, wildcard...)
	return subs
}

// deliver dispatches the event to each subscriber in order, isolating
// failures so one subscriber cannot block or drop delivery to the others.
func (h *Hub) deliver(subs []subscription, ev Event) {
	for _, sub := range subs {
		h.safeCall(sub.handler, ev)
	}
}

// safeCall invokes a handler and recovers from any panic, logging the stack
// trace to aid debugging.
func (h *Hub) safeCall(handler Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("event handler panicked",
				"event_type", ev.Type,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	handler(ev)
}
