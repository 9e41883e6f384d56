package events

import (
	"fmt"
	"log"
	"reflect"
	"sort"
	"sync"
	"time"

	dayerr "github.com/daybook/daybook/internal/errors"
)

// listener is one registration: the handler plus the ordering metadata
// assigned at subscribe time. seq is a monotonically increasing counter
// used as the tie-break at equal priority and as the removal key for the
// unsubscribe closure.
type listener struct {
	seq      uint64
	handler  Handler
	fnPtr    uintptr
	priority int
	once     bool
}

// Bus is a synchronous in-process publish/subscribe dispatcher. Listeners
// for an event type run in descending priority order, ties broken by
// subscription order. Every publish is recorded in a bounded history log
// whether or not anyone is listening.
//
// A Bus is constructed explicitly and passed to collaborators; there is no
// package-level instance.
type Bus struct {
	mu        sync.RWMutex
	listeners map[EventType][]*listener
	nextSeq   uint64
	history   *historyLog
}

// NewBus creates a new event bus with the default history capacity
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]*listener),
		history:   newHistoryLog(DefaultHistoryCapacity),
	}
}

// SubscribeOption configures a single subscription
type SubscribeOption func(*listener)

// WithPriority sets the listener's priority. Higher priorities run
// earlier within one publish call. The default is PriorityDefault.
func WithPriority(p int) SubscribeOption {
	return func(l *listener) {
		l.priority = p
	}
}

// Once marks the listener for removal after its first invocation
func Once() SubscribeOption {
	return func(l *listener) {
		l.once = true
	}
}

// Subscribe registers a handler for an event type and returns a closure
// that removes exactly this registration. Calling the closure more than
// once is a no-op.
func (b *Bus) Subscribe(eventType EventType, handler Handler, opts ...SubscribeOption) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	l := &listener{
		seq:     b.nextSeq,
		handler: handler,
		fnPtr:   reflect.ValueOf(handler).Pointer(),
	}
	b.nextSeq++
	for _, opt := range opts {
		opt(l)
	}

	b.listeners[eventType] = append(b.listeners[eventType], l)

	// Re-establish the ordering invariant: descending priority, ties by
	// subscription order
	sort.Slice(b.listeners[eventType], func(i, j int) bool {
		li, lj := b.listeners[eventType][i], b.listeners[eventType][j]
		if li.priority != lj.priority {
			return li.priority > lj.priority
		}
		return li.seq < lj.seq
	})

	seq := l.seq
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.removeBySeq(eventType, seq)
	}
}

// SubscribeOnce registers a handler that is removed after its first
// invocation
func (b *Bus) SubscribeOnce(eventType EventType, handler Handler) func() {
	return b.Subscribe(eventType, handler, Once())
}

// Unsubscribe removes the first listener registered with the same handler
// function for the event type. No-op if none matches. Two registrations of
// the same function are indistinguishable here; the earlier one is
// removed. The closure returned by Subscribe removes an exact
// registration and is the preferred path.
func (b *Bus) Unsubscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ptr := reflect.ValueOf(handler).Pointer()
	for _, l := range b.listeners[eventType] {
		if l.fnPtr == ptr {
			b.removeBySeq(eventType, l.seq)
			return
		}
	}
}

// removeBySeq removes one registration, preserving order. When the event
// type's list empties, its map entry is dropped so ActiveEventTypes stays
// accurate. Callers hold b.mu.
func (b *Bus) removeBySeq(eventType EventType, seq uint64) {
	ls := b.listeners[eventType]
	for i, l := range ls {
		if l.seq == seq {
			b.listeners[eventType] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(b.listeners[eventType]) == 0 {
		delete(b.listeners, eventType)
	}
}

// Publish dispatches an event to every listener currently registered for
// the type. The dispatch iterates an immutable snapshot, so a listener
// subscribing or unsubscribing during its own invocation only affects
// later publishes. Listener failures — returned errors and recovered
// panics — are isolated and re-published on the error channel, except
// when the event being published is the error channel itself, in which
// case the failure is logged and recursion stops after one hop.
func (b *Bus) Publish(eventType EventType, payload any) {
	evt := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}

	b.mu.Lock()
	b.history.append(evt)
	live := b.listeners[eventType]
	snapshot := make([]*listener, len(live))
	copy(snapshot, live)
	b.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	for _, l := range snapshot {
		err := invoke(l.handler, evt)

		// Once-listeners are removed from the live registry after their
		// first invocation whether or not it failed
		if l.once {
			b.mu.Lock()
			b.removeBySeq(eventType, l.seq)
			b.mu.Unlock()
		}

		if err == nil {
			continue
		}
		if eventType == EventTypeError {
			// One hop only: a failing error-channel listener is logged,
			// never re-published
			log.Printf("EventBus: error channel listener failed: %v", err)
			continue
		}
		b.Publish(EventTypeError, &ErrorPayload{
			Err:     err,
			Context: fmt.Sprintf("listener for event %q failed", eventType),
		})
	}
}

// invoke runs one handler, converting a panic into an error so a single
// bad listener cannot take down the dispatch loop
func invoke(h Handler, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("listener panicked: %w", e)
			} else {
				err = fmt.Errorf("listener panicked: %v", r)
			}
		}
	}()
	return h(evt)
}

// Clear removes every listener for every event type
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]*listener)
}

// ClearEventType removes every listener for one event type
func (b *Bus) ClearEventType(eventType EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.listeners, eventType)
}

// ListenerCount returns the number of listeners for an event type
func (b *Bus) ListenerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners[eventType])
}

// HasListeners reports whether any listener is registered for the type
func (b *Bus) HasListeners(eventType EventType) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners[eventType]) > 0
}

// ActiveEventTypes returns every event type with at least one listener,
// sorted for deterministic iteration
func (b *Bus) ActiveEventTypes() []EventType {
	b.mu.RLock()
	defer b.mu.RUnlock()

	types := make([]EventType, 0, len(b.listeners))
	for t := range b.listeners {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// History returns a copy of the full publish history, oldest first
func (b *Bus) History() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.history.all()
}

// HistoryFor returns the retained history entries of one event type
func (b *Bus) HistoryFor(eventType EventType) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.history.filtered(eventType)
}

// SetHistoryCapacity changes the history bound, evicting oldest entries
// if the log currently exceeds it. A negative capacity is rejected and
// leaves the log untouched.
func (b *Bus) SetHistoryCapacity(n int) error {
	if n < 0 {
		return dayerr.InvalidArgumentf("history capacity cannot be negative: %d", n)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.history.setCapacity(n)
	return nil
}

// ClearHistory empties the history log
func (b *Bus) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history.clear()
}
