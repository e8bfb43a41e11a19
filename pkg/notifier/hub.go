package notifier

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/internal/logging"
)

// EventType is the closed set of event kinds a Notifier can bind to.
type EventType string

const (
	EventChanged  EventType = "changed"
	EventValidate EventType = "validate"
	EventClicked  EventType = "clicked"
	EventFocused  EventType = "focused"
	EventBlurred  EventType = "blurred"
	EventSelected EventType = "selected"
	EventEnabled  EventType = "enabled"
	EventBusy     EventType = "busy"
	EventLoaded   EventType = "loaded"
)

// Method receives the payload passed to Notify.
type Method func(payload any)

// Notifier is a named callback bound to one event type.
type Notifier struct {
	ID     string
	Type   EventType
	Method Method
}

// Hub owns the notifiers of one entity plus its mutation Subject. The zero
// value is ready to use; entities embed it by value.
type Hub struct {
	order     []string
	notifiers map[string]Notifier
	subject   Subject
	logger    logging.Logger
	maxDepth  int
	depth     int
	dropped   int
}

// NewHub builds a Hub reporting through l.
func NewHub(l logging.Logger) Hub {
	h := Hub{}
	h.SetLogger(l)
	return h
}

// SetLogger routes warnings of the hub and its subject to l.
func (h *Hub) SetLogger(l logging.Logger) {
	h.logger = l
	h.subject.SetLogger(l)
}

// SetMaxDepth bounds nested Notify and Trigger calls.
func (h *Hub) SetMaxDepth(depth int) {
	h.maxDepth = depth
	h.subject.SetMaxDepth(depth)
}

// Accept registers n keyed by its id and returns the id. A notifier whose id
// is already registered is ignored. An empty id is replaced by a UUID.
func (h *Hub) Accept(n Notifier) string {
	if n.Method == nil {
		h.log().Warning("notifier: ignoring notifier ", n.ID, " without method")
		return ""
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if h.notifiers == nil {
		h.notifiers = make(map[string]Notifier)
	}
	if _, exists := h.notifiers[n.ID]; exists {
		return n.ID
	}
	h.notifiers[n.ID] = n
	h.order = append(h.order, n.ID)
	return n.ID
}

// Remove drops the notifier registered under id.
func (h *Hub) Remove(id string) bool {
	if _, ok := h.notifiers[id]; !ok {
		return false
	}
	delete(h.notifiers, id)
	for i, existing := range h.order {
		if existing == id {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether a notifier with id is registered.
func (h *Hub) Has(id string) bool {
	_, ok := h.notifiers[id]
	return ok
}

// Notifiers returns the number of registered notifiers.
func (h *Hub) Notifiers() int {
	return len(h.order)
}

// Notify invokes, in registration order, every notifier bound to eventType
// and then triggers the subject, whether or not a notifier matched.
func (h *Hub) Notify(eventType EventType, payload any) {
	if h.depth >= h.limit() {
		h.dropped++
		h.log().Warning(ErrRecursionLimit.Error(), ": ", string(eventType), " dropped at depth ", h.depth)
		return
	}
	h.depth++
	defer func() { h.depth-- }()

	ids := append([]string(nil), h.order...)
	for _, id := range ids {
		n, ok := h.notifiers[id]
		if !ok || n.Type != eventType {
			continue
		}
		h.invoke(n, payload)
	}
	h.subject.Trigger()
}

// Dropped reports how many notifications and triggers the depth guard
// discarded.
func (h *Hub) Dropped() int {
	return h.dropped + h.subject.Dropped()
}

// Subscribe registers a mutation observer; see Subject.Subscribe.
func (h *Hub) Subscribe(key any, fn Observer) Subscription {
	return h.subject.Subscribe(key, fn)
}

// Unsubscribe removes the mutation observer registered under key.
func (h *Hub) Unsubscribe(key any) bool {
	return h.subject.Unsubscribe(key)
}

// UnsubscribeAll removes every mutation observer.
func (h *Hub) UnsubscribeAll() {
	h.subject.UnsubscribeAll()
}

// Trigger broadcasts to mutation observers without notifying.
func (h *Hub) Trigger() {
	h.subject.Trigger()
}

// Observers returns the number of mutation observers.
func (h *Hub) Observers() int {
	return h.subject.Len()
}

// Dispose clears the mutation observers. Notifiers stay registered for the
// lifetime of the entity.
func (h *Hub) Dispose() {
	h.subject.UnsubscribeAll()
}

func (h *Hub) invoke(n Notifier, payload any) {
	defer func() {
		if r := recover(); r != nil {
			h.log().Warning("notifier: ", n.ID, " (", string(n.Type), ") panicked: ", r)
		}
	}()
	n.Method(payload)
}

func (h *Hub) limit() int {
	if h.maxDepth < 1 {
		return DefaultMaxDepth
	}
	return h.maxDepth
}

func (h *Hub) log() logging.Logger {
	return logging.OrDefault(h.logger)
}
