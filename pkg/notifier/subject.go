package notifier

import (
	"errors"
	"reflect"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/internal/logging"
)

// DefaultMaxDepth bounds nested dispatch on a single Hub or Subject.
const DefaultMaxDepth = 16

// ErrRecursionLimit is logged when a nested dispatch exceeds the depth limit.
var ErrRecursionLimit = errors.New("notifier: recursion limit reached")

// Observer is called with no arguments whenever the subject triggers.
type Observer func()

// Subscription identifies one observer registration.
type Subscription struct {
	key     any
	subject *Subject
}

// Key returns the identity the observer was registered under.
func (s Subscription) Key() any { return s.key }

// Unsubscribe removes the observer. It is safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.subject == nil {
		return
	}
	s.subject.Unsubscribe(s.key)
}

type subscriber struct {
	key any
	fn  Observer
}

// Subject is the mutation-observer broadcast. The zero value is ready to use.
type Subject struct {
	subscribers []subscriber
	logger      logging.Logger
	maxDepth    int
	depth       int
	dropped     int
}

// SetLogger overrides where dropped dispatches and panics are reported.
func (s *Subject) SetLogger(l logging.Logger) {
	s.logger = l
}

// SetMaxDepth overrides DefaultMaxDepth; values below one restore the default.
func (s *Subject) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// Subscribe registers fn under key. Keys must be comparable; a key that is
// already registered keeps its original observer and the existing
// subscription is returned. A nil key gets a generated identity.
func (s *Subject) Subscribe(key any, fn Observer) Subscription {
	if fn == nil {
		return Subscription{}
	}
	if key == nil {
		key = uuid.NewString()
	} else if !reflect.TypeOf(key).Comparable() {
		s.log().Warning("notifier: subscription key of type ", reflect.TypeOf(key).String(), " is not comparable; using a generated key")
		key = uuid.NewString()
	}
	for _, sub := range s.subscribers {
		if sub.key == key {
			return Subscription{key: key, subject: s}
		}
	}
	s.subscribers = append(s.subscribers, subscriber{key: key, fn: fn})
	return Subscription{key: key, subject: s}
}

// Unsubscribe removes the observer registered under key.
func (s *Subject) Unsubscribe(key any) bool {
	if key == nil || !reflect.TypeOf(key).Comparable() {
		return false
	}
	for i, sub := range s.subscribers {
		if sub.key == key {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// UnsubscribeAll drops every observer.
func (s *Subject) UnsubscribeAll() {
	s.subscribers = nil
}

// Len reports the number of observers.
func (s *Subject) Len() int {
	return len(s.subscribers)
}

// Dropped reports how many triggers were discarded by the depth guard.
func (s *Subject) Dropped() int {
	return s.dropped
}

// Trigger calls every observer in subscription order. Observers added while
// the trigger runs are first called on the next trigger; observers removed
// while it runs are not called again.
func (s *Subject) Trigger() {
	if len(s.subscribers) == 0 {
		return
	}
	if s.depth >= s.limit() {
		s.dropped++
		s.log().Warning(ErrRecursionLimit.Error(), ": subject trigger dropped at depth ", s.depth)
		return
	}
	s.depth++
	defer func() { s.depth-- }()

	current := append([]subscriber(nil), s.subscribers...)
	for _, sub := range current {
		if !s.subscribed(sub.key) {
			continue
		}
		s.call(sub)
	}
}

func (s *Subject) subscribed(key any) bool {
	for _, sub := range s.subscribers {
		if sub.key == key {
			return true
		}
	}
	return false
}

func (s *Subject) call(sub subscriber) {
	defer func() {
		if r := recover(); r != nil {
			s.log().Warning("notifier: observer panicked: ", r)
		}
	}()
	sub.fn()
}

func (s *Subject) limit() int {
	if s.maxDepth < 1 {
		return DefaultMaxDepth
	}
	return s.maxDepth
}

func (s *Subject) log() logging.Logger {
	return logging.OrDefault(s.logger)
}
