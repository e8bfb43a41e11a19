package notifier

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/internal/logging"
)

func TestAcceptIsIdempotent(t *testing.T) {
	var hub Hub
	calls := 0
	first := Notifier{ID: "render", Type: EventChanged, Method: func(any) { calls++ }}
	second := Notifier{ID: "render", Type: EventChanged, Method: func(any) { calls += 10 }}

	hub.Accept(first)
	hub.Accept(second)

	if got := hub.Notifiers(); got != 1 {
		t.Fatalf("expected one notifier, got %d", got)
	}
	hub.Notify(EventChanged, nil)
	if calls != 1 {
		t.Fatalf("expected the first registration to win, calls=%d", calls)
	}
}

func TestAcceptAssignsIDAndIgnoresNilMethod(t *testing.T) {
	hub := NewHub(logging.Nop())
	id := hub.Accept(Notifier{Type: EventFocused, Method: func(any) {}})
	if id == "" || !hub.Has(id) {
		t.Fatalf("expected generated id to be registered, got %q", id)
	}
	if got := hub.Accept(Notifier{ID: "noop", Type: EventFocused}); got != "" {
		t.Fatalf("notifier without method should be rejected, got %q", got)
	}
}

func TestNotifyDispatchesMatchingTypesInOrderThenTriggers(t *testing.T) {
	var hub Hub
	var trace []string
	record := func(label string) Method {
		return func(payload any) { trace = append(trace, label+":"+payload.(string)) }
	}
	hub.Accept(Notifier{ID: "a", Type: EventChanged, Method: record("a")})
	hub.Accept(Notifier{ID: "b", Type: EventBlurred, Method: record("b")})
	hub.Accept(Notifier{ID: "c", Type: EventChanged, Method: record("c")})
	hub.Subscribe("ui", func() { trace = append(trace, "observer") })

	hub.Notify(EventChanged, "x")
	hub.Notify(EventSelected, "y")

	want := []string{"a:x", "c:x", "observer", "observer"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Fatalf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveNotifier(t *testing.T) {
	var hub Hub
	calls := 0
	hub.Accept(Notifier{ID: "a", Type: EventChanged, Method: func(any) { calls++ }})
	if !hub.Remove("a") {
		t.Fatalf("expected remove to report success")
	}
	if hub.Remove("a") {
		t.Fatalf("second remove should report false")
	}
	hub.Notify(EventChanged, nil)
	if calls != 0 {
		t.Fatalf("removed notifier was called")
	}
}

func TestPanickingNotifierDoesNotStopDispatch(t *testing.T) {
	rec := &logging.Recorder{}
	hub := NewHub(rec)
	reached := false
	hub.Accept(Notifier{ID: "boom", Type: EventChanged, Method: func(any) { panic("kaput") }})
	hub.Accept(Notifier{ID: "after", Type: EventChanged, Method: func(any) { reached = true }})

	hub.Notify(EventChanged, nil)

	if !reached {
		t.Fatalf("dispatch stopped at the panicking notifier")
	}
	if len(rec.Warnings) != 1 || !strings.Contains(rec.Warnings[0], "kaput") {
		t.Fatalf("expected panic to be logged, got %v", rec.Warnings)
	}
}

func TestRecursiveNotifyIsBounded(t *testing.T) {
	rec := &logging.Recorder{}
	hub := NewHub(rec)
	hub.SetMaxDepth(3)
	calls := 0
	hub.Accept(Notifier{ID: "loop", Type: EventChanged, Method: func(any) {
		calls++
		hub.Notify(EventChanged, nil)
	}})

	hub.Notify(EventChanged, nil)

	if calls != 3 {
		t.Fatalf("expected recursion to stop at depth 3, calls=%d", calls)
	}
	if hub.Dropped() != 1 {
		t.Fatalf("expected one dropped dispatch, got %d", hub.Dropped())
	}
	if len(rec.Warnings) == 0 || !strings.Contains(rec.Warnings[0], ErrRecursionLimit.Error()) {
		t.Fatalf("expected recursion warning, got %v", rec.Warnings)
	}
}

func TestDisposeKeepsNotifiers(t *testing.T) {
	var hub Hub
	hub.Accept(Notifier{ID: "a", Type: EventChanged, Method: func(any) {}})
	hub.Subscribe("ui", func() {})

	hub.Dispose()

	if hub.Observers() != 0 {
		t.Fatalf("expected observers to be cleared")
	}
	if hub.Notifiers() != 1 {
		t.Fatalf("expected notifiers to survive dispose")
	}
}
