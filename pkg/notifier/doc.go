// Package notifier provides the typed publish/subscribe primitive every
// stateful entity embeds.
//
// Two layers exist. A Hub holds Notifiers: id-keyed callbacks bound to one
// EventType, invoked in registration order by Notify. Every Notify then
// triggers the Hub's Subject, the lower-level "something changed" broadcast
// UI bindings subscribe to in order to re-derive their snapshot.
//
// Dispatch is synchronous and runs on the caller's goroutine. It is
// reentrant: a callback that mutates the entity and notifies again recurses.
// Recursion deeper than MaxDepth is dropped and logged. A panicking callback
// is recovered and logged so the remaining callbacks still run. Neither Hub
// nor Subject is safe for concurrent use.
package notifier
