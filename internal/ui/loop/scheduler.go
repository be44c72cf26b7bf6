// Package loop funnels timer and background work back onto the host's single
// event loop. Components never mutate nodes from another goroutine; they hand
// closures to a Scheduler and the host runs them between input events.
package loop

import "time"

// Scheduler runs closures on the event loop.
type Scheduler interface {
	// Post queues fn to run on the event loop. Safe to call from any goroutine.
	Post(fn func())
	// Every runs fn on the event loop each interval until stop is called.
	Every(interval time.Duration, fn func()) (stop func())
}
