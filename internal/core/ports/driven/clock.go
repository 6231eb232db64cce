package driven

import "time"

// Timer is a handle to a scheduled function.
// *time.Timer satisfies it.
type Timer interface {
	// Stop prevents the timer from firing.
	// Returns false if the timer already fired or was stopped.
	Stop() bool
}

// Clock schedules functions after a delay.
type Clock interface {
	// AfterFunc calls f in its own goroutine after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}
