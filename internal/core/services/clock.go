package services

import (
	"time"

	"github.com/custodia-labs/briefing/internal/core/ports/driven"
)

// wallClock is the driven.Clock backed by the time package.
type wallClock struct{}

// Ensure wallClock implements the interface.
var _ driven.Clock = wallClock{}

// WallClock returns a clock using real time.
func WallClock() driven.Clock {
	return wallClock{}
}

// AfterFunc implements driven.Clock.
func (wallClock) AfterFunc(d time.Duration, f func()) driven.Timer {
	return time.AfterFunc(d, f)
}
