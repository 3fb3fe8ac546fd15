package sim

import "time"

// Observer receives engine notifications. The engine calls it synchronously
// from Advance, on the tick the condition occurs. A nil observer is valid
// and disables notifications.
type Observer interface {
	// WallPassed fires each time the avatar clears a wall. Every wall
	// produces at most one notification over its lifetime.
	WallPassed(WallPassedEvent)

	// RunEnded fires exactly once per run that ends in a collision.
	// Runs abandoned by a Start call produce no notification.
	RunEnded(RunEndedEvent)
}

// WallPassedEvent carries the score total after the wall was cleared.
type WallPassedEvent struct {
	Score int
}

// RunEndedEvent describes a finished run.
type RunEndedEvent struct {
	Score      int
	Difficulty Difficulty
	Reason     string
	Duration   time.Duration
}

// Reasons reported in RunEndedEvent.
const (
	ReasonBoundary = "boundary"
	ReasonWall     = "wall"
)
