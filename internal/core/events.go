package core

import "time"

// Event is a game occurrence surfaced through StepResult. The platform
// forwards events to interested consumers such as the telemetry recorder;
// games never talk to storage or loggers directly.
type Event interface {
	isEvent()
}

// ScoredEvent fires when the player's score increases. Score carries the
// new total.
type ScoredEvent struct {
	Score int
}

// GameOverEvent fires exactly once per run, on the tick the run ends.
type GameOverEvent struct {
	Score      int
	Difficulty string
	Reason     string
	Duration   time.Duration
}

func (ScoredEvent) isEvent()   {}
func (GameOverEvent) isEvent() {}
