// Package telemetry turns gameplay events into persisted records. The
// recorder is fire-and-forget: storage failures are logged and never
// interrupt a running game.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"skyhop/internal/core"
	"skyhop/internal/storage"
)

// Event names as stored in the database.
const (
	EventWallPassed = "wall_passed"
	EventRunEnded   = "run_ended"
)

// Recorder writes the events of one play session to a store. A nil
// Recorder is valid and records nothing.
type Recorder struct {
	store   *storage.Store
	session string
}

// NewSessionID builds a session identifier from the player name. The
// nanosecond suffix keeps concurrent sessions of the same player apart.
func NewSessionID(username string) string {
	return fmt.Sprintf("%s-%d", username, time.Now().UnixNano())
}

// NewRecorder creates a recorder for one session. Returns nil when the
// store is nil, so callers can run without persistence.
func NewRecorder(store *storage.Store, sessionID string) *Recorder {
	if store == nil {
		return nil
	}
	return &Recorder{store: store, session: sessionID}
}

// SessionID returns the session this recorder writes under.
func (r *Recorder) SessionID() string {
	if r == nil {
		return ""
	}
	return r.session
}

type wallPassedPayload struct {
	Score int `json:"score"`
}

type runEndedPayload struct {
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	Reason     string `json:"reason"`
	DurationMs int64  `json:"duration_ms"`
}

// Record persists a single gameplay event. Unknown event types are
// ignored.
func (r *Recorder) Record(ev core.Event) {
	if r == nil {
		return
	}

	var name string
	var payload any

	switch e := ev.(type) {
	case core.ScoredEvent:
		name = EventWallPassed
		payload = wallPassedPayload{Score: e.Score}
	case core.GameOverEvent:
		name = EventRunEnded
		payload = runEndedPayload{
			Score:      e.Score,
			Difficulty: e.Difficulty,
			Reason:     e.Reason,
			DurationMs: e.Duration.Milliseconds(),
		}
	default:
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn("telemetry: cannot encode event", "event", name, "err", err)
		return
	}

	if err := r.store.RecordEvent(r.session, name, string(data)); err != nil {
		log.Warn("telemetry: cannot record event", "event", name, "err", err)
	}
}

// RecordAll persists a batch of events in order.
func (r *Recorder) RecordAll(events []core.Event) {
	for _, ev := range events {
		r.Record(ev)
	}
}
