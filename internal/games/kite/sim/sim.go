// Package sim implements the kite flight simulation: a fixed-step world
// where gravity pulls the avatar down, impulses kick it up, and walls with
// gaps scroll in endlessly from the right. The package knows nothing about
// terminals, frame timing or persistence; callers drive it with one
// Advance per tick and read results back through accessors.
//
// All positions are float64 simulation units on a fixed field. An Engine
// must be owned by a single goroutine; its methods are not safe for
// concurrent use.
package sim

import (
	"math/rand"
	"time"
)

// Difficulty identifies one of the fixed tuning profiles.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Profile holds the physics coefficients of one difficulty.
type Profile struct {
	Gravity     float64 // added to vertical velocity every tick
	JumpImpulse float64 // velocity assigned by an impulse, negative is up
	WallSpeed   float64 // horizontal wall movement per tick
	GapSize     float64 // vertical gap opening in walls
}

// Config describes the field geometry and the available profiles. The
// Profiles table must contain an entry for DifficultyMedium, the engine's
// starting difficulty.
type Config struct {
	FieldWidth  float64
	FieldHeight float64

	AvatarX      float64 // fixed horizontal position of the avatar
	AvatarWidth  float64
	AvatarHeight float64

	WallWidth      float64
	SpawnThreshold float64 // horizontal spacing that triggers a new wall
	MarginTop      float64 // gap keep-out zone at the top of the field
	MarginBottom   float64 // gap keep-out zone at the bottom

	Profiles map[Difficulty]Profile
}

// DefaultConfig returns the standard field and profile table.
func DefaultConfig() Config {
	return Config{
		FieldWidth:  800,
		FieldHeight: 600,

		AvatarX:      100,
		AvatarWidth:  40,
		AvatarHeight: 30,

		WallWidth:      60,
		SpawnThreshold: 300,
		MarginTop:      50,
		MarginBottom:   50,

		Profiles: map[Difficulty]Profile{
			DifficultyEasy:   {Gravity: 0.3, JumpImpulse: -6, WallSpeed: 2, GapSize: 200},
			DifficultyMedium: {Gravity: 0.4, JumpImpulse: -7, WallSpeed: 3, GapSize: 160},
			DifficultyHard:   {Gravity: 0.5, JumpImpulse: -8, WallSpeed: 4, GapSize: 120},
		},
	}
}

// RunState is the lifecycle phase of a run.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateEnded
)

// String returns a lowercase name for the state.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Avatar is the player object. X, Width and Height are fixed for the
// whole run; Y and Velocity evolve each tick.
type Avatar struct {
	X        float64
	Y        float64
	Velocity float64
	Width    float64
	Height   float64
}

// seedWallCount is the number of walls created up front by Start, placed
// one field width apart so the sequence never runs empty mid-run.
const seedWallCount = 3

// Engine is the simulation state machine. The zero value is not usable;
// create engines with New.
type Engine struct {
	cfg        Config
	difficulty Difficulty
	state      RunState
	avatar     Avatar
	walls      []Wall
	score      int
	rng        *rand.Rand
	obs        Observer
	now        func() time.Time
	startedAt  time.Time
}

// New creates an idle engine. The seed fixes the wall gap sequence; two
// engines with the same config, seed and input schedule produce identical
// runs.
func New(cfg Config, seed int64) *Engine {
	return &Engine{
		cfg:        cfg,
		difficulty: DifficultyMedium,
		state:      StateIdle,
		rng:        rand.New(rand.NewSource(seed)),
		now:        time.Now,
	}
}

// SetObserver installs the notification sink. Pass nil to disable.
func (e *Engine) SetObserver(obs Observer) {
	e.obs = obs
}

// Start begins a new run. It is callable from any state; an in-progress
// run is discarded without a RunEnded notification. The avatar is placed
// at mid-field with zero velocity and the wall sequence is reseeded.
func (e *Engine) Start() {
	e.avatar = Avatar{
		X:      e.cfg.AvatarX,
		Y:      e.cfg.FieldHeight / 2,
		Width:  e.cfg.AvatarWidth,
		Height: e.cfg.AvatarHeight,
	}
	e.walls = e.walls[:0]
	for i := 1; i <= seedWallCount; i++ {
		e.walls = append(e.walls, newWall(e.cfg.FieldWidth*float64(i), e.profile(), e.cfg, e.rng))
	}
	e.score = 0
	e.startedAt = e.now()
	e.state = StateRunning
}

// Impulse sets the avatar's vertical velocity to the profile's jump
// impulse, replacing whatever velocity it had. Outside the running state
// it does nothing.
func (e *Engine) Impulse() {
	if e.state != StateRunning {
		return
	}
	e.avatar.Velocity = e.profile().JumpImpulse
}

// SetDifficulty switches the active profile. Unknown ids are ignored.
// Allowed in any state; the change applies from the next tick, and walls
// already created keep their gap geometry.
func (e *Engine) SetDifficulty(d Difficulty) {
	if _, ok := e.cfg.Profiles[d]; !ok {
		return
	}
	e.difficulty = d
}

// Advance runs one simulation tick. Outside the running state it does
// nothing. A tick applies, in order: avatar integration, wall movement,
// pass scoring, pruning, spawning, and collision detection. Collision is
// evaluated last, against the fully updated positions, so the world state
// of the fatal tick is complete when the run ends.
func (e *Engine) Advance() {
	if e.state != StateRunning {
		return
	}
	p := e.profile()

	// Semi-implicit Euler: velocity first, then position.
	e.avatar.Velocity += p.Gravity
	e.avatar.Y += e.avatar.Velocity

	for i := range e.walls {
		e.walls[i].X -= p.WallSpeed
	}

	// Scoring runs before pruning so a wall still counts on the tick its
	// trailing edge leaves the field.
	for i := range e.walls {
		w := &e.walls[i]
		if !w.Passed && w.X+w.Width < e.avatar.X {
			w.Passed = true
			e.score++
			if e.obs != nil {
				e.obs.WallPassed(WallPassedEvent{Score: e.score})
			}
		}
	}

	kept := e.walls[:0]
	for _, w := range e.walls {
		if w.X+w.Width >= 0 {
			kept = append(kept, w)
		}
	}
	e.walls = kept

	if len(e.walls) == 0 || e.walls[len(e.walls)-1].X < e.cfg.FieldWidth-e.cfg.SpawnThreshold {
		e.walls = append(e.walls, newWall(e.cfg.FieldWidth, p, e.cfg, e.rng))
	}

	if reason, hit := e.collision(); hit {
		e.state = StateEnded
		if e.obs != nil {
			e.obs.RunEnded(RunEndedEvent{
				Score:      e.score,
				Difficulty: e.difficulty,
				Reason:     reason,
				Duration:   e.now().Sub(e.startedAt),
			})
		}
	}
}

// collision checks the avatar against the field boundary first, then
// against every horizontally overlapping wall.
func (e *Engine) collision() (string, bool) {
	a := e.avatar
	if a.Y+a.Height > e.cfg.FieldHeight || a.Y < 0 {
		return ReasonBoundary, true
	}
	for _, w := range e.walls {
		if a.X < w.X+w.Width && a.X+a.Width > w.X {
			if a.Y < w.GapTop || a.Y+a.Height > w.GapBottom {
				return ReasonWall, true
			}
		}
	}
	return "", false
}

func (e *Engine) profile() Profile {
	return e.cfg.Profiles[e.difficulty]
}

// State returns the current lifecycle phase.
func (e *Engine) State() RunState {
	return e.state
}

// Score returns the number of walls cleared this run.
func (e *Engine) Score() int {
	return e.score
}

// Difficulty returns the active profile id.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Avatar returns a copy of the avatar state.
func (e *Engine) Avatar() Avatar {
	return e.avatar
}

// Walls returns the live wall sequence, ordered left to right. The slice
// is only valid until the next Advance or Start; callers must not modify
// it.
func (e *Engine) Walls() []Wall {
	return e.walls
}
