package sim

// Snapshot is a flat copy of the observable engine state, convenient for
// logging and for comparing two runs tick by tick.
type Snapshot struct {
	State          RunState
	Score          int
	Difficulty     Difficulty
	AvatarY        float64
	AvatarVelocity float64
	WallCount      int
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:          e.state,
		Score:          e.score,
		Difficulty:     e.difficulty,
		AvatarY:        e.avatar.Y,
		AvatarVelocity: e.avatar.Velocity,
		WallCount:      len(e.walls),
	}
}
