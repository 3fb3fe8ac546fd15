package sim

import "math/rand"

// Wall is one obstacle: a full-height barrier with a gap the avatar must
// fly through. X is the left edge and decreases as the wall scrolls left.
// Passed flips to true once the wall has been scored and never resets.
type Wall struct {
	X         float64
	GapTop    float64
	GapBottom float64
	Width     float64
	Passed    bool
}

// newWall creates a wall at horizontal position x. The gap top is drawn
// uniformly so the whole gap stays between the configured margins.
func newWall(x float64, p Profile, cfg Config, rng *rand.Rand) Wall {
	lo := cfg.MarginTop
	hi := cfg.FieldHeight - p.GapSize - cfg.MarginBottom
	if hi < lo {
		hi = lo
	}
	gapTop := lo + rng.Float64()*(hi-lo)
	return Wall{
		X:         x,
		GapTop:    gapTop,
		GapBottom: gapTop + p.GapSize,
		Width:     cfg.WallWidth,
	}
}
