package sim

import (
	"math/rand"
	"testing"
)

func TestWallGapStaysWithinMargins(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Profiles[DifficultyMedium]
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 500; i++ {
		w := newWall(cfg.FieldWidth, p, cfg, rng)

		if w.GapTop < cfg.MarginTop {
			t.Fatalf("wall %d: gap top %g above the margin %g", i, w.GapTop, cfg.MarginTop)
		}
		if w.GapBottom > cfg.FieldHeight-cfg.MarginBottom {
			t.Fatalf("wall %d: gap bottom %g below the margin", i, w.GapBottom)
		}
		if !almostEqual(w.GapBottom-w.GapTop, p.GapSize) {
			t.Fatalf("wall %d: gap size %g, want %g", i, w.GapBottom-w.GapTop, p.GapSize)
		}
		if w.Width != cfg.WallWidth {
			t.Fatalf("wall %d: width %g, want %g", i, w.Width, cfg.WallWidth)
		}
	}
}

func TestWallGapOnCrampedField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FieldHeight = 200
	p := cfg.Profiles[DifficultyMedium]
	rng := rand.New(rand.NewSource(1))

	// Gap plus margins exceed the field height; placement pins to the top
	// margin instead of going negative.
	w := newWall(cfg.FieldWidth, p, cfg, rng)
	if w.GapTop != cfg.MarginTop {
		t.Errorf("gap top = %g, want pinned to %g", w.GapTop, cfg.MarginTop)
	}
}

func TestPassBeforePruneKeepsOrder(t *testing.T) {
	e := New(DefaultConfig(), 21)
	rec := &recorder{}
	e.SetObserver(rec)
	e.Start()

	e.walls = []Wall{
		{X: -58, GapTop: 50, GapBottom: 210, Width: 60},
		{X: 0, GapTop: 80, GapBottom: 240, Width: 60, Passed: true},
		{X: 300, GapTop: 120, GapBottom: 280, Width: 60},
		{X: 603, GapTop: 90, GapBottom: 250, Width: 60},
	}
	e.Advance()

	if e.State() != StateRunning {
		t.Fatalf("run ended unexpectedly: %v", e.Snapshot())
	}

	// The leftmost wall is scored on the same tick it leaves the field.
	if e.Score() != 1 {
		t.Errorf("score = %d, want 1", e.Score())
	}
	if len(rec.passes) != 1 {
		t.Errorf("pass notifications = %d, want 1", len(rec.passes))
	}

	walls := e.Walls()
	wantX := []float64{-3, 297, 600}
	if len(walls) != len(wantX) {
		t.Fatalf("wall count = %d, want %d", len(walls), len(wantX))
	}
	for i, w := range walls {
		if !almostEqual(w.X, wantX[i]) {
			t.Errorf("wall %d at x=%g, want %g", i, w.X, wantX[i])
		}
	}
}

func TestAlreadyPassedWallNotScoredAgain(t *testing.T) {
	e := New(DefaultConfig(), 23)
	rec := &recorder{}
	e.SetObserver(rec)
	e.Start()

	e.walls = []Wall{{X: 10, GapTop: 100, GapBottom: 500, Width: 60, Passed: true}}
	e.Advance()

	if e.Score() != 0 {
		t.Errorf("score = %d, want 0", e.Score())
	}
	if len(rec.passes) != 0 {
		t.Errorf("pass notifications = %d, want 0", len(rec.passes))
	}
}

func TestSpawnedWallsKeepConstantSpacing(t *testing.T) {
	cfg := hoverConfig()
	e := New(cfg, 17)
	e.Start()

	var gaps []float64
	for i := 0; i < 2500; i++ {
		if i%34 == 0 {
			e.Impulse()
		}
		e.Advance()
		if e.State() != StateRunning {
			t.Fatalf("hover run ended at tick %d", i)
		}

		walls := e.Walls()
		if last := walls[len(walls)-1]; last.X == cfg.FieldWidth {
			// A wall spawned this tick, always exactly at the right edge.
			if len(walls) < 2 {
				t.Fatalf("tick %d: spawn left the sequence with %d walls", i, len(walls))
			}
			gaps = append(gaps, last.X-walls[len(walls)-2].X)
		}
	}

	if len(gaps) < 10 {
		t.Fatalf("observed %d spawns, want at least 10", len(gaps))
	}
	for i, g := range gaps {
		if g <= cfg.SpawnThreshold {
			t.Errorf("spawn %d: spacing %g not above the threshold %g", i, g, cfg.SpawnThreshold)
		}
	}

	// The first spawn trails a seed wall; every later interval is set by
	// the threshold and wall speed alone, so they all match.
	for i := 2; i < len(gaps); i++ {
		if !almostEqual(gaps[i], gaps[1]) {
			t.Errorf("spawn %d: spacing %g, want %g", i, gaps[i], gaps[1])
		}
	}
}

func TestWallSequenceNeverEmpty(t *testing.T) {
	e := New(hoverConfig(), 29)
	e.Start()

	for i := 0; i < 2500; i++ {
		if i%34 == 0 {
			e.Impulse()
		}
		e.Advance()
		if len(e.Walls()) == 0 {
			t.Fatalf("wall sequence empty at tick %d", i)
		}
	}
}
