// Package kite adapts the kite flight simulation to the platform: it maps
// input actions to engine calls, projects the simulation field onto the
// cell screen and republishes engine notifications as platform events.
package kite

import (
	"fmt"

	"skyhop/internal/config"
	"skyhop/internal/core"
	"skyhop/internal/games/kite/sim"
	"skyhop/internal/registry"
)

// GameID is the registry identifier.
const GameID = "kite"

const gameTitle = "Kite"

const (
	avatarRune = '◆'
	wallRune   = '█'
	groundRune = '═'
)

var (
	configPath       string
	difficultyPreset = config.DefaultPreset
)

// SetConfigPath points the next Reset at a custom config file.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects the profile applied by the next Reset.
func SetDifficultyPreset(p config.DifficultyPreset) {
	difficultyPreset = p
}

func init() {
	registry.Register(GameID, func() registry.Game { return NewGame() })
}

// Game drives a sim.Engine on behalf of the platform. Pausing lives here,
// not in the engine: a paused game simply stops calling Advance.
type Game struct {
	eng       *sim.Engine
	kcfg      config.KiteConfig
	paused    bool
	endReason string
	events    []core.Event
}

// NewGame returns a game with an idle engine. Reset must be called before
// the first Step.
func NewGame() *Game {
	g := &Game{kcfg: config.DefaultKiteConfig()}
	g.eng = sim.New(SimConfig(g.kcfg), 0)
	g.eng.SetObserver(g)
	return g
}

// ID implements registry.Game.
func (g *Game) ID() string { return GameID }

// Title implements registry.Game.
func (g *Game) Title() string { return gameTitle }

// Reset loads the configuration and starts a fresh run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	kcfg, err := config.LoadKite(configPath)
	if err != nil {
		kcfg = config.DefaultKiteConfig()
	}
	g.kcfg = kcfg

	g.eng = sim.New(SimConfig(kcfg), cfg.Seed)
	g.eng.SetObserver(g)
	g.eng.SetDifficulty(sim.Difficulty(difficultyPreset))

	g.paused = false
	g.endReason = ""
	g.events = nil
	g.eng.Start()
}

// Step maps the input frame onto the engine and advances it one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case in.Has(core.ActionEasy):
		g.eng.SetDifficulty(sim.DifficultyEasy)
	case in.Has(core.ActionMedium):
		g.eng.SetDifficulty(sim.DifficultyMedium)
	case in.Has(core.ActionHard):
		g.eng.SetDifficulty(sim.DifficultyHard)
	}

	if in.Has(core.ActionPause) && g.eng.State() == sim.StateRunning {
		g.paused = !g.paused
	}

	if !g.paused {
		if in.Has(core.ActionJump) {
			g.eng.Impulse()
		}
		g.eng.Advance()
	}

	events := g.events
	g.events = nil
	return core.StepResult{State: g.State(), Events: events}
}

// State implements registry.Game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.State() == sim.StateEnded,
		Paused:   g.paused,
	}
}

// WallPassed implements sim.Observer.
func (g *Game) WallPassed(ev sim.WallPassedEvent) {
	g.events = append(g.events, core.ScoredEvent{Score: ev.Score})
}

// RunEnded implements sim.Observer.
func (g *Game) RunEnded(ev sim.RunEndedEvent) {
	g.endReason = ev.Reason
	g.events = append(g.events, core.GameOverEvent{
		Score:      ev.Score,
		Difficulty: string(ev.Difficulty),
		Reason:     ev.Reason,
		Duration:   ev.Duration,
	})
}

// Render projects the simulation field onto the screen. Row 0 is the HUD,
// the last row is the ground line, everything between is playfield.
func (g *Game) Render(s *core.Screen) {
	if s.Width() < 20 || s.Height() < 8 {
		s.DrawTextCentered(s.Height()/2, "terminal too small")
		return
	}

	w, h := s.Width(), s.Height()
	groundRow := h - 1
	fieldTop, fieldBottom := 1, groundRow-1

	field := SimConfig(g.kcfg)
	scaleX := float64(w) / field.FieldWidth
	scaleY := float64(fieldBottom-fieldTop+1) / field.FieldHeight

	toCol := func(x float64) int { return int(x * scaleX) }
	toRow := func(y float64) int { return fieldTop + int(y*scaleY) }

	for _, wall := range g.eng.Walls() {
		x0 := toCol(wall.X)
		x1 := toCol(wall.X + wall.Width - 1)
		if x1 < x0 {
			x1 = x0
		}
		topEnd := toRow(wall.GapTop) - 1
		botStart := toRow(wall.GapBottom)

		for x := core.Max(x0, 0); x <= core.Min(x1, w-1); x++ {
			for y := fieldTop; y <= core.Min(topEnd, fieldBottom); y++ {
				s.SetWithColor(x, y, wallRune, core.ColorGreen)
			}
			for y := core.Max(botStart, fieldTop); y <= fieldBottom; y++ {
				s.SetWithColor(x, y, wallRune, core.ColorGreen)
			}
		}
	}

	a := g.eng.Avatar()
	ax0, ax1 := toCol(a.X), toCol(a.X+a.Width-1)
	ay0, ay1 := toRow(a.Y), toRow(a.Y+a.Height-1)
	if ax1 < ax0 {
		ax1 = ax0
	}
	if ay1 < ay0 {
		ay1 = ay0
	}
	for x := core.Max(ax0, 0); x <= core.Min(ax1, w-1); x++ {
		for y := core.Max(ay0, fieldTop); y <= core.Min(ay1, fieldBottom); y++ {
			s.SetWithColor(x, y, avatarRune, core.ColorYellow)
		}
	}

	s.DrawHLine(0, groundRow, w, groundRune)

	s.DrawText(1, 0, fmt.Sprintf("Score: %d", g.eng.Score()))
	diff := string(g.eng.Difficulty())
	s.DrawTextWithColor(w-len(diff)-1, 0, diff, core.ColorGray)

	if g.paused {
		g.drawOverlay(s, []string{"PAUSED", "press p to resume"})
	} else if g.eng.State() == sim.StateEnded {
		g.drawOverlay(s, []string{
			"GAME OVER",
			g.endReasonText(),
			fmt.Sprintf("Score: %d", g.eng.Score()),
			"press r to restart, b for menu",
		})
	}
}

func (g *Game) endReasonText() string {
	switch g.endReason {
	case sim.ReasonWall:
		return "crashed into a wall"
	case sim.ReasonBoundary:
		return "flew out of bounds"
	default:
		return ""
	}
}

func (g *Game) drawOverlay(s *core.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}

	boxW := maxLen + 6
	boxH := len(lines) + 2
	box := core.NewRect((s.Width()-boxW)/2, (s.Height()-boxH)/2, boxW, boxH)

	s.DrawRect(box, ' ')
	s.DrawBox(box)
	for i, l := range lines {
		s.DrawTextCentered(box.Y+1+i, l)
	}
}

// SimConfig converts the YAML tuning into the engine's config table.
func SimConfig(c config.KiteConfig) sim.Config {
	return sim.Config{
		FieldWidth:  c.Field.Width,
		FieldHeight: c.Field.Height,

		AvatarX:      c.Avatar.X,
		AvatarWidth:  c.Avatar.Width,
		AvatarHeight: c.Avatar.Height,

		WallWidth:      c.Walls.Width,
		SpawnThreshold: c.Walls.SpawnThreshold,
		MarginTop:      c.Walls.MarginTop,
		MarginBottom:   c.Walls.MarginBottom,

		Profiles: map[sim.Difficulty]sim.Profile{
			sim.DifficultyEasy:   simProfile(c.Profiles.Easy),
			sim.DifficultyMedium: simProfile(c.Profiles.Medium),
			sim.DifficultyHard:   simProfile(c.Profiles.Hard),
		},
	}
}

func simProfile(p config.KiteProfile) sim.Profile {
	return sim.Profile{
		Gravity:     p.Gravity,
		JumpImpulse: p.JumpImpulse,
		WallSpeed:   p.WallSpeed,
		GapSize:     p.GapSize,
	}
}
