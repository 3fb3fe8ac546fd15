// Package registry is the catalog of playable games. Games register a
// factory from an init function, so importing a game package is all it
// takes to make it available to the menu and the CLI.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"skyhop/internal/core"
)

// Game is the contract between a game and the platform. Implementations
// hold pure simulation and rendering logic; input mapping, timing,
// persistence and terminal handling stay on the platform side.
type Game interface {
	// ID returns the stable identifier used for CLI commands and score
	// storage, e.g. "kite".
	ID() string

	// Title returns the display name, e.g. "Kite".
	Title() string

	// Reset initializes or restarts the game with the given runtime
	// parameters. Called before the first Step and on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick and reports the
	// resulting state plus any events the tick produced.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer. The buffer
	// is cleared by the caller beforehand.
	Render(dst *core.Screen)

	// State returns the current score and lifecycle flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory under the given id. It is meant to be
// called from init and panics on duplicate registration.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games, sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
