package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"skyhop/internal/core"
	_ "skyhop/internal/games/kite"
	"skyhop/internal/registry"
	"skyhop/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func newTestGameModel(t *testing.T, store *storage.Store, username string) GameModel {
	t.Helper()

	game, err := registry.Create("kite")
	if err != nil {
		t.Fatalf("Create(kite) failed: %v", err)
	}

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewGameModel(game, store, cfg, username)
	m.Init()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updateGameModel(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()

	newModel, _ := m.Update(msg)
	gm, ok := newModel.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", newModel)
	}
	return gm
}

func TestGameModelQuitKey(t *testing.T) {
	m := newTestGameModel(t, nil, "ada")

	m = updateGameModel(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("q should quit the game")
	}
}

func TestGameModelRunEndsOnFall(t *testing.T) {
	m := newTestGameModel(t, nil, "")

	// Without jumps the avatar falls out of the field well within this
	// many ticks.
	for i := 0; i < 120; i++ {
		m = updateGameModel(t, m, TickMsg(time.Time{}))
	}

	if !m.gameState.GameOver {
		t.Fatal("Run should have ended after falling")
	}
	if m.enteringName {
		t.Error("Zero-score runs should not prompt for a name")
	}

	// r starts a fresh run
	m = updateGameModel(t, m, keyMsg("r"))
	m = updateGameModel(t, m, TickMsg(time.Time{}))
	if m.gameState.GameOver {
		t.Error("Restart should start a fresh run")
	}
}

func TestGameModelEscPausesThenLeaves(t *testing.T) {
	m := newTestGameModel(t, nil, "ada")

	m = updateGameModel(t, m, TickMsg(time.Time{}))
	m = updateGameModel(t, m, keyMsg("esc"))
	m = updateGameModel(t, m, TickMsg(time.Time{}))
	if !m.gameState.Paused {
		t.Fatal("esc should pause a running game")
	}
	if m.BackToMenu() {
		t.Fatal("first esc should not leave the game")
	}

	m = updateGameModel(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
	if m.IsQuitting() {
		t.Error("going back to the menu is not a quit")
	}
}

func TestGameModelBackKeyAfterGameOver(t *testing.T) {
	m := newTestGameModel(t, nil, "ada")

	for i := 0; i < 120 && !m.gameState.GameOver; i++ {
		m = updateGameModel(t, m, TickMsg(time.Time{}))
	}
	if !m.gameState.GameOver {
		t.Fatal("run should have ended")
	}

	m = updateGameModel(t, m, keyMsg("b"))
	if !m.BackToMenu() {
		t.Error("b after game over should go back to the menu")
	}
}

func TestGameModelAutosavesWithUsername(t *testing.T) {
	store := openTestStore(t)
	m := newTestGameModel(t, store, "ada")

	end := core.GameOverEvent{Score: 7, Difficulty: "medium", Reason: "wall", Duration: 9 * time.Second}
	if cmd := m.handleRunEnded(end); cmd != nil {
		t.Error("No name prompt expected when a username is known")
	}
	if m.enteringName {
		t.Error("Name prompt should stay closed when a username is known")
	}

	scores, err := store.TopScores("kite", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 saved score, got %d", len(scores))
	}

	e := scores[0]
	if e.Username != "ada" || e.Difficulty != "medium" || e.Score != 7 {
		t.Errorf("Saved entry fields wrong: %+v", e)
	}
	if e.Duration != 9*time.Second {
		t.Errorf("Duration = %v, want 9s", e.Duration)
	}
}

func TestGameModelNamePrompt(t *testing.T) {
	store := openTestStore(t)
	m := newTestGameModel(t, store, "")

	end := core.GameOverEvent{Score: 3, Difficulty: "easy", Reason: "boundary", Duration: 4 * time.Second}
	if cmd := m.handleRunEnded(end); cmd == nil {
		t.Fatal("Expected a cursor blink command for the name prompt")
	}
	if !m.enteringName {
		t.Fatal("Name prompt should be open")
	}

	if view := m.View(); !strings.Contains(view, "RUN OVER - Score 3") {
		t.Error("Name prompt view should show the final score")
	}

	// A rejected name keeps the prompt open with an error
	m.nameInput.SetValue("a")
	m = updateGameModel(t, m, keyMsg("enter"))
	if !m.enteringName {
		t.Fatal("Prompt should stay open after a rejected name")
	}
	if m.nameErr == "" {
		t.Error("Rejected name should set an error message")
	}

	// A valid name saves the run and closes the prompt
	m.nameInput.SetValue(" ada ")
	m = updateGameModel(t, m, keyMsg("enter"))
	if m.enteringName {
		t.Error("Prompt should close after saving")
	}
	if m.username != "ada" {
		t.Errorf("username = %q, want %q", m.username, "ada")
	}

	scores, err := store.TopScores("kite", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Username != "ada" || scores[0].Score != 3 {
		t.Errorf("Saved scores wrong: %v", scores)
	}
}

func TestGameModelSkipSaving(t *testing.T) {
	store := openTestStore(t)
	m := newTestGameModel(t, store, "")

	m.handleRunEnded(core.GameOverEvent{Score: 3, Difficulty: "medium", Reason: "wall", Duration: time.Second})
	if !m.enteringName {
		t.Fatal("Name prompt should be open")
	}

	m = updateGameModel(t, m, keyMsg("esc"))
	if m.enteringName {
		t.Error("Escape should close the prompt")
	}

	scores, err := store.TopScores("kite", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Skipped run should not be saved, got %v", scores)
	}
}

func TestGameModelZeroScoreNotSaved(t *testing.T) {
	store := openTestStore(t)
	m := newTestGameModel(t, store, "ada")

	m.handleRunEnded(core.GameOverEvent{Score: 0, Difficulty: "medium", Reason: "boundary", Duration: time.Second})
	if m.enteringName {
		t.Error("Zero-score runs should not prompt for a name")
	}

	scores, err := store.TopScores("kite", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Zero-score run should not be saved, got %v", scores)
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	m := newTestGameModel(t, nil, "ada")

	m = updateGameModel(t, m, TickMsg(time.Time{}))
	m = updateGameModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("Config size = %dx%d, want 120x40", m.config.ScreenW, m.config.ScreenH)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("Screen size = %dx%d, want 120x40", m.screen.Width(), m.screen.Height())
	}
	if m.gameState.GameOver {
		t.Error("Resize should not end the run")
	}
}
