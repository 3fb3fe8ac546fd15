package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skyhop/internal/account"
	"skyhop/internal/core"
	"skyhop/internal/registry"
	"skyhop/internal/storage"
	"skyhop/internal/telemetry"
)

// pendingScore holds a finished run until it is saved or skipped.
type pendingScore struct {
	Score      int
	Difficulty string
	Duration   time.Duration
}

// GameModel is the Bubble Tea model for one game screen. It drives the
// tick loop, forwards telemetry and saves finished runs, prompting for
// a player name when none is known yet.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	recorder   *telemetry.Recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	username     string // Validated player name; empty until entered
	pending      *pendingScore
	nameErr      string
	nameInput    textinput.Model
	enteringName bool

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for the given game. An empty or invalid
// username means the player is asked for one after their first run.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, username string) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	name := account.Normalize(username)
	if account.ValidateName(name) != nil {
		name = ""
	}
	sessionUser := name
	if sessionUser == "" {
		sessionUser = "guest"
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = account.MaxNameLen
	ti.Width = 24

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		recorder:   telemetry.NewRecorder(store, telemetry.NewSessionID(sessionUser)),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		username:   name,
		nameInput:  ti,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.enteringName {
		return m.handleNameKey(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump, core.ActionPause,
		core.ActionEasy, core.ActionMedium, core.ActionHard:
		m.inputFrame.Set(action)

	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}

	case core.ActionBack:
		// Escape pauses a running game; once paused or over it leaves.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)
	}

	return m, nil
}

// handleNameKey processes input while the name prompt is open.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		// Skip saving this run
		m.enteringName = false
		m.nameErr = ""
		m.pending = nil
		m.nameInput.Blur()
		return m, nil

	case "enter":
		name := account.Normalize(m.nameInput.Value())
		if err := account.ValidateName(name); err != nil {
			m.nameErr = err.Error()
			return m, nil
		}
		m.username = name
		m.savePending()
		m.enteringName = false
		m.nameErr = ""
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleResize processes window resize events. The simulation keeps
// running; only the draw buffer changes size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.pending = nil
		m.enteringName = false
		m.nameErr = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recorder.RecordAll(result.Events)

	var nameCmd tea.Cmd
	for _, ev := range result.Events {
		if end, ok := ev.(core.GameOverEvent); ok {
			nameCmd = m.handleRunEnded(end)
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	if nameCmd != nil {
		return m, tea.Batch(tickCmd(m.config.TickRate), nameCmd)
	}
	return m, tickCmd(m.config.TickRate)
}

// handleRunEnded saves the finished run, or opens the name prompt when
// no player name is known yet.
func (m *GameModel) handleRunEnded(end core.GameOverEvent) tea.Cmd {
	if end.Score <= 0 || m.store == nil || m.scoreSaved {
		return nil
	}

	m.pending = &pendingScore{
		Score:      end.Score,
		Difficulty: end.Difficulty,
		Duration:   end.Duration,
	}

	if m.username != "" {
		m.savePending()
		return nil
	}

	m.enteringName = true
	m.nameErr = ""
	m.nameInput.SetValue("")
	m.nameInput.Focus()
	return textinput.Blink
}

// savePending writes the held score under the current username.
func (m *GameModel) savePending() {
	if m.pending == nil || m.store == nil || m.username == "" {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.game.ID(), m.username, m.pending.Difficulty, m.pending.Score, m.pending.Duration)
	m.scoreSaved = true
	m.pending = nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".skyhop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.enteringName {
		return m.viewNamePrompt()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// viewNamePrompt renders the save-score dialog.
func (m GameModel) viewNamePrompt() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 3)

	score := 0
	if m.pending != nil {
		score = m.pending.Score
	}

	var b []string
	b = append(b,
		titleStyle.Render(fmt.Sprintf("RUN OVER - Score %d", score)),
		"",
		"Enter a name for the leaderboard:",
		m.nameInput.View(),
	)
	if m.nameErr != "" {
		b = append(b, errStyle.Render(m.nameErr))
	}
	b = append(b, "", hintStyle.Render("enter: save  esc: skip"))

	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, b...))
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game. Returns whether the
// player asked to go back to the menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, username string) (goBack bool, err error) {
	model := NewGameModel(game, store, cfg, username)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}

	return m.BackToMenu(), nil
}
