package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"skyhop/internal/config"
	"skyhop/internal/core"
	"skyhop/internal/games/kite"
	"skyhop/internal/platform/tui"
	"skyhop/internal/registry"
	"skyhop/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: kite).

Controls:
  Space/Up/W - Flap
  1/2/3      - Switch difficulty
  P          - Pause (Esc pauses too)
  R          - Restart (after game over)
  B          - Back to the menu
  Q/Ctrl+C   - Quit

Difficulty presets:
  easy   - Gentle gravity, slow walls, wide gaps
  medium - The default balance
  hard   - Heavy gravity, fast walls, narrow gaps

Examples:
  skyhop play
  skyhop play kite --difficulty easy
  skyhop play kite --name ada
  skyhop play kite --config ./my-kite.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for the leaderboard (asked after a run if empty)")
}

// applyGameFlags pushes the config and difficulty flags into the game
// package before the game is created. Exits on an invalid difficulty.
func applyGameFlags(gameID string) {
	if gameID != kite.GameID {
		return
	}

	kite.SetConfigPath(flagConfig)

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		kite.SetDifficultyPreset(preset)
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := kite.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'skyhop list' to see available games.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	applyGameFlags(gameID)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	_, runErr := tui.Run(game, store, cfg, flagName)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
