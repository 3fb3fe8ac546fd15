// skyhop is a terminal arcade built around a side-scrolling kite game.
//
// Usage:
//
//	skyhop list              - List available games
//	skyhop play [game]       - Play a game
//	skyhop menu              - Start menu to pick games interactively
//	skyhop serve             - Start SSH server for remote play
//	skyhop scores [game]     - Show the leaderboard for a game
//	skyhop sim               - Run a headless simulation
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.skyhop/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "skyhop/internal/games/kite"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "Skyhop - Fly a kite through the walls in your terminal",
	Long: `Skyhop is a terminal arcade. Tap to keep your kite in the air,
slip through the gaps and chase the leaderboard.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  sim      - Run a headless simulation

Examples:
  skyhop play
  skyhop play kite --difficulty hard
  skyhop menu
  skyhop serve --ssh :2222
  skyhop scores --limit 20
  skyhop sim --ticks 1000 --impulse-every 34`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyhop/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
