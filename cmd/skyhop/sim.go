package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"skyhop/internal/config"
	"skyhop/internal/games/kite"
	"skyhop/internal/games/kite/sim"
)

var (
	flagSimTicks     int
	flagImpulseEvery int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless kite simulation",
	Long: `Advance the kite simulation without a terminal UI and print the
outcome. The same seed, config and input schedule always produce the
same run, which makes this useful for tuning difficulty profiles and
comparing builds.

Examples:
  skyhop sim
  skyhop sim --ticks 2000 --impulse-every 34
  skyhop sim --seed 42 --difficulty hard
  skyhop sim --config ./my-kite.yaml --impulse-every 30`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Maximum number of ticks to simulate")
	simCmd.Flags().IntVar(&flagImpulseEvery, "impulse-every", 0, "Fire an impulse every N ticks (0 = never)")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
}

// simTally counts events during a headless run.
type simTally struct {
	passes int
	end    *sim.RunEndedEvent
}

func (t *simTally) WallPassed(sim.WallPassedEvent) { t.passes++ }

func (t *simTally) RunEnded(ev sim.RunEndedEvent) { t.end = &ev }

func runSim(_ *cobra.Command, _ []string) {
	kcfg, err := config.LoadKite(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	preset := config.DefaultPreset
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	eng := sim.New(kite.SimConfig(kcfg), seed)
	tally := &simTally{}
	eng.SetObserver(tally)
	eng.SetDifficulty(sim.Difficulty(preset))
	eng.Start()

	ticks := 0
	for i := 0; i < flagSimTicks; i++ {
		if flagImpulseEvery > 0 && i%flagImpulseEvery == 0 {
			eng.Impulse()
		}
		eng.Advance()
		ticks++
		if eng.State() == sim.StateEnded {
			break
		}
	}

	avatar := eng.Avatar()
	fmt.Printf("Simulated %d ticks (seed %d, difficulty %s)\n", ticks, seed, eng.Difficulty())
	fmt.Printf("  State:  %s\n", eng.State())
	fmt.Printf("  Score:  %d (%d walls passed)\n", eng.Score(), tally.passes)
	fmt.Printf("  Avatar: y=%.1f velocity=%.1f\n", avatar.Y, avatar.Velocity)
	fmt.Printf("  Walls:  %d on field\n", len(eng.Walls()))
	if tally.end != nil {
		fmt.Printf("  Ended:  %s after %s\n", tally.end.Reason, tally.end.Duration.Round(time.Millisecond))
	}
}
