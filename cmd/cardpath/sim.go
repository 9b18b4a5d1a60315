package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/engine"
	"github.com/vovakirdan/cardpath/internal/rules"
)

var (
	flagSimGames    int
	flagSimMaxMoves int
	flagSimVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim <stage>",
	Short: "Run headless sessions and report statistics",
	Long: `Play a stage automatically with a greedy policy and report clear
rates, score distribution and penalty counts. Useful for balancing a
custom stage regulation.

The policy prefers unvisited destinations and otherwise takes the first
legal move; it never uses manual redraws or discards.

Examples:
  cardpath sim classic
  cardpath sim crossing --games 100
  cardpath sim classic --seed 7 --games 1`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 20, "Number of sessions to run")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 500, "Move cap per session")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every session")
}

func runSim(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "sim",
	})

	reg, err := rules.Load(args[0], "")
	if err != nil {
		logger.Fatal("cannot load stage", "error", err)
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	var (
		cleared    int
		totalScore int
		totalMoves int
		totalPen   int
		bestScore  int
		hasBest    bool
		lastGame   *engine.Game
	)

	start := time.Now()
	for i := 0; i < flagSimGames; i++ {
		reg.Seed = baseSeed + int64(i)
		g, err := engine.New(reg, time.Now())
		if err != nil {
			logger.Fatal("cannot start session", "error", err)
		}

		moves := autoplay(g, flagSimMaxMoves)
		lastGame = g

		now := time.Now()
		if g.Progress() == engine.ProgressCleared {
			cleared++
			score := g.Score(now)
			totalScore += score
			totalMoves += g.MoveCount()
			totalPen += g.PenaltyCount()
			if !hasBest || score < bestScore {
				bestScore = score
				hasBest = true
			}
		}

		if flagSimVerbose {
			logger.Info("session",
				"seed", reg.Seed,
				"progress", g.Progress(),
				"moves", moves,
				"penalties", g.PenaltyCount(),
				"score", g.Score(now),
			)
		}
	}

	logger.Info("done",
		"stage", reg.Stage,
		"games", flagSimGames,
		"cleared", cleared,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	if cleared > 0 {
		logger.Info("cleared runs",
			"best_score", bestScore,
			"avg_score", totalScore/cleared,
			"avg_moves", totalMoves/cleared,
			"avg_penalties", totalPen/cleared,
		)
	}

	if lastGame != nil {
		fmt.Println()
		fmt.Println(boardDump(lastGame))
	}
}

// autoplay runs a greedy policy: pick a spawn if asked, then prefer moves
// onto unvisited cells and fall back to the first legal move. The engine's
// own deadlock handling keeps the hand playable between moves.
func autoplay(g *engine.Game, maxMoves int) int {
	if g.SpawnSelectionRequired() {
		size := g.Board().Size()
	spawn:
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if g.SelectSpawn(core.Point{X: x, Y: y}, time.Now()) {
					break spawn
				}
			}
		}
	}

	moves := 0
	for moves < maxMoves && g.Progress() == engine.ProgressPlaying {
		slot, dest, ok := pickMove(g)
		if !ok {
			break
		}
		if !g.PlayCard(slot, dest, time.Now()) {
			break
		}
		moves++
	}
	return moves
}

func pickMove(g *engine.Game) (int, core.Point, bool) {
	b := g.Board()
	type candidate struct {
		slot int
		dest core.Point
	}
	var fallback *candidate

	for slot := range g.HandStacks() {
		for _, dest := range g.LegalDestinations(slot) {
			if !b.IsVisited(dest) {
				return slot, dest, true
			}
			if fallback == nil {
				fallback = &candidate{slot: slot, dest: dest}
			}
		}
	}
	if fallback != nil {
		return fallback.slot, fallback.dest, true
	}
	return 0, core.Point{}, false
}

// boardDump renders the final board to a plain text grid, top row first.
func boardDump(g *engine.Game) string {
	b := g.Board()
	size := b.Size()
	screen := core.NewScreen(size*2-1, size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := core.Point{X: x, Y: y}
			r := '.'
			switch {
			case b.Impassable(p):
				r = '#'
			case b.IsVisited(p):
				r = 'o'
			}
			if pos, ok := g.Position(); ok && pos == p {
				r = '@'
			}
			screen.Set(x*2, size-1-y, r)
		}
	}
	return screen.String()
}
