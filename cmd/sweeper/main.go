// Command sweeper plays minesweeper against itself: it generates random
// boards and lets the knowledge agent solve them, reporting per-game
// outcomes and an aggregate win rate.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-agent/internal/game"
	"github.com/vancomm/minesweeper-agent/internal/solver"
)

var log = logrus.New()

var (
	width     = flag.Int("width", 8, "board width")
	height    = flag.Int("height", 8, "board height")
	mineCount = flag.Int("mines", 8, "number of mines")
	games     = flag.Int("games", 1, "number of games to play")
	seed      = flag.Uint64("seed", 0, "rng seed (0 picks a random one)")
	verbose   = flag.Bool("v", false, "print the final board of every game")
	logFile   = flag.String("log", "", "write a rotating json log to this file")
)

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if *logFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   *logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func playGame(params game.Params, r *rand.Rand) (*solver.Solver, solver.Status, error) {
	first := game.Cell{X: r.IntN(params.Width), Y: r.IntN(params.Height)}
	state, err := game.NewGame(params, first, r)
	if err != nil {
		return nil, solver.On, err
	}
	s := solver.New(state, r)
	return s, s.Solve(), nil
}

func main() {
	flag.Parse()
	setupLogging()

	params := game.Params{
		Width:     *width,
		Height:    *height,
		MineCount: *mineCount,
	}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(*seed, *seed))

	log.WithFields(logrus.Fields{
		"width":  params.Width,
		"height": params.Height,
		"mines":  params.MineCount,
		"games":  *games,
		"seed":   *seed,
	}).Info("starting")

	won := 0
	for i := range *games {
		s, status, err := playGame(params, r)
		if err != nil {
			log.Fatal("unable to generate game: ", err)
		}

		guesses := 0
		for _, m := range s.Moves() {
			if m.Guess {
				guesses++
			}
		}

		entry := log.WithFields(logrus.Fields{
			"game":    i + 1,
			"status":  status.String(),
			"moves":   len(s.Moves()),
			"guesses": guesses,
		})
		if status == solver.Won {
			won++
			entry.Info("game over")
		} else {
			entry.Warn("game over")
		}

		if *verbose {
			fmt.Print(s.State())
		}
	}

	log.WithFields(logrus.Fields{
		"won":     won,
		"lost":    *games - won,
		"winRate": fmt.Sprintf("%.1f%%", 100*float64(won)/float64(*games)),
	}).Info("done")
}
