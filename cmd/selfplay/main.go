// Command selfplay pits the search engine against the random player and
// reports win rates and search effort.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
)

func main() {
	games := flag.Int("games", 50, "Number of games to play")
	depth := flag.Int("depth", bot.DefaultDepth, "Search depth of the engine")
	heuristic := flag.Bool("heuristic", false, "Use the static evaluator at depth-exhausted leaves")
	columns := flag.Int("columns", domain.Columns, "Board columns")
	rows := flag.Int("rows", domain.Rows, "Board rows")
	seed := flag.Uint64("seed", 0, "Seed for the random opponent (0 = clock)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	engine := bot.NewMinimax(*depth, *heuristic)
	opponent := bot.NewRandom(*seed)

	var tally domain.Tally
	var nodes int
	var searchTime time.Duration

	bar := progressbar.Default(int64(*games), "playing")
	for i := 0; i < *games; i++ {
		board, err := domain.NewBoard(*columns, *rows, domain.ToWin)
		if err != nil {
			log.Fatal().Err(err).Msg("bad board size")
		}

		// the random side opens every other game
		toMove := domain.Human
		if i%2 == 1 {
			toMove = domain.Computer
		}

		for !board.Outcome().IsTerminal() {
			var col int
			if toMove == domain.Computer {
				start := time.Now()
				var stats bot.Stats
				col, stats, err = engine.Search(board)
				searchTime += time.Since(start)
				nodes += stats.Nodes
			} else {
				col, err = opponent.BestMove(board)
			}
			if err != nil {
				log.Fatal().Err(err).Msgf("game %d: no move for %s", i+1, toMove)
			}
			board.Place(col, toMove)
			toMove = toMove.Opponent()
		}

		outcome := board.Outcome()
		tally.Record(outcome)
		log.Debug().Msgf("completed game %d with outcome %s", i+1, outcome)
		bar.Add(1)
	}

	fmt.Println()
	fmt.Printf("engine depth %d: won %d, lost %d, drew %d of %d games\n",
		*depth, tally.ComputerWins, tally.HumanWins, tally.Draws, tally.Games())
	fmt.Printf("searched %d nodes in %s\n", nodes, searchTime.Round(time.Millisecond))
}
