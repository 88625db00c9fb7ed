package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/evaluate"
	"github.com/lk16/cubello/internal/models"
)

func main() {
	boardString := flag.String("board", "", "the board, 64 characters of '.', 'x' and 'o' (default: start board)")
	playerName := flag.String("player", "black", "the player to move")
	dfpnSteps := flag.Int("dfpn-steps", 0, "step budget of the endgame solver (default: built-in budget)")
	flag.Parse()

	config.SetLogLevel()

	board := models.NewBoardStart()

	if *boardString != "" {
		var err error
		board, err = models.NewBoardFromString(*boardString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	player, err := models.ParsePlayer(*playerName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var opts []engine.Option
	if *dfpnSteps > 0 {
		opts = append(opts, engine.WithDFPNMaxSteps(*dfpnSteps))
	}

	board.Print()

	evaluator := evaluate.NewEvaluator(evaluate.DefaultWeights())
	fmt.Printf("Evaluation for %s: %d\n", player, evaluator.Evaluate(board, player))
	fmt.Printf("Stable discs for %s: %d\n", player, evaluate.StableDiscs(board, player).Len())

	decision := engine.New(opts...).DecideMove(board, player)

	move := "none"
	if decision.Move != nil {
		move = decision.Move.String()
	}

	fmt.Printf("Move: %s | algorithm %s | %d empty cells | %s\n", move, decision.Algorithm,
		decision.EmptyCells, decision.Duration)
}
