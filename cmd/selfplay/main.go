package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/lk16/cubello/internal/api"
	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/selfplay"
)

func main() {
	games := flag.Int("games", 1, "number of games to play")
	remote := flag.Bool("remote", false, "let white ask the server at CUBELLO_SERVER_URL for moves")
	dfpnSteps := flag.Int("dfpn-steps", 0, "step budget of the local endgame solver (default: built-in budget)")
	verbose := flag.Bool("verbose", false, "print every move and the final board")
	flag.Parse()

	config.SetLogLevel()

	var opts []engine.Option
	if *dfpnSteps > 0 {
		opts = append(opts, engine.WithDFPNMaxSteps(*dfpnSteps))
	}

	local := selfplay.EngineMover{Engine: engine.New(opts...)}

	players := selfplay.Players{
		models.PlayerBlack: local,
		models.PlayerWhite: local,
	}

	if *remote {
		cfg := config.LoadClientConfig()
		players[models.PlayerWhite] = selfplay.ClientMover{Client: api.NewClient(cfg)}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	wins, err := selfplay.NewRunner(players, *verbose).Run(ctx, *games)
	if err != nil {
		log.Printf("Self-play failed: %v", err)
		stop()
		os.Exit(1)
	}

	log.Printf("Black wins: %d | White wins: %d | Draws: %d", wins[models.PlayerBlack], wins[models.PlayerWhite],
		*games-wins[models.PlayerBlack]-wins[models.PlayerWhite])
}
