// Package selfplay plays complete games between two move sources.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lk16/cubello/internal/api"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/models"
)

// AlgorithmFallback marks moves that were not picked by a move source.
// The endgame solver finds no move when it cannot prove a win.
const AlgorithmFallback = "fallback"

var (
	ErrIllegalMove   = errors.New("move source returned an illegal move")
	ErrMissingPlayer = errors.New("no move source for player")
)

// Mover picks moves. A nil move means the source found no move.
type Mover interface {
	Move(ctx context.Context, board models.Board, player models.Player) (*models.Move, string, error)
}

// EngineMover picks moves with a local engine.
type EngineMover struct {
	Engine *engine.Engine
}

func (m EngineMover) Move(_ context.Context, board models.Board, player models.Player) (*models.Move, string, error) {
	decision := m.Engine.DecideMove(board, player)
	return decision.Move, decision.Algorithm, nil
}

// ClientMover picks moves by asking a move server.
type ClientMover struct {
	Client *api.Client
}

func (m ClientMover) Move(ctx context.Context, board models.Board, player models.Player) (*models.Move, string, error) {
	resp, err := m.Client.RequestMove(ctx, board, player)
	if err != nil {
		return nil, "", err
	}
	return resp.Move, resp.Algorithm, nil
}

// Turn is one ply of a game. Move is nil for a pass.
type Turn struct {
	Player    models.Player
	Move      *models.Move
	Algorithm string
	Duration  time.Duration
}

// Result is a finished game.
type Result struct {
	Turns  []Turn
	Board  models.Board
	Winner models.Player
	Draw   bool
}

// Players maps each player to its move source.
type Players map[models.Player]Mover

// Play plays a game from board with player to move until neither side can move.
func Play(ctx context.Context, players Players, board models.Board, player models.Player) (Result, error) {
	var result Result

	for _, p := range []models.Player{models.PlayerBlack, models.PlayerWhite} {
		if players[p] == nil {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingPlayer, p)
		}
	}

	for !board.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if !board.HasMoves(player) {
			result.Turns = append(result.Turns, Turn{Player: player})
			player = player.Opponent()
			continue
		}

		startTime := time.Now()

		move, algorithm, err := players[player].Move(ctx, board, player)
		if err != nil {
			return Result{}, fmt.Errorf("failed to get move for %s: %w", player, err)
		}

		if move == nil {
			first := board.LegalMoves(player)[0]
			move = &first
			algorithm = AlgorithmFallback
		}

		next, err := board.ApplyMove(*move, player)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s plays %s: %w", ErrIllegalMove, player, move, err)
		}

		result.Turns = append(result.Turns, Turn{
			Player:    player,
			Move:      move,
			Algorithm: algorithm,
			Duration:  time.Since(startTime),
		})

		board = next
		player = player.Opponent()
	}

	result.Board = board
	winner, ok := board.Winner()
	result.Winner = winner
	result.Draw = !ok

	return result, nil
}

// Runner plays a number of games from the start position and logs the outcome.
type Runner struct {
	players Players
	verbose bool
}

func NewRunner(players Players, verbose bool) *Runner {
	return &Runner{
		players: players,
		verbose: verbose,
	}
}

// Run plays games and returns the number of wins per player. Draws are not counted.
func (r *Runner) Run(ctx context.Context, games int) (map[models.Player]int, error) {
	wins := make(map[models.Player]int)
	totalGameTimeSec := 0.0

	for gameCount := 1; gameCount <= games; gameCount++ {
		startTime := time.Now()

		result, err := Play(ctx, r.players, models.NewBoardStart(), models.PlayerBlack)
		if err != nil {
			return wins, fmt.Errorf("game %d: %w", gameCount, err)
		}

		totalGameTimeSec += time.Since(startTime).Seconds()

		if r.verbose {
			for _, turn := range result.Turns {
				log.Printf("%s plays %s (%s, %s)", turn.Player, moveString(turn.Move), turn.Algorithm, turn.Duration)
			}
			for _, line := range result.Board.ASCIIArtLines() {
				log.Printf("%s", line)
			}
		}

		outcome := "draw"
		if !result.Draw {
			wins[result.Winner]++
			outcome = result.Winner.String() + " wins"
		}

		log.Printf("Game %d | %s | black %d white %d | %d turns", gameCount, outcome,
			result.Board.CountDiscs(models.PlayerBlack), result.Board.CountDiscs(models.PlayerWhite), len(result.Turns))
		log.Printf("Total games: %d | Average time: %.2f sec", gameCount, totalGameTimeSec/float64(gameCount))
	}

	return wins, nil
}

func moveString(move *models.Move) string {
	if move == nil {
		return "pass"
	}
	return move.String()
}
