package search

import (
	"log/slog"
	"math"
	"time"

	"github.com/lk16/cubello/internal/evaluate"
	"github.com/lk16/cubello/internal/models"
)

const (
	// Depth is the number of plies searched by ChooseMove.
	Depth = 3
)

// searchContext holds the values that stay the same during one search.
type searchContext struct {
	player models.Player
}

// Bot chooses midgame moves with a depth-limited alpha-beta search.
// A Bot keeps counters, so it should not be shared between goroutines.
type Bot struct {
	evaluator *evaluate.Evaluator
	depth     int
	startTime time.Time
	nodes     uint64
}

// Stats contains counters of the last search.
type Stats struct {
	Nodes    uint64
	Duration time.Duration
}

// NewBot creates a new bot searching Depth plies.
func NewBot(evaluator *evaluate.Evaluator) *Bot {
	return &Bot{
		evaluator: evaluator,
		depth:     Depth,
	}
}

// ChooseMove returns the best move for p. The second return value is false if p has no moves.
//
// The maximizing side is always p and leaves are always scored from p's
// perspective. A ply without legal moves passes the turn and still uses up
// one unit of depth.
func (b *Bot) ChooseMove(board models.Board, p models.Player) (models.Move, bool) {
	b.startTime = time.Now()
	b.nodes = 0

	ctx := searchContext{player: p}
	score, move := b.maxValue(ctx, board, math.MinInt, math.MaxInt, b.depth)

	slog.Debug("alpha-beta search done", "player", p, "score", score, "nodes", b.nodes,
		"duration", time.Since(b.startTime))

	if move == nil {
		return models.Move{}, false
	}

	return *move, true
}

// Stats returns the counters of the last search.
func (b *Bot) Stats() Stats {
	return Stats{
		Nodes:    b.nodes,
		Duration: time.Since(b.startTime),
	}
}

func (b *Bot) maxValue(ctx searchContext, board models.Board, alpha, beta, depth int) (int, *models.Move) {
	b.nodes++

	if depth == 0 || board.IsTerminal() {
		return b.evaluator.Evaluate(board, ctx.player), nil
	}

	moves := board.LegalMoves(ctx.player)
	if len(moves) == 0 {
		score, _ := b.minValue(ctx, board, alpha, beta, depth-1)
		return score, nil
	}

	best := math.MinInt
	var bestMove *models.Move

	for i := range moves {
		child := board.MustApplyMove(moves[i], ctx.player)
		score, _ := b.minValue(ctx, child, alpha, beta, depth-1)

		if score > best {
			best = score
			bestMove = &moves[i]
		}

		if best >= beta {
			return best, bestMove
		}

		alpha = max(alpha, best)
	}

	return best, bestMove
}

func (b *Bot) minValue(ctx searchContext, board models.Board, alpha, beta, depth int) (int, *models.Move) {
	b.nodes++

	if depth == 0 || board.IsTerminal() {
		return b.evaluator.Evaluate(board, ctx.player), nil
	}

	opponent := ctx.player.Opponent()

	moves := board.LegalMoves(opponent)
	if len(moves) == 0 {
		score, _ := b.maxValue(ctx, board, alpha, beta, depth-1)
		return score, nil
	}

	best := math.MaxInt
	var bestMove *models.Move

	for i := range moves {
		child := board.MustApplyMove(moves[i], opponent)
		score, _ := b.maxValue(ctx, child, alpha, beta, depth-1)

		if score < best {
			best = score
			bestMove = &moves[i]
		}

		if best <= alpha {
			return best, bestMove
		}

		beta = min(beta, best)
	}

	return best, bestMove
}
