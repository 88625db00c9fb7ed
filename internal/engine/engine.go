package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lk16/cubello/internal/dfpn"
	"github.com/lk16/cubello/internal/evaluate"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/search"
)

const (
	// EndgameThreshold is the highest number of empty cells for which the endgame solver is used.
	EndgameThreshold = 12

	AlgorithmAlphaBeta = "alphabeta"
	AlgorithmDFPN      = "dfpn"
)

// Decision is the outcome of DecideMove.
type Decision struct {
	// Move is nil if no move was found.
	Move       *models.Move
	Algorithm  string
	EmptyCells int
	Duration   time.Duration

	// Cached is true if the decision was taken from the cache. Duration is then
	// the time the lookup took.
	Cached bool
}

// Engine picks moves and is safe for concurrent use. Without WithCache it only
// holds immutable configuration, so separate calls share nothing.
type Engine struct {
	evaluator    *evaluate.Evaluator
	dfpnMaxSteps int

	// cache is nil when decisions are not cached
	cache *Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights sets the evaluation weights of the midgame search.
func WithWeights(weights evaluate.Weights) Option {
	return func(e *Engine) {
		e.evaluator = evaluate.NewEvaluator(weights)
	}
}

// WithDFPNMaxSteps sets the step budget of the endgame solver.
func WithDFPNMaxSteps(maxSteps int) Option {
	return func(e *Engine) {
		e.dfpnMaxSteps = maxSteps
	}
}

// WithCache reuses decisions for boards that were seen before.
func WithCache(cache *Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// New creates a new Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		evaluator:    evaluate.NewEvaluator(evaluate.DefaultWeights()),
		dfpnMaxSteps: dfpn.DefaultMaxSteps,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ChooseAlgorithm returns the algorithm used for a board with the given number of empty cells.
func ChooseAlgorithm(emptyCells int) string {
	if emptyCells <= EndgameThreshold {
		return AlgorithmDFPN
	}
	return AlgorithmAlphaBeta
}

// DecideMove picks a move for p. The endgame solver is used when few cells are
// empty, the alpha-beta search otherwise.
func (e *Engine) DecideMove(board models.Board, p models.Player) Decision {
	startTime := time.Now()

	if e.cache != nil {
		if decision, ok := e.cache.Lookup(board, p); ok {
			decision.Cached = true
			decision.Duration = time.Since(startTime)
			slog.Debug("decision cache hit", "player", p, "move", decision.Move)
			return decision
		}
	}

	decision := Decision{
		EmptyCells: board.CountEmpty(),
	}

	decision.Algorithm = ChooseAlgorithm(decision.EmptyCells)

	slog.Debug("deciding move", "player", p, "empty_cells", decision.EmptyCells, "algorithm", decision.Algorithm)

	var move models.Move
	var ok bool

	switch decision.Algorithm {
	case AlgorithmDFPN:
		solver := dfpn.NewSolver(e.dfpnMaxSteps)
		move, ok = solver.Solve(board, p)
		slog.Debug("df-pn stats", "steps", solver.Stats().Steps, "budget", e.dfpnMaxSteps)
	default:
		bot := search.NewBot(e.evaluator)
		move, ok = bot.ChooseMove(board, p)
		slog.Debug("alpha-beta stats", "nodes", bot.Stats().Nodes)
	}

	if ok {
		decision.Move = &move
	}

	decision.Duration = time.Since(startTime)

	slog.Debug("decided move", "player", p, "move", decision.Move, "algorithm", decision.Algorithm,
		"duration", decision.Duration)

	if e.cache != nil {
		e.cache.Upsert(board, p, decision)
	}

	return decision
}

// DecideMoveCells validates raw input before calling DecideMove.
func (e *Engine) DecideMoveCells(cells [][][]int, player string) (Decision, error) {
	board, err := models.NewBoardFromCells(cells)
	if err != nil {
		return Decision{}, fmt.Errorf("invalid board: %w", err)
	}

	p, err := models.ParsePlayer(player)
	if err != nil {
		return Decision{}, fmt.Errorf("invalid player: %w", err)
	}

	return e.DecideMove(board, p), nil
}
