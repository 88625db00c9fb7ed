package engine

import (
	"testing"

	"github.com/lk16/cubello/internal/dfpn"
	"github.com/lk16/cubello/internal/evaluate"
	"github.com/lk16/cubello/internal/models"
	"github.com/stretchr/testify/require"
)

// endgameBoard returns a board with 10 empty cells where black wins by playing (0,0,0).
func endgameBoard() models.Board {
	board := models.NewBoardEmpty()
	for x := range models.Size {
		for y := range models.Size {
			for z := range models.Size {
				switch {
				case x == 0 && y == 0 && z == 0:
				case x == 0 && y == 0 && z == 1:
					board = board.With(x, y, z, models.White)
				case x == 3 && (y >= 2 || (y == 1 && z == 3)):
				default:
					board = board.With(x, y, z, models.Black)
				}
			}
		}
	}
	return board
}

func TestChooseAlgorithm(t *testing.T) {
	require.Equal(t, AlgorithmDFPN, ChooseAlgorithm(0))
	require.Equal(t, AlgorithmDFPN, ChooseAlgorithm(EndgameThreshold))
	require.Equal(t, AlgorithmAlphaBeta, ChooseAlgorithm(EndgameThreshold+1))
	require.Equal(t, AlgorithmAlphaBeta, ChooseAlgorithm(56))
}

func TestDecideMoveStart(t *testing.T) {
	board := models.NewBoardStart()

	decision := New().DecideMove(board, models.PlayerBlack)

	require.Equal(t, AlgorithmAlphaBeta, decision.Algorithm)
	require.Equal(t, 56, decision.EmptyCells)
	require.NotNil(t, decision.Move)
	require.True(t, board.IsLegalMove(*decision.Move, models.PlayerBlack))
}

func TestDecideMoveEndgame(t *testing.T) {
	board := endgameBoard()
	require.Equal(t, 10, board.CountEmpty())

	decision := New().DecideMove(board, models.PlayerBlack)

	require.Equal(t, AlgorithmDFPN, decision.Algorithm)
	require.Equal(t, 10, decision.EmptyCells)
	require.NotNil(t, decision.Move)
	require.Equal(t, models.Move{X: 0, Y: 0, Z: 0}, *decision.Move)
}

func TestDecideMoveNoMove(t *testing.T) {
	decision := New().DecideMove(models.NewBoardEmpty(), models.PlayerWhite)

	require.Equal(t, AlgorithmAlphaBeta, decision.Algorithm)
	require.Nil(t, decision.Move)
}

func TestDecideMoveOptions(t *testing.T) {
	e := New(WithDFPNMaxSteps(7), WithWeights(evaluate.Weights{Corner: 1}))

	require.Equal(t, 7, e.dfpnMaxSteps)
	require.Equal(t, evaluate.Weights{Corner: 1}, e.evaluator.Weights())

	e = New()
	require.Equal(t, dfpn.DefaultMaxSteps, e.dfpnMaxSteps)
	require.Equal(t, evaluate.DefaultWeights(), e.evaluator.Weights())
}

func TestDecideMoveCells(t *testing.T) {
	e := New()

	decision, err := e.DecideMoveCells(models.NewBoardStart().Cells(), "white")
	require.NoError(t, err)
	require.NotNil(t, decision.Move)

	_, err = e.DecideMoveCells([][][]int{}, "black")
	require.ErrorIs(t, err, models.ErrInvalidBoardShape)

	_, err = e.DecideMoveCells(models.NewBoardStart().Cells(), "green")
	require.ErrorIs(t, err, models.ErrUnknownPlayer)
}

func TestDecideMoveCache(t *testing.T) {
	cache := NewCache(1)
	e := New(WithCache(cache))

	board := models.NewBoardStart()

	first := e.DecideMove(board, models.PlayerBlack)
	require.Equal(t, 1, cache.Len())

	require.False(t, first.Cached)

	cached, ok := cache.Lookup(board, models.PlayerBlack)
	require.True(t, ok)
	require.Equal(t, first, cached)

	// A hit reports its own lookup time, not the time of the original search.
	hit := e.DecideMove(board, models.PlayerBlack)
	require.True(t, hit.Cached)
	require.Equal(t, first.Move, hit.Move)
	require.Equal(t, first.Algorithm, hit.Algorithm)
	require.Equal(t, first.EmptyCells, hit.EmptyCells)
	require.Less(t, hit.Duration, first.Duration)

	// The stored entry is not marked as cached.
	stored, ok := cache.Lookup(board, models.PlayerBlack)
	require.True(t, ok)
	require.False(t, stored.Cached)

	// The cache is full.
	e.DecideMove(board, models.PlayerWhite)
	require.Equal(t, 1, cache.Len())

	_, ok = cache.Lookup(board, models.PlayerWhite)
	require.False(t, ok)
}

func TestCacheUpsert(t *testing.T) {
	cache := NewCache(2)
	board := models.NewBoardStart()

	_, ok := cache.Lookup(board, models.PlayerBlack)
	require.False(t, ok)

	cache.Upsert(board, models.PlayerBlack, Decision{Algorithm: AlgorithmAlphaBeta})
	cache.Upsert(board, models.PlayerWhite, Decision{Algorithm: AlgorithmAlphaBeta})

	// Updating an existing entry is allowed when full.
	cache.Upsert(board, models.PlayerBlack, Decision{Algorithm: AlgorithmDFPN})
	cache.Upsert(models.NewBoardEmpty(), models.PlayerBlack, Decision{})

	require.Equal(t, 2, cache.Len())

	decision, ok := cache.Lookup(board, models.PlayerBlack)
	require.True(t, ok)
	require.Equal(t, AlgorithmDFPN, decision.Algorithm)
}
