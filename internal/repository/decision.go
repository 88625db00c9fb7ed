package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/services"
)

const (
	decisionStatsKey = "decision_stats"
	decisionStatsTTL = 7 * 24 * time.Hour
)

var (
	// ErrDecisionNotFound is returned when a decision ID is unknown.
	ErrDecisionNotFound = errors.New("decision not found")

	// ErrNotConfigured is returned when the backing service of a query is not configured.
	ErrNotConfigured = errors.New("service not configured")
)

// DecisionRepository stores decisions in Postgres and counts them in Redis.
type DecisionRepository struct {
	services *services.Services
}

// NewDecisionRepository creates a new DecisionRepository.
func NewDecisionRepository(c *fiber.Ctx) *DecisionRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return &DecisionRepository{
		services: services,
	}
}

func NewDecisionRepositoryFromServices(services *services.Services) *DecisionRepository {
	return &DecisionRepository{
		services: services,
	}
}

// NewDecisionRecord creates a record for a decision with a fresh ID.
func NewDecisionRecord(board models.Board, player models.Player, decision engine.Decision) models.DecisionRecord {
	return models.DecisionRecord{
		ID:         uuid.New().String(),
		Board:      board.String(),
		Player:     int(player),
		Move:       decision.Move,
		Algorithm:  decision.Algorithm,
		EmptyCells: decision.EmptyCells,
		DurationMS: decision.Duration.Milliseconds(),
		Cached:     decision.Cached,
		CreatedAt:  time.Now(),
	}
}

// SaveDecision stores a decision. Services that are not configured are skipped.
func (repo *DecisionRepository) SaveDecision(ctx context.Context, record models.DecisionRecord) error {
	if pgConn := repo.services.Postgres; pgConn != nil {
		query := `
			INSERT INTO decisions (id, board, player, move, algorithm, empty_cells, duration_ms, cached, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := pgConn.ExecContext(ctx, query,
			record.ID,
			record.Board,
			record.Player,
			moveToArray(record.Move),
			record.Algorithm,
			record.EmptyCells,
			record.DurationMS,
			record.Cached,
			record.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error saving decision: %w", err)
		}
	}

	if redisConn := repo.services.Redis; redisConn != nil {
		pipe := redisConn.Pipeline()
		pipe.HIncrBy(ctx, decisionStatsKey, statsField(record.Algorithm, record.Move != nil), 1)
		pipe.Expire(ctx, decisionStatsKey, decisionStatsTTL)

		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("error updating Redis stats: %w", err)
		}
	}

	return nil
}

// decisionRow is a row of the decisions table.
type decisionRow struct {
	models.DecisionRecord
	Move pq.Int64Array `db:"move"`
}

// GetDecision loads a decision by ID.
func (repo *DecisionRepository) GetDecision(ctx context.Context, id string) (models.DecisionRecord, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return models.DecisionRecord{}, fmt.Errorf("%w: postgres", ErrNotConfigured)
	}

	if _, err := uuid.Parse(id); err != nil {
		return models.DecisionRecord{}, ErrDecisionNotFound
	}

	query := `
		SELECT id, board, player, move, algorithm, empty_cells, duration_ms, cached, created_at
		FROM decisions
		WHERE id = $1
	`

	var row decisionRow
	err := pgConn.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DecisionRecord{}, ErrDecisionNotFound
	}

	if err != nil {
		return models.DecisionRecord{}, fmt.Errorf("error loading decision: %w", err)
	}

	record := row.DecisionRecord
	record.Move, err = arrayToMove(row.Move)
	if err != nil {
		return models.DecisionRecord{}, err
	}

	return record, nil
}

// GetStats returns the number of decisions per algorithm.
func (repo *DecisionRepository) GetStats(ctx context.Context) ([]models.AlgorithmStats, error) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return nil, fmt.Errorf("%w: redis", ErrNotConfigured)
	}

	fields, err := redisConn.HGetAll(ctx, decisionStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting decision stats from Redis: %w", err)
	}

	return parseStats(fields)
}

// statsField returns the Redis hash field for an algorithm and whether it found a move.
func statsField(algorithm string, found bool) string {
	if found {
		return algorithm + ":move"
	}
	return algorithm + ":none"
}

// parseStats sums the hash fields per algorithm, sorted by algorithm name.
func parseStats(fields map[string]string) ([]models.AlgorithmStats, error) {
	counts := make(map[string]int)

	for field, value := range fields {
		separator := strings.LastIndex(field, ":")
		if separator <= 0 {
			return nil, fmt.Errorf("error parsing decision stats field %q", field)
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("error parsing decision stats value: %w", err)
		}

		counts[field[:separator]] += count
	}

	stats := make([]models.AlgorithmStats, 0, len(counts))
	for algorithm, count := range counts {
		stats = append(stats, models.AlgorithmStats{Algorithm: algorithm, Count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Algorithm < stats[j].Algorithm
	})

	return stats, nil
}

func moveToArray(move *models.Move) pq.Int64Array {
	if move == nil {
		return nil
	}
	return pq.Int64Array{int64(move.X), int64(move.Y), int64(move.Z)}
}

func arrayToMove(array pq.Int64Array) (*models.Move, error) {
	if array == nil {
		return nil, nil //nolint:nilnil
	}

	if len(array) != 3 { //nolint:mnd
		return nil, fmt.Errorf("%w: stored move has %d coordinates", models.ErrInvalidMove, len(array))
	}

	return &models.Move{X: int(array[0]), Y: int(array[1]), Z: int(array[2])}, nil
}
