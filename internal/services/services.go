package services

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/engine"
	"github.com/redis/go-redis/v9"
)

// Services contains the engine and the connections to the external services.
// Postgres and Redis are nil when they are not configured.
type Services struct {
	Engine   *engine.Engine
	Postgres *sqlx.DB
	Redis    *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	services := &Services{
		Engine: NewEngine(cfg),
	}

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		services.Postgres = postgres
	} else {
		slog.Info("Postgres is not configured, decisions will not be logged")
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		services.Redis = redis
	} else {
		slog.Info("Redis is not configured, decision stats are disabled")
	}

	return services, nil
}

// NewEngine creates the move engine from the configuration.
func NewEngine(cfg *config.ServerConfig) *engine.Engine {
	var opts []engine.Option
	if cfg.DFPNMaxSteps > 0 {
		opts = append(opts, engine.WithDFPNMaxSteps(cfg.DFPNMaxSteps))
	}
	if cfg.DecisionCacheSize > 0 {
		opts = append(opts, engine.WithCache(engine.NewCache(cfg.DecisionCacheSize)))
	}
	return engine.New(opts...)
}

// Close closes the connections to the external services.
func (s *Services) Close() error {
	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			return fmt.Errorf("error closing Postgres: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("error closing Redis: %w", err)
		}
	}

	return nil
}
