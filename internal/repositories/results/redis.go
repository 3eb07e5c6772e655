package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/eventtools/internal/models"
)

const (
	// Key prefixes for Redis
	resultKeyPrefix = "event_result:"
	resultsIndexKey = "event_results"

	// DefaultMaxResults bounds the archive when Config.MaxResults is zero
	DefaultMaxResults = 100
)

var _ Repository = (*redisRepository)(nil)

// ErrResultNotFound is returned when a run has no archived result
var ErrResultNotFound = errors.New("event result not found")

// Config holds configuration for the Redis result archive
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxResults is how many results are kept, oldest are trimmed first
	MaxResults int
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client     *redis.Client
	maxResults int
}

// NewRedis creates a new Redis-backed result archive
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		maxResults: maxResults,
	}, nil
}

// SaveResult persists a finished event and trims the archive
func (r *redisRepository) SaveResult(ctx context.Context, result *models.EventResult) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}
	if result.RunID == "" {
		return errors.New("run ID cannot be empty")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, resultKeyPrefix+result.RunID, data, 0)
	pipe.ZAdd(ctx, resultsIndexKey, redis.Z{
		Score:  float64(result.EndedAt.UnixNano()),
		Member: result.RunID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return r.trim(ctx)
}

// trim drops everything older than the newest maxResults entries
func (r *redisRepository) trim(ctx context.Context) error {
	stale, err := r.client.ZRange(ctx, resultsIndexKey, 0, int64(-r.maxResults-1)).Result()
	if err != nil {
		return fmt.Errorf("failed to read stale results: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	keys := make([]string, 0, len(stale))
	members := make([]any, 0, len(stale))
	for _, runID := range stale {
		keys = append(keys, resultKeyPrefix+runID)
		members = append(members, runID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, resultsIndexKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to trim results: %w", err)
	}
	return nil
}

// GetResult retrieves a finished event by run ID
func (r *redisRepository) GetResult(ctx context.Context, runID string) (*models.EventResult, error) {
	if runID == "" {
		return nil, errors.New("run ID cannot be empty")
	}

	data, err := r.client.Get(ctx, resultKeyPrefix+runID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result models.EventResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

// GetRecent returns up to limit finished events, newest first
func (r *redisRepository) GetRecent(ctx context.Context, limit int) ([]*models.EventResult, error) {
	if limit <= 0 {
		return []*models.EventResult{}, nil
	}

	runIDs, err := r.client.ZRevRange(ctx, resultsIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get result IDs: %w", err)
	}
	if len(runIDs) == 0 {
		return []*models.EventResult{}, nil
	}

	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, 0, len(runIDs))
	for _, runID := range runIDs {
		commands = append(commands, pipe.Get(ctx, resultKeyPrefix+runID))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	results := make([]*models.EventResult, 0, len(runIDs))
	for i, cmd := range commands {
		data, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get result %s: %w", runIDs[i], err)
		}

		var result models.EventResult
		if err := json.Unmarshal([]byte(data), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result %s: %w", runIDs[i], err)
		}
		results = append(results, &result)
	}
	return results, nil
}
