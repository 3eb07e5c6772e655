package participant

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

const (
	// Key prefixes for Redis
	participantKeyPrefix = "participant:"
	onlineKey            = "participants:online"
)

// Config holds configuration for the Redis participant registry
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed participant registry
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func participantKey(id models.ParticipantID) string {
	return fmt.Sprintf("%s%s", participantKeyPrefix, id)
}

// Online returns every connected participant ordered by ID
func (r *redisRepository) Online(ctx context.Context) ([]*models.Participant, error) {
	ids, err := r.client.SMembers(ctx, onlineKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get online participants: %w", err)
	}

	if len(ids) == 0 {
		return []*models.Participant{}, nil
	}

	// Fetch every record in one round trip
	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.StringCmd, len(ids))
	for _, id := range ids {
		commands[id] = pipe.Get(ctx, participantKey(models.ParticipantID(id)))
	}

	// redis.Nil from a single command surfaces here too; it is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(ids))
	for id, cmd := range commands {
		data, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Removed between reading the set and fetching the record
				continue
			}
			return nil, fmt.Errorf("failed to get participant %s: %w", id, err)
		}

		var p models.Participant
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant %s: %w", id, err)
		}
		participants = append(participants, &p)
	}

	slices.SortFunc(participants, func(a, b *models.Participant) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return participants, nil
}

// Get retrieves a connected participant from Redis
func (r *redisRepository) Get(ctx context.Context, id models.ParticipantID) (*models.Participant, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	data, err := r.client.Get(ctx, participantKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, platform.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	var p models.Participant
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
	}
	return &p, nil
}

// Upsert persists a connection to Redis
func (r *redisRepository) Upsert(ctx context.Context, input *UpsertInput) error {
	if input == nil || input.Participant == nil {
		return ErrNilInput
	}
	if input.Participant.ID == "" {
		return ErrEmptyID
	}

	data, err := json.Marshal(input.Participant)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, participantKey(input.Participant.ID), data, 0)
	pipe.SAdd(ctx, onlineKey, string(input.Participant.ID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}
	return nil
}

// Remove drops a connection from Redis
func (r *redisRepository) Remove(ctx context.Context, input *RemoveInput) error {
	if input == nil || input.ParticipantID == "" {
		return ErrEmptyID
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, participantKey(input.ParticipantID))
	pipe.SRem(ctx, onlineKey, string(input.ParticipantID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

// UpdateLocation rewrites the stored location of a connected participant
func (r *redisRepository) UpdateLocation(ctx context.Context, input *UpdateLocationInput) error {
	if input == nil || input.ParticipantID == "" {
		return ErrEmptyID
	}

	p, err := r.Get(ctx, input.ParticipantID)
	if err != nil {
		return err
	}
	p.Location = input.Location

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	// XX keeps a concurrent Remove from being undone
	if err := r.client.SetXX(ctx, participantKey(p.ID), data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update participant location: %w", err)
	}
	return nil
}
