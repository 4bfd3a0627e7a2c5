package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appbilling "github.com/spicetrade/backend/internal/application/billing"
	"github.com/spicetrade/backend/internal/infrastructure/config"
)

// Dismissals live as long as a working session plausibly does. The next
// login gets a fresh session ID, so reminders reappear regardless.
const dismissalTTL = 24 * time.Hour

// RedisDismissalStore implements the reminder DismissalStore on Redis.
// Suitable when more than one instance serves the back office.
type RedisDismissalStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDismissalStore creates a Redis-backed dismissal store
func NewRedisDismissalStore(cfg config.RedisConfig) (*RedisDismissalStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDismissalStore{
		client:    client,
		keyPrefix: "reminder:dismissed:",
	}, nil
}

// NewRedisDismissalStoreWithClient creates a store with an existing Redis client
func NewRedisDismissalStoreWithClient(client *redis.Client, keyPrefix string) *RedisDismissalStore {
	if keyPrefix == "" {
		keyPrefix = "reminder:dismissed:"
	}
	return &RedisDismissalStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisDismissalStore) key(sessionID string, billID uuid.UUID) string {
	return s.keyPrefix + sessionID + ":" + billID.String()
}

// Dismiss marks a bill's reminder as dismissed for this session
func (s *RedisDismissalStore) Dismiss(ctx context.Context, sessionID string, billID uuid.UUID) error {
	if err := s.client.Set(ctx, s.key(sessionID, billID), "1", dismissalTTL).Err(); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}
	return nil
}

// IsDismissed checks whether a bill's reminder was dismissed in this session
func (s *RedisDismissalStore) IsDismissed(ctx context.Context, sessionID string, billID uuid.UUID) (bool, error) {
	exists, err := s.client.Exists(ctx, s.key(sessionID, billID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check dismissal: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client
func (s *RedisDismissalStore) Close() error {
	return s.client.Close()
}

var _ appbilling.DismissalStore = (*RedisDismissalStore)(nil)
