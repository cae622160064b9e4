// Package store provides the shared last-good rate store backed by Redis.
// It mirrors the in-process cache so multiple API instances warm-start from
// the most recent rate any of them fetched.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sendrail/fxrates/internal/rates"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) key(instrument string) string {
	return fmt.Sprintf("rate:last:%s", instrument)
}

// SaveQuote stores the latest successful quote for the instrument.
func (s *RedisStore) SaveQuote(ctx context.Context, quote rates.Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	if err := s.client.Set(ctx, s.key(quote.Instrument), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set quote in redis: %w", err)
	}
	return nil
}

// LoadQuote returns the stored quote for the instrument, or nil when none
// exists.
func (s *RedisStore) LoadQuote(ctx context.Context, instrument string) (*rates.Quote, error) {
	data, err := s.client.Get(ctx, s.key(instrument)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote from redis: %w", err)
	}

	var quote rates.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return &quote, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
