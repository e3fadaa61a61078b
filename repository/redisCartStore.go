package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/decorshop/models"
	"github.com/redis/go-redis/v9"
)

// maxCartUpdateRetries bounds how often Update re-runs after losing a
// WATCH race. A writer only loses when another writer commits in between,
// so this many concurrent writers on one cart always succeed.
const maxCartUpdateRetries = 10

var ErrCartContention = errors.New("cart update retries exhausted")

type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisCartStore) getKey(key string) string {
	return fmt.Sprintf("cart:session:%s", key)
}

func (s *RedisCartStore) read(ctx context.Context, cmd redis.Cmdable, key string) (*models.Cart, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

func (s *RedisCartStore) Get(ctx context.Context, key string) (*models.Cart, error) {
	return s.read(ctx, s.client, s.getKey(key))
}

// Update runs fn inside a WATCH/MULTI transaction and retries when another
// writer touched the cart in between.
func (s *RedisCartStore) Update(ctx context.Context, key string, fn func(cart *models.Cart) error) error {
	redisKey := s.getKey(key)

	txf := func(tx *redis.Tx) error {
		cart, err := s.read(ctx, tx, redisKey)
		if errors.Is(err, ErrNotFound) {
			cart = &models.Cart{}
		} else if err != nil {
			return err
		}

		if err := fn(cart); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if cart.IsEmpty() {
				pipe.Del(ctx, redisKey)
				return nil
			}
			cart.UpdatedAt = time.Now().UTC()
			data, err := json.Marshal(cart)
			if err != nil {
				return err
			}
			pipe.Set(ctx, redisKey, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxCartUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, redisKey)
		if errors.Is(err, redis.TxFailedErr) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		return err
	}
	return ErrCartContention
}

func (s *RedisCartStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.getKey(key)).Err()
}
