package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cartscout-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	cartViewPrefix       = "view:cart:"
	comparisonViewPrefix = "view:comparison:"
	navigatorPrefix      = "navigator:"
)

// RedisCache holds the derived read views ("cart", "cart comparison") and the
// per-session comparison navigator state. Both views for an owner are
// invalidated together after every successful cart mutation, since both
// derive from the same upstream cart.
type RedisCache struct {
	client       *redis.Client
	viewTTL      time.Duration
	navigatorTTL time.Duration
}

func NewRedisCache(client *redis.Client, viewTTL, navigatorTTL time.Duration) *RedisCache {
	if viewTTL <= 0 {
		viewTTL = 2 * time.Minute
	}
	if navigatorTTL <= 0 {
		navigatorTTL = 24 * time.Hour
	}
	return &RedisCache{client: client, viewTTL: viewTTL, navigatorTTL: navigatorTTL}
}

// NewRedisClient connects and pings a redis instance.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// GetCartView returns the cached canonical cart for an owner, if present.
func (c *RedisCache) GetCartView(ctx context.Context, ownerKey string) (*models.NormalizedCart, error) {
	var cart models.NormalizedCart
	found, err := c.getJSON(ctx, cartViewPrefix+ownerKey, &cart)
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

// SetCartView caches the canonical cart for an owner.
func (c *RedisCache) SetCartView(ctx context.Context, ownerKey string, cart models.NormalizedCart) error {
	return c.setJSON(ctx, cartViewPrefix+ownerKey, cart, c.viewTTL)
}

// GetComparisonView returns the cached comparison list for an owner, if
// present.
func (c *RedisCache) GetComparisonView(ctx context.Context, ownerKey string) ([]models.ShopComparison, error) {
	var shops []models.ShopComparison
	found, err := c.getJSON(ctx, comparisonViewPrefix+ownerKey, &shops)
	if err != nil || !found {
		return nil, err
	}
	return shops, nil
}

// SetComparisonView caches the comparison list for an owner.
func (c *RedisCache) SetComparisonView(ctx context.Context, ownerKey string, shops []models.ShopComparison) error {
	return c.setJSON(ctx, comparisonViewPrefix+ownerKey, shops, c.viewTTL)
}

// InvalidateCartViews drops both derived read views for an owner.
func (c *RedisCache) InvalidateCartViews(ctx context.Context, ownerKey string) error {
	err := c.client.Del(ctx, cartViewPrefix+ownerKey, comparisonViewPrefix+ownerKey).Err()
	if err != nil {
		return fmt.Errorf("failed to invalidate cart views for %s: %w", ownerKey, err)
	}
	return nil
}

// GetNavigator loads the persisted navigator state for an owner. A missing
// state is the zero state, not an error.
func (c *RedisCache) GetNavigator(ctx context.Context, ownerKey string) (models.NavigatorState, error) {
	var state models.NavigatorState
	_, err := c.getJSON(ctx, navigatorPrefix+ownerKey, &state)
	if err != nil {
		return models.NavigatorState{}, err
	}
	return state, nil
}

// SaveNavigator persists the navigator state for an owner.
func (c *RedisCache) SaveNavigator(ctx context.Context, ownerKey string, state models.NavigatorState) error {
	state.UpdatedAt = time.Now().UTC()
	return c.setJSON(ctx, navigatorPrefix+ownerKey, state, c.navigatorTTL)
}

func (c *RedisCache) getJSON(ctx context.Context, key string, target interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), target); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}
