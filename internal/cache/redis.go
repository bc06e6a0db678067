package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wookrail/trainbooking/config"
	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/railapi"
)

// RedisCache backs two concerns: server-side session tokens and the
// route-directory lookup cache.
type RedisCache struct {
	client     *redis.Client
	sessionTTL time.Duration
	routeTTL   time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionTTL, routeTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionTTL: sessionTTL,
		routeTTL:   routeTTL,
	}
}

// CreateSession issues an opaque token bound to the owner's username.
func (c *RedisCache) CreateSession(ctx context.Context, owner string) (string, error) {
	token := uuid.NewString()
	if err := c.client.Set(ctx, sessionKey(token), owner, c.sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// SessionOwner resolves a token to its owner. Unknown or expired tokens
// report domain.ErrUnauthorized.
func (c *RedisCache) SessionOwner(ctx context.Context, token string) (string, error) {
	owner, err := c.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	return owner, nil
}

func (c *RedisCache) RevokeSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

func (c *RedisCache) GetRoute(ctx context.Context, trainNo string) ([]domain.RouteStop, error) {
	data, err := c.client.Get(ctx, routeKey(trainNo)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var route []domain.RouteStop
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, err
	}
	return route, nil
}

func (c *RedisCache) SetRoute(ctx context.Context, trainNo string, route []domain.RouteStop) error {
	payload, err := json.Marshal(route)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, routeKey(trainNo), payload, c.routeTTL).Err()
}

func (c *RedisCache) GetSearch(ctx context.Context, source, destination string) ([]domain.Train, error) {
	data, err := c.client.Get(ctx, searchKey(source, destination)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var trains []domain.Train
	if err := json.Unmarshal(data, &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, source, destination string, trains []domain.Train) error {
	payload, err := json.Marshal(trains)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(source, destination), payload, c.routeTTL).Err()
}

// GetTimetable returns the cached raw time-table dataset used by the
// station-pair search, or nil when not cached.
func (c *RedisCache) GetTimetable(ctx context.Context) ([]railapi.Record, error) {
	data, err := c.client.Get(ctx, timetableKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var records []railapi.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *RedisCache) SetTimetable(ctx context.Context, records []railapi.Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, timetableKey(), payload, c.routeTTL).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}

func routeKey(trainNo string) string {
	return "cache:route:" + trainNo
}

func searchKey(source, destination string) string {
	return fmt.Sprintf("cache:search:%s:%s", source, destination)
}

func timetableKey() string {
	return "cache:timetable"
}
