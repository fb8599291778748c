package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and checks the connection with a ping.
func NewClient(cfg *config.RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return client, nil
}

// LoginLimiter counts failed logins per identity within a fixed window.
type LoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func attemptsKey(identity string) string {
	return fmt.Sprintf("login_attempts:%s", strings.ToLower(identity))
}

// Blocked reports whether identity has reached the attempt limit.
func (l *LoginLimiter) Blocked(ctx context.Context, identity string) (bool, error) {
	n, err := l.client.Get(ctx, attemptsKey(identity)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to read login attempts", err, nil)
		return false, err
	}
	return n >= l.maxAttempts, nil
}

// Fail records one failed attempt; the first failure starts the window.
func (l *LoginLimiter) Fail(ctx context.Context, identity string) error {
	key := attemptsKey(identity)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Error("Failed to record login attempt", err, nil)
		return err
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			logger.Error("Failed to set login attempt window", err, nil)
			return err
		}
	}

	logger.Debug("Login failure recorded", map[string]interface{}{
		"attempts": n,
	})
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, identity string) error {
	return l.client.Del(ctx, attemptsKey(identity)).Err()
}
