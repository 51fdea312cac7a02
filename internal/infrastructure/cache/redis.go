package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"collab-match/internal/config"
)

var ErrUnavailable = errors.New("redis unavailable")

// defaultRetryAfter is how long the cache is bypassed after a failed call.
const defaultRetryAfter = 15 * time.Second

// Redis is a JSON cache that steps aside while the server cannot be reached.
// Callers never need to special-case a missing cache. After a failure calls
// are skipped for retryAfter, then the next call tries the server again.
type Redis struct {
	client     *redis.Client
	logger     *log.Logger
	defaultTTL time.Duration
	retryAfter time.Duration
	now        func() time.Time

	// downUntil is a unix-nano deadline, zero while the server answers.
	downUntil         atomic.Int64
	warnedUnavailable atomic.Bool
}

// NewRedis connects using cfg. Without a configured host every call is
// bypassed. A server that does not answer the first ping is kept and retried
// later, since go-redis redials lazily.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *log.Logger) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 600 * time.Second
	}
	if !cfg.Enabled() {
		return newRedis(nil, ttl, logger)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	r := newRedis(client, ttl, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = r.Ping(pingCtx)
	return r
}

// NewRedisFromClient wraps an existing client, mainly for tests.
func NewRedisFromClient(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	return newRedis(client, ttl, logger)
}

func newRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	return &Redis{client: client, logger: logger, defaultTTL: ttl, retryAfter: defaultRetryAfter, now: time.Now}
}

// Enabled reports whether a server was configured at all.
func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

// Available reports whether calls currently go to the server.
func (r *Redis) Available() bool {
	if !r.Enabled() {
		return false
	}
	until := r.downUntil.Load()
	return until == 0 || r.now().UnixNano() >= until
}

func (r *Redis) markDown(err error) {
	r.downUntil.Store(r.now().Add(r.retryAfter).UnixNano())
	if r.logger != nil && r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing cache", "addr", r.client.Options().Addr, "err", err, "retry_after", r.retryAfter)
	}
}

func (r *Redis) markUp() {
	if r.downUntil.Swap(0) == 0 {
		return
	}
	r.warnedUnavailable.Store(false)
	if r.logger != nil {
		r.logger.Info("redis reachable again")
	}
}

// Ping always asks the server, even while calls are being bypassed, and
// updates availability from the answer.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return ErrUnavailable
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		r.markDown(err)
		return err
	}
	r.markUp()
	return nil
}

func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.markUp()
			return false, nil
		}
		r.markDown(err)
		return false, err
	}
	r.markUp()
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.markDown(err)
		return err
	}
	r.markUp()
	return nil
}
