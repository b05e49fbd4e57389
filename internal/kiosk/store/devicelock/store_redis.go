package devicelock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"punchclock/internal/kiosk/models"
)

const (
	defaultKeyPrefix = "kiosk:device:"
	maxCASRetries    = 5

	fieldFailed      = "failed"
	fieldLockedUntil = "locked_until"
	fieldLastAttempt = "last_attempt"
)

// ErrContention is returned when an update keeps losing the optimistic
// WATCH race for the same key.
var ErrContention = errors.New("device lock update contended")

// Redis shares device lock state between processes. Each key is a hash that
// expires TTL after its last write.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type RedisOption func(*Redis)

// WithKeyPrefix namespaces keys, e.g. per deployment.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		s.prefix = prefix + defaultKeyPrefix
	}
}

func NewRedis(client *redis.Client, ttl time.Duration, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		ttl:    ttl,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Redis) Get(ctx context.Context, key models.DeviceKey, now time.Time) (models.DeviceLockState, error) {
	vals, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return models.DeviceLockState{}, fmt.Errorf("get device lock: %w", err)
	}
	state, err := decodeState(vals)
	if err != nil {
		return models.DeviceLockState{}, err
	}
	if state.IdleAt(now, s.ttl) {
		return models.DeviceLockState{}, nil
	}
	return state, nil
}

// Update runs a WATCH/MULTI compare-and-set of the key's state, retrying
// when another writer touched the key in between.
func (s *Redis) Update(ctx context.Context, key models.DeviceKey, now time.Time, fn func(*models.DeviceLockState)) (models.DeviceLockState, error) {
	k := s.key(key)
	var updated models.DeviceLockState

	txf := func(tx *redis.Tx) error {
		vals, err := tx.HGetAll(ctx, k).Result()
		if err != nil {
			return err
		}
		state, err := decodeState(vals)
		if err != nil {
			return err
		}
		if state.IdleAt(now, s.ttl) {
			state = models.DeviceLockState{}
		}
		fn(&state)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, encodeState(state))
			pipe.PExpire(ctx, k, s.ttl)
			return nil
		})
		if err == nil {
			updated = state
		}
		return err
	}

	for range maxCASRetries {
		err := s.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return models.DeviceLockState{}, fmt.Errorf("update device lock: %w", err)
		}
		return updated, nil
	}
	return models.DeviceLockState{}, ErrContention
}

func (s *Redis) Delete(ctx context.Context, key models.DeviceKey) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("delete device lock: %w", err)
	}
	return nil
}

func (s *Redis) key(key models.DeviceKey) string {
	return s.prefix + key.String()
}

func encodeState(state models.DeviceLockState) map[string]any {
	return map[string]any{
		fieldFailed:      state.FailedAttempts,
		fieldLockedUntil: unixMilli(state.LockedUntil),
		fieldLastAttempt: unixMilli(state.LastAttemptAt),
	}
}

func decodeState(vals map[string]string) (models.DeviceLockState, error) {
	var state models.DeviceLockState
	if len(vals) == 0 {
		return state, nil
	}
	failed, err := strconv.Atoi(vals[fieldFailed])
	if err != nil {
		return state, fmt.Errorf("decode device lock %s: %w", fieldFailed, err)
	}
	lockedUntil, err := parseMilli(vals[fieldLockedUntil])
	if err != nil {
		return state, fmt.Errorf("decode device lock %s: %w", fieldLockedUntil, err)
	}
	lastAttempt, err := parseMilli(vals[fieldLastAttempt])
	if err != nil {
		return state, fmt.Errorf("decode device lock %s: %w", fieldLastAttempt, err)
	}
	state.FailedAttempts = failed
	state.LockedUntil = lockedUntil
	state.LastAttemptAt = lastAttempt
	return state, nil
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func parseMilli(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
