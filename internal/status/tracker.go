// Package status tracks the lifecycle of notifications in Redis. Records
// are best-effort telemetry: they expire after a retention window and a
// query after expiry returns ErrNotFound even for processed notifications.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/retry"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

// ErrNotFound is returned when no record exists for a key, either because
// it was never written or because its TTL expired.
var ErrNotFound = errors.New("status record not found")

const (
	keyIdemPrefix    = "notify:status:idem:"
	keyRequestPrefix = "notify:status:req:"
	keyIDPrefix      = "notify:status:id:"
)

// kv is the slice of the key-value store the tracker needs. The store must
// provide an atomic set-if-absent so concurrent first-submits race on a
// single conditional write rather than on a get-then-set window.
type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// Tracker stores one StatusRecord per notification under three keys: the
// idempotency key, the client request id and the notification id.
type Tracker struct {
	store kv
	ttl   time.Duration
}

// New creates a tracker over a Redis client with the given retention window.
func New(rdb *redis.Client, ttl time.Duration, strategy retry.Strategy) *Tracker {
	return newTracker(&redisKV{rdb: rdb, strategy: strategy}, ttl)
}

func newTracker(store kv, ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tracker{store: store, ttl: ttl}
}

// Reserve atomically creates the record for a new idempotency key. It
// returns false without writing anything when a record already exists,
// which makes it the at-most-once enqueue guard at the boundary.
func (t *Tracker) Reserve(ctx context.Context, idemKey string, rec model.StatusRecord) (bool, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("marshal status record: %w", err)
	}

	ok, err := t.store.SetNX(ctx, keyIdemPrefix+idemKey, string(payload), t.ttl)
	if err != nil {
		return false, fmt.Errorf("reserve status record: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := t.writeAliases(ctx, rec, string(payload)); err != nil {
		return true, err
	}
	return true, nil
}

// Release removes a reservation left by Reserve when the publish that
// followed it failed, so no partial state survives a rejected submit.
func (t *Tracker) Release(ctx context.Context, idemKey string, rec model.StatusRecord) error {
	keys := []string{
		keyIdemPrefix + idemKey,
		keyRequestPrefix + rec.RequestID,
		keyIDPrefix + rec.NotificationID.String(),
	}
	if err := t.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("release status record: %w", err)
	}
	return nil
}

// Set overwrites the record for an existing notification on a lifecycle
// transition. The retention window restarts on every write.
func (t *Tracker) Set(ctx context.Context, idemKey string, rec model.StatusRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal status record: %w", err)
	}

	if err := t.store.Set(ctx, keyIdemPrefix+idemKey, string(payload), t.ttl); err != nil {
		return fmt.Errorf("set status record: %w", err)
	}
	return t.writeAliases(ctx, rec, string(payload))
}

func (t *Tracker) writeAliases(ctx context.Context, rec model.StatusRecord, payload string) error {
	if err := t.store.Set(ctx, keyRequestPrefix+rec.RequestID, payload, t.ttl); err != nil {
		return fmt.Errorf("set status record by request id: %w", err)
	}
	if err := t.store.Set(ctx, keyIDPrefix+rec.NotificationID.String(), payload, t.ttl); err != nil {
		return fmt.Errorf("set status record by notification id: %w", err)
	}
	return nil
}

// GetByIdemKey looks a record up by its idempotency key.
func (t *Tracker) GetByIdemKey(ctx context.Context, idemKey string) (model.StatusRecord, error) {
	return t.get(ctx, keyIdemPrefix+idemKey)
}

// GetByRequestID looks a record up by the client-supplied request id.
func (t *Tracker) GetByRequestID(ctx context.Context, requestID string) (model.StatusRecord, error) {
	return t.get(ctx, keyRequestPrefix+requestID)
}

// GetByID looks a record up by notification id.
func (t *Tracker) GetByID(ctx context.Context, id uuid.UUID) (model.StatusRecord, error) {
	return t.get(ctx, keyIDPrefix+id.String())
}

func (t *Tracker) get(ctx context.Context, key string) (model.StatusRecord, error) {
	payload, err := t.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.StatusRecord{}, ErrNotFound
		}
		return model.StatusRecord{}, fmt.Errorf("get status record: %w", err)
	}

	var rec model.StatusRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return model.StatusRecord{}, fmt.Errorf("unmarshal status record: %w", err)
	}
	return rec, nil
}

// redisKV adapts the wbf Redis client to the kv interface. Reads go through
// the client's retry helper; conditional and TTL writes use the underlying
// go-redis client directly.
type redisKV struct {
	rdb      *redis.Client
	strategy retry.Strategy
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.GetWithRetry(ctx, r.strategy, key)
	if err != nil {
		if errors.Is(err, redisv8.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return retry.Do(func() error {
		// The wrapper's own Set takes no expiry; go through the embedded
		// client so the record's TTL is honored.
		return r.rdb.Client.Set(ctx, key, value, ttl).Err()
	}, r.strategy)
}

func (r *redisKV) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	var ok bool
	err := retry.Do(func() error {
		var err error
		ok, err = r.rdb.SetNX(ctx, key, value, ttl).Result()
		return err
	}, r.strategy)
	return ok, err
}

func (r *redisKV) Del(ctx context.Context, keys ...string) error {
	return retry.Do(func() error {
		return r.rdb.Del(ctx, keys...).Err()
	}, r.strategy)
}
