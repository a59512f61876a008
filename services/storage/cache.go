package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wanderly/models"

	"github.com/go-redis/redis/v8"
)

const (
	prefsPrefix    = "wanderly:prefs:"
	bookingsPrefix = "wanderly:bookings:"

	// maxBookingHistory caps the cached booking list per user.
	maxBookingHistory = 50

	maxAppendAttempts = 5
)

// ErrConcurrentUpdate is returned when the booking list kept changing under AppendBooking.
var ErrConcurrentUpdate = errors.New("booking history changed concurrently")

// UserCache persists per-user preferences and booking history between sessions.
type UserCache interface {
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	SetPreferences(ctx context.Context, userID string, prefs models.Preferences) error
	GetBookingHistory(ctx context.Context, userID string) ([]models.BookingOutcome, error)
	AppendBooking(ctx context.Context, userID string, outcome models.BookingOutcome) error
	Clear(ctx context.Context, userID string) error
}

type envelope struct {
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisUserCache{client: client, ttl: ttl, now: time.Now}
}

// GetPreferences returns nil without error when nothing fresh is cached.
func (c *RedisUserCache) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	var prefs models.Preferences
	ok, err := c.load(ctx, prefsPrefix+userID, &prefs)
	if err != nil || !ok {
		return nil, err
	}
	return &prefs, nil
}

func (c *RedisUserCache) SetPreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	return c.store(ctx, prefsPrefix+userID, prefs)
}

func (c *RedisUserCache) GetBookingHistory(ctx context.Context, userID string) ([]models.BookingOutcome, error) {
	var history []models.BookingOutcome
	if _, err := c.load(ctx, bookingsPrefix+userID, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// AppendBooking adds outcome to the end of the cached history, most recent last.
// The read and write run under WATCH so concurrent sessions of one user do not drop bookings.
func (c *RedisUserCache) AppendBooking(ctx context.Context, userID string, outcome models.BookingOutcome) error {
	key := bookingsPrefix + userID
	txf := func(tx *redis.Tx) error {
		var history []models.BookingOutcome
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil {
			if _, err := c.decode(raw, &history); err != nil {
				return err
			}
		}
		history = append(history, outcome)
		if len(history) > maxBookingHistory {
			history = history[len(history)-maxBookingHistory:]
		}
		b, err := c.encode(history)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, c.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxAppendAttempts; i++ {
		err := c.client.Watch(ctx, txf, key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return ErrConcurrentUpdate
}

func (c *RedisUserCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx, prefsPrefix+userID, bookingsPrefix+userID).Err()
}

func (c *RedisUserCache) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.decode(raw, dst)
}

// decode unwraps an envelope into dst. Stale envelopes report false.
func (c *RedisUserCache) decode(raw []byte, dst interface{}) (bool, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, err
	}
	if c.now().Sub(env.SavedAt) > c.ttl {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisUserCache) encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{SavedAt: c.now(), Data: data})
}

func (c *RedisUserCache) store(ctx context.Context, key string, v interface{}) error {
	b, err := c.encode(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}
