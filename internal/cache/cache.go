// Package cache memoizes parse results keyed by the SHA-256 of the document
// content. Entries live in a Store; concurrent misses for the same content
// are collapsed into a single computation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long an entry stays valid.
const DefaultTTL = 24 * time.Hour

// Store is a byte-oriented key/value backend with expiry.
type Store interface {
	// Get returns the value for key. A missing or expired key reports
	// found=false with a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear removes entries older than maxAge, or every entry when maxAge is
	// not positive, and returns how many were removed.
	Clear(ctx context.Context, maxAge time.Duration) (int, error)
}

// Error wraps a backend failure.
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("cache %s: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Key returns the hex SHA-256 of content.
func Key(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Cache fronts a Store with content hashing and singleflight.
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
	log   zerolog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for write failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// New wraps store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, ttl: DefaultTTL, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for content, calling compute on a miss and
// storing its result. A read failure is returned to the caller; a failed
// write is only logged since the computed value is still good.
func (c *Cache) Fetch(ctx context.Context, content string, compute func() ([]byte, error)) ([]byte, error) {
	key := Key(content)

	value, found, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}
	if found {
		return value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := compute()
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.log.Warn().Err(&Error{Op: "set", Key: key, Cause: err}).Msg("failed to store parse result")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Clear removes entries older than maxAge, or all entries when maxAge is not
// positive.
func (c *Cache) Clear(ctx context.Context, maxAge time.Duration) (int, error) {
	n, err := c.store.Clear(ctx, maxAge)
	if err != nil {
		return n, &Error{Op: "clear", Cause: err}
	}
	return n, nil
}
