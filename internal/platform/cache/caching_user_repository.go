// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/usecase"
)

// ListKey is the cache key holding the first page of the user listing.
const ListKey = "users"

// DefaultTTL is the lifetime of a cache entry when none is configured.
const DefaultTTL = 60 * time.Second

// CachingUserRepository decorates a UserRepository with Redis caching.
// Single-user and first-page list reads are memoized for a short TTL;
// every write passes through to the inner repository and then drops the
// affected keys, so explicit mutation never waits for TTL expiry.
// The store stays the source of truth: the cache is best effort and a
// nil Redis client disables it entirely.
type CachingUserRepository struct {
	inner usecase.UserRepository
	rdb   *redis.Client
	ttl   time.Duration
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// listEntry is the serialized form of a cached listing page.
type listEntry struct {
	Users []entity.User `json:"users"`
	Total int64         `json:"total"`
}

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0 or negative, it defaults to DefaultTTL.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachingUserRepository{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
	}
}

// UserKey returns the cache key for a single user.
func UserKey(id uint) string {
	return fmt.Sprintf("user_%d", id)
}

// FindByID retrieves a user, checking the cache first and falling back
// to the inner repository on a miss.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := UserKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return u, nil
}

// List retrieves a listing page. Only the first page is cached, under
// ListKey; other pages always hit the inner repository.
func (c *CachingUserRepository) List(ctx context.Context, page, perPage int) ([]entity.User, int64, error) {
	if c.rdb == nil || page != 1 || perPage != usecase.DefaultPerPage {
		return c.inner.List(ctx, page, perPage)
	}

	if b, err := c.rdb.Get(ctx, ListKey).Bytes(); err == nil && len(b) > 0 {
		var e listEntry
		if err := json.Unmarshal(b, &e); err == nil {
			return e.Users, e.Total, nil
		}
		_ = c.rdb.Del(ctx, ListKey).Err()
	}

	users, total, err := c.inner.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, err
	}

	if b, err := json.Marshal(listEntry{Users: users, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, ListKey, b, c.ttl).Err()
	}

	return users, total, nil
}

// FindByEmail is a pass-through; login lookups are never cached because
// they include the password hash.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// Create persists a new user and invalidates the cached listing.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := c.inner.Create(ctx, u); err != nil {
		return err
	}
	c.forget(ctx, ListKey)
	return nil
}

// Update applies a partial update and invalidates both the per-user
// entry and the cached listing.
func (c *CachingUserRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if err := c.inner.Update(ctx, id, fields); err != nil {
		return err
	}
	c.forget(ctx, UserKey(id), ListKey)
	return nil
}

// Delete removes a user and invalidates both the per-user entry and the
// cached listing.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.forget(ctx, UserKey(id), ListKey)
	return nil
}

// forget drops keys unconditionally. Best effort: a failed delete only
// shortens to the TTL boundary, it never breaks correctness of the store.
func (c *CachingUserRepository) forget(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}
