// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"penduduk_backend/internal/feature/residents/domain/entity"
	"penduduk_backend/internal/feature/residents/usecase"
)

// CachingResidentRepository decorates a ResidentRepository with Redis caching.
// List pages and single records are cached with a TTL; every mutation
// invalidates the whole namespace, which is cheap at registry scale and
// keeps readers from ever seeing a deleted or renamed resident.
type CachingResidentRepository struct {
	inner     usecase.ResidentRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator still satisfies the interface.
var _ usecase.ResidentRepository = (*CachingResidentRepository)(nil)

// cachedPage is the stored form of one list query result.
type cachedPage struct {
	Items []entity.Resident `json:"items"`
	Total int64             `json:"total"`
}

// NewCachingResidentRepository decorates a ResidentRepository with Redis
// caching. If ttl is 0 it defaults to 5 minutes; an empty namespace becomes
// "residents". A nil client disables caching entirely.
func NewCachingResidentRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ResidentRepository, namespace string) *CachingResidentRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "residents"
	}
	return &CachingResidentRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID retrieves a resident, checking the cache first.
func (c *CachingResidentRepository) FindByID(ctx context.Context, id uint) (*entity.Resident, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Resident
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// List retrieves one page of residents, checking the cache first.
func (c *CachingResidentRepository) List(ctx context.Context, search string, page, pageSize int) ([]entity.Resident, int64, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, search, page, pageSize)
	}

	key := c.listKey(search, page, pageSize)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out cachedPage
		if err := json.Unmarshal(b, &out); err == nil {
			return out.Items, out.Total, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	items, total, err := c.inner.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if b, err := json.Marshal(cachedPage{Items: items, Total: total}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return items, total, nil
}

// Create inserts a resident and invalidates the cache namespace.
func (c *CachingResidentRepository) Create(ctx context.Context, r *entity.Resident) error {
	if err := c.inner.Create(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update saves a resident and invalidates the cache namespace.
func (c *CachingResidentRepository) Update(ctx context.Context, r *entity.Resident) error {
	if err := c.inner.Update(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a resident and invalidates the cache namespace.
func (c *CachingResidentRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every cached entry in the namespace, best effort.
func (c *CachingResidentRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// idKey generates the cache key for a single resident.
func (c *CachingResidentRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// listKey generates the cache key for one list query.
func (c *CachingResidentRepository) listKey(search string, page, pageSize int) string {
	return fmt.Sprintf("%s:list:%s:%d:%d", c.namespace, safe(strings.ToLower(search)), page, pageSize)
}

// safe normalizes a term for use inside a cache key.
func safe(s string) string {
	return strings.NewReplacer(":", "_", " ", "_").Replace(s)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingResidentRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
