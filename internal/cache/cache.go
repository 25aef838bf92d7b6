// Package cache provides a Redis-backed read cache for post lookups. All
// methods are safe to call on a nil *Cache, so the API runs without Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"blogapi/internal/models"
)

const (
	postKeyFormat    = "post:%d"
	latestKeyFormat  = "posts:latest:v%d:%d:%d" // version, page, count
	latestVersionKey = "posts:latest:version"
	entryTTL         = 5 * time.Minute
)

type Cache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func New(rdb *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{rdb: rdb, logger: logger}
}

type latestPage struct {
	Total int           `json:"total"`
	Posts []models.Post `json:"posts"`
}

func (c *Cache) GetPost(ctx context.Context, id int) (models.Post, bool) {
	if c == nil || c.rdb == nil {
		return models.Post{}, false
	}

	data, err := c.rdb.Get(ctx, fmt.Sprintf(postKeyFormat, id)).Bytes()
	if err != nil {
		return models.Post{}, false
	}

	var p models.Post
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Post{}, false
	}
	return p, true
}

func (c *Cache) SetPost(ctx context.Context, p models.Post) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(postKeyFormat, p.ID), data, entryTTL).Err(); err != nil {
		c.logger.Warn("failed to cache post", zap.Int("id", p.ID), zap.Error(err))
	}
}

func (c *Cache) InvalidatePost(ctx context.Context, id int) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, fmt.Sprintf(postKeyFormat, id)).Err(); err != nil {
		c.logger.Warn("failed to invalidate post", zap.Int("id", id), zap.Error(err))
	}
}

func (c *Cache) GetLatest(ctx context.Context, page, count int) ([]models.Post, int, bool) {
	if c == nil || c.rdb == nil {
		return nil, 0, false
	}

	version, err := c.rdb.Get(ctx, latestVersionKey).Int64()
	if err != nil {
		return nil, 0, false
	}

	data, err := c.rdb.Get(ctx, fmt.Sprintf(latestKeyFormat, version, page, count)).Bytes()
	if err != nil {
		return nil, 0, false
	}

	var entry latestPage
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, 0, false
	}
	return entry.Posts, entry.Total, true
}

func (c *Cache) SetLatest(ctx context.Context, page, count int, posts []models.Post, total int) {
	if c == nil || c.rdb == nil {
		return
	}

	version, err := c.rdb.Get(ctx, latestVersionKey).Int64()
	if err != nil {
		if err := c.rdb.Set(ctx, latestVersionKey, 0, 0).Err(); err != nil {
			return
		}
	}

	data, err := json.Marshal(latestPage{Total: total, Posts: posts})
	if err != nil {
		return
	}
	key := fmt.Sprintf(latestKeyFormat, version, page, count)
	if err := c.rdb.Set(ctx, key, data, entryTTL).Err(); err != nil {
		c.logger.Warn("failed to cache latest posts page", zap.Error(err))
	}
}

// InvalidateLatest bumps the listing version so every cached page goes stale.
// Stale entries expire via TTL.
func (c *Cache) InvalidateLatest(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, latestVersionKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate latest posts pages", zap.Error(err))
	}
}
