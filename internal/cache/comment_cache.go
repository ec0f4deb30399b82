package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/smowhabuth/SKBday/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyDay = "comments:day:"

// CommentCache caches per-day comment lists (with authors) in Redis.
type CommentCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCommentCache returns a new CommentCache.
func NewCommentCache(rdb *redis.Client, ttl time.Duration) *CommentCache {
	return &CommentCache{rdb: rdb, ttl: ttl}
}

// GetDay returns the cached list for day or nil on miss.
func (c *CommentCache) GetDay(ctx context.Context, day int) ([]dom.CommentWithAuthor, error) {
	b, err := c.rdb.Get(ctx, keyDay+strconv.Itoa(day)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.CommentWithAuthor
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetDay stores the day's list in cache. A nil list is stored as an empty
// one so that GetDay can tell "cached empty day" apart from a miss.
func (c *CommentCache) SetDay(ctx context.Context, day int, list []dom.CommentWithAuthor) error {
	if list == nil {
		list = []dom.CommentWithAuthor{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyDay+strconv.Itoa(day), b, c.ttl).Err()
}

// InvalidateDay drops the cached list for day (called on every post).
func (c *CommentCache) InvalidateDay(ctx context.Context, day int) error {
	return c.rdb.Del(ctx, keyDay+strconv.Itoa(day)).Err()
}
