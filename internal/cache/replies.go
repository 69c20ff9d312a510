// Package cache holds small Redis-backed caches for read-side hot paths.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wirechan-dev/wirechan/internal/domain"
	"github.com/wirechan-dev/wirechan/internal/logger"
)

// Replies caches per-post reply counts with a short TTL. The feed issues one
// count query per visible root; the cache absorbs that between page loads.
// Misses and Redis failures both fall through to storage, so the cache is
// never load-bearing.
type Replies struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReplies(client *redis.Client, ttl time.Duration) *Replies {
	return &Replies{client: client, ttl: ttl}
}

func (c *Replies) Get(ctx context.Context, board domain.BoardName, id domain.PostId) (int, bool) {
	val, err := c.client.Get(ctx, replyKey(board, id)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("reply count cache read failed", "err", err)
		}
		return 0, false
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *Replies) Set(ctx context.Context, board domain.BoardName, id domain.PostId, count int) {
	if err := c.client.Set(ctx, replyKey(board, id), strconv.Itoa(count), c.ttl).Err(); err != nil {
		logger.Log.Warn("reply count cache write failed", "err", err)
	}
}

func replyKey(board domain.BoardName, id domain.PostId) string {
	return fmt.Sprintf("replies:%s:%d", board, id)
}
