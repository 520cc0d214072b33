package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	IdeaKeyPrefix      = "idea:%d"
	IdeaListKeyPrefix  = "ideas:visible:%s"
	IdeaCommentsPrefix = "idea:%d:comments"
	StatsKey           = "board:stats"
)

const (
	IdeaTTL     = 10 * time.Minute
	IdeaListTTL = 2 * time.Minute
	CommentsTTL = 2 * time.Minute
	StatsTTL    = 5 * time.Minute
)

func IdeaKey(ideaID uint) string {
	return fmt.Sprintf(IdeaKeyPrefix, ideaID)
}

// IdeaListKey returns the cache key for a visibility class of the board
// listing. Roles sharing the same visibility share the same key.
func IdeaListKey(visibility string) string {
	return fmt.Sprintf(IdeaListKeyPrefix, visibility)
}

func IdeaCommentsKey(ideaID uint) string {
	return fmt.Sprintf(IdeaCommentsPrefix, ideaID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateIdea(ctx context.Context, ideaID uint) {
	Invalidate(ctx, IdeaKey(ideaID))
	Invalidate(ctx, IdeaCommentsKey(ideaID))
}

// InvalidateListings drops all listing views and the stats snapshot.
// Called after any write that changes what the board shows.
func InvalidateListings(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, IdeaListKey("public"), IdeaListKey("all"), StatsKey)
}

// GetJSON reads the key and unmarshals it into dest. Returns false on a
// miss or when the cache is unavailable.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are swallowed; the cache is best effort.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// IsMiss reports whether err is a Redis cache miss.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Aside implements the cache-aside pattern: on a hit dest is filled from
// the cache, on a miss load runs and its result is written back with the
// given TTL. load errors are returned as-is.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}
