// internal/matching/cache.go
// Redis-backed cache for the computed destiny candidate. Entirely optional:
// a nil *CandidateCache is safe to call and simply misses.

package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type CandidateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCandidateCache returns nil when no redis client is configured
func NewCandidateCache(client *redis.Client, ttl time.Duration) *CandidateCache {
	if client == nil {
		return nil
	}
	return &CandidateCache{client: client, ttl: ttl}
}

func candidateKey(uid string) string {
	return fmt.Sprintf("matching:destiny:%s", uid)
}

func (c *CandidateCache) Get(ctx context.Context, uid string) (*MatchCandidate, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, candidateKey(uid)).Bytes()
	if err != nil {
		return nil, false
	}

	var candidate MatchCandidate
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, false
	}

	return &candidate, true
}

func (c *CandidateCache) Set(ctx context.Context, uid string, candidate *MatchCandidate) {
	if c == nil {
		return
	}

	data, err := json.Marshal(candidate)
	if err != nil {
		return
	}

	// Best effort; a cache write failure must not fail the request
	if err := c.client.Set(ctx, candidateKey(uid), data, c.ttl).Err(); err != nil {
		log.Printf("candidate cache write failed for %s: %v", uid, err)
	}
}

// Invalidate drops cached candidates for the given uids. Called when users
// leave the pool (mutual match) or re-enter it (both decided to keep searching).
func (c *CandidateCache) Invalidate(ctx context.Context, uids ...string) {
	if c == nil || len(uids) == 0 {
		return
	}

	keys := make([]string, len(uids))
	for i, uid := range uids {
		keys[i] = candidateKey(uid)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("candidate cache invalidation failed: %v", err)
	}
}
