package redis

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/quotingfast/outreach/internal/repository/cache"
)

// SuppressionCache keeps only positive entries: a missing key means
// "unknown, ask the database", never "not suppressed". Negative results
// are deliberately not cached so a fresh opt-out is enforced on the next
// read rather than after a TTL.
type SuppressionCache struct {
	rdb redis.Cmdable
}

func NewSuppressionCache(rdb redis.Cmdable) *SuppressionCache {
	return &SuppressionCache{rdb: rdb}
}

// IsSuppressed returns true iff the phone has a cached positive entry.
func (c *SuppressionCache) IsSuppressed(ctx context.Context, phone string) (bool, error) {
	n, err := c.rdb.Exists(ctx, cache.SuppressionKey(phone)).Result()
	if err != nil {
		return false, errors.Wrap(err, "suppression cache lookup")
	}
	return n > 0, nil
}

// MarkSuppressed records a positive entry. Entries never expire: a
// suppression is permanent by contract.
func (c *SuppressionCache) MarkSuppressed(ctx context.Context, phone string) error {
	err := c.rdb.Set(ctx, cache.SuppressionKey(phone), "1", 0).Err()
	return errors.Wrap(err, "suppression cache set")
}
