package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ImbalanceHistory implements usecase.ImbalanceHistory with one sorted set
// per submitter, scored by flag time. Counting a trailing window is a range
// query; stale members are pruned on read.
type ImbalanceHistory struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

// NewImbalanceHistory creates a new ImbalanceHistory.
func NewImbalanceHistory(client *redis.Client, retention time.Duration) *ImbalanceHistory {
	return &ImbalanceHistory{
		client:    client,
		prefix:    "imbalance:",
		retention: retention,
	}
}

// RecordFlag appends one flag event for the submitter.
func (h *ImbalanceHistory) RecordFlag(ctx context.Context, submitterID string, at time.Time) error {
	key := h.prefix + submitterID

	pipe := h.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixNano()),
		Member: uuid.New().String(),
	})
	pipe.Expire(ctx, key, h.retention)

	_, err := pipe.Exec(ctx)

	return err
}

// RecentFlagCount counts the submitter's flags inside the trailing window.
func (h *ImbalanceHistory) RecentFlagCount(ctx context.Context, submitterID string, window time.Duration) (int, error) {
	key := h.prefix + submitterID
	cutoff := time.Now().UTC().Add(-window).UnixNano()

	if err := h.client.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", cutoff)).Err(); err != nil {
		return 0, err
	}

	count, err := h.client.ZCount(ctx, key, fmt.Sprintf("%d", cutoff), "+inf").Result()
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
