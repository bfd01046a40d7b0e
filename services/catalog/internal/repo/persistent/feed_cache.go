package persistent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
)

const (
	feedCandidatesKey = "troca:feed:candidates"
	feedCacheTTL      = 30 * time.Second
)

// FeedCache holds the shared candidate set for the feed pipeline. The cache
// is short-lived and invalidated on listing change events, so staleness is
// bounded either way.
type FeedCache interface {
	GetCandidates(ctx context.Context) ([]*entity.Listing, error)
	SetCandidates(ctx context.Context, listings []*entity.Listing) error
	Invalidate(ctx context.Context) error
}

type feedCache struct {
	client *redis.Client
}

func NewFeedCache(client *redis.Client) FeedCache {
	return &feedCache{client: client}
}

func (c *feedCache) GetCandidates(ctx context.Context) ([]*entity.Listing, error) {
	data, err := c.client.Get(ctx, feedCandidatesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var listings []*entity.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *feedCache) SetCandidates(ctx context.Context, listings []*entity.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, feedCandidatesKey, data, feedCacheTTL).Err()
}

func (c *feedCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, feedCandidatesKey).Err()
}
