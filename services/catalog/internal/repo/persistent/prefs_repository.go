package persistent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/elnathantransportes-ai/troca/services/catalog/internal/entity"
)

const filterPrefsKey = "troca:filters:%s"

// PrefsRepository persists a viewer's pinned feed filters in Redis. The whole
// blob is overwritten on every change; there is no partial update.
type PrefsRepository interface {
	Save(ctx context.Context, userID string, filters entity.FeedFilters) error
	Get(ctx context.Context, userID string) (entity.FeedFilters, error)
	Clear(ctx context.Context, userID string) error
}

type prefsRepository struct {
	client *redis.Client
}

func NewPrefsRepository(client *redis.Client) PrefsRepository {
	return &prefsRepository{client: client}
}

func (r *prefsRepository) Save(ctx context.Context, userID string, filters entity.FeedFilters) error {
	data, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}
	return r.client.Set(ctx, fmt.Sprintf(filterPrefsKey, userID), data, 0).Err()
}

func (r *prefsRepository) Get(ctx context.Context, userID string) (entity.FeedFilters, error) {
	var filters entity.FeedFilters

	data, err := r.client.Get(ctx, fmt.Sprintf(filterPrefsKey, userID)).Bytes()
	if err == redis.Nil {
		return filters, nil
	}
	if err != nil {
		return filters, err
	}

	if err := json.Unmarshal(data, &filters); err != nil {
		return entity.FeedFilters{}, fmt.Errorf("failed to decode filters: %w", err)
	}
	return filters, nil
}

func (r *prefsRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, fmt.Sprintf(filterPrefsKey, userID)).Err()
}
