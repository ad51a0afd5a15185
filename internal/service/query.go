package service

import (
	"context"

	"reeltor/internal/domain"
)

// QueryService is the read-only facade used by downstream consumers.
// Delegation only, no business logic.
type QueryService struct {
	ads   AdStore
	stats StatsStore
}

func NewQueryService(ads AdStore, stats StatsStore) *QueryService {
	return &QueryService{ads: ads, stats: stats}
}

// RecentAds returns the most recently created ads, newest first.
func (q *QueryService) RecentAds(ctx context.Context, limit int) ([]domain.Ad, error) {
	return q.ads.Recent(ctx, limit)
}

// Counts returns total stored rows per entity.
func (q *QueryService) Counts(ctx context.Context) (domain.StoreCounts, error) {
	return q.stats.Counts(ctx)
}

// Wipe deletes everything, children before parents.
func (q *QueryService) Wipe(ctx context.Context) error {
	return q.stats.DeleteAll(ctx)
}
