package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"reeltor/internal/domain"
)

// StatsStore serves the read-only query surface: aggregate counts and the
// full wipe.
type StatsStore struct {
	db *sqlx.DB
}

func NewStatsStore(db *sqlx.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Counts(ctx context.Context) (domain.StoreCounts, error) {
	ex := GetExecutor(ctx, s.db)

	var counts domain.StoreCounts
	targets := []struct {
		table string
		dst   *int64
	}{
		{"accounts", &counts.Accounts},
		{"ads", &counts.Ads},
		{"ad_images", &counts.Images},
		{"ad_params", &counts.Parameters},
	}

	for _, t := range targets {
		if err := sqlx.GetContext(ctx, ex, t.dst, "SELECT count(*) FROM "+t.table); err != nil {
			return domain.StoreCounts{}, fmt.Errorf("count %s: %w", t.table, err)
		}
	}
	return counts, nil
}

// DeleteAll wipes every entity, children before parents.
func (s *StatsStore) DeleteAll(ctx context.Context) error {
	ex := GetExecutor(ctx, s.db)

	for _, table := range []string{"ad_params", "ad_images", "ads", "accounts"} {
		if _, err := ex.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
