package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"reeltor/internal/domain"
)

type ParameterStore struct {
	db *sqlx.DB
}

func NewParameterStore(db *sqlx.DB) *ParameterStore {
	return &ParameterStore{db: db}
}

func (s *ParameterStore) DeleteByAd(ctx context.Context, adID int64) error {
	ex := GetExecutor(ctx, s.db)

	_, err := ex.ExecContext(ctx, `DELETE FROM ad_params WHERE ad_id = $1`, adID)
	return err
}

func (s *ParameterStore) Insert(ctx context.Context, param *domain.AdParameter) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO ad_params (ad_id, param_id, value, label)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return ex.QueryRowxContext(ctx, query,
		param.AdID,
		param.ParamID,
		param.Value,
		param.Label,
	).Scan(&param.ID)
}

func (s *ParameterStore) ListByAd(ctx context.Context, adID int64) ([]domain.AdParameter, error) {
	ex := GetExecutor(ctx, s.db)

	var params []domain.AdParameter
	err := sqlx.SelectContext(ctx, ex, &params,
		`SELECT id, ad_id, param_id, value, label FROM ad_params WHERE ad_id = $1 ORDER BY id`,
		adID,
	)
	return params, err
}
