package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"reeltor/internal/domain"
)

const accountColumns = `id, account_id, account_oid, account_name, full_name, avatar, live_ads, created_at, updated_at`

type AccountStore struct {
	db *sqlx.DB
}

func NewAccountStore(db *sqlx.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) FindByAccountID(ctx context.Context, accountID int64) (*domain.Account, error) {
	ex := GetExecutor(ctx, s.db)

	var acc domain.Account
	err := sqlx.GetContext(ctx, ex, &acc,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`,
		accountID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountStore) Insert(ctx context.Context, acc *domain.Account) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO accounts (account_id, account_oid, account_name, full_name, avatar, live_ads)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := ex.QueryRowxContext(ctx, query,
		acc.AccountID,
		acc.AccountOID,
		acc.AccountName,
		acc.FullName,
		acc.Avatar,
		acc.LiveAds,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("insert account %d: %w", acc.AccountID, domain.ErrConflict)
	}
	return err
}

func (s *AccountStore) Update(ctx context.Context, acc *domain.Account) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		UPDATE accounts SET
			account_oid = $1,
			account_name = $2,
			full_name = $3,
			avatar = $4,
			live_ads = $5,
			updated_at = now()
		WHERE id = $6
		RETURNING updated_at`

	return ex.QueryRowxContext(ctx, query,
		acc.AccountOID,
		acc.AccountName,
		acc.FullName,
		acc.Avatar,
		acc.LiveAds,
		acc.ID,
	).Scan(&acc.UpdatedAt)
}
