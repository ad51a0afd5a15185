package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"reeltor/internal/domain"
)

type AccountStore interface {
	FindByAccountID(ctx context.Context, accountID int64) (*domain.Account, error)
	Insert(ctx context.Context, acc *domain.Account) error
	Update(ctx context.Context, acc *domain.Account) error
}

type AdStore interface {
	FindByAdID(ctx context.Context, adID int64) (*domain.Ad, error)
	Insert(ctx context.Context, ad *domain.Ad) error
	Update(ctx context.Context, ad *domain.Ad) error
	Recent(ctx context.Context, limit int) ([]domain.Ad, error)
	MarkPosted(ctx context.Context, id int64, postedAt time.Time) error
}

type ImageStore interface {
	DeleteByAd(ctx context.Context, adID int64) error
	Insert(ctx context.Context, img *domain.AdImage) error
	ListByAd(ctx context.Context, adID int64) ([]domain.AdImage, error)
}

type ParameterStore interface {
	DeleteByAd(ctx context.Context, adID int64) error
	Insert(ctx context.Context, param *domain.AdParameter) error
	ListByAd(ctx context.Context, adID int64) ([]domain.AdParameter, error)
}

type StatsStore interface {
	Counts(ctx context.Context) (domain.StoreCounts, error)
	DeleteAll(ctx context.Context) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.ListingRecord, error)
}

type Publisher interface {
	Publish(ctx context.Context, ad *domain.Ad, created bool) error
	Close() error
}
