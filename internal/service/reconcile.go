package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reeltor/internal/domain"
)

// ReconcileService pulls one page of listings and reconciles it against the
// store: per-record account/ad upserts with coalesce merges, full replace of
// each ad's images and parameters, per-record failure isolation, one batch
// commit at the end.
type ReconcileService struct {
	source    Source
	accounts  AccountStore
	ads       AdStore
	images    ImageStore
	params    ParameterStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

func NewReconcileService(
	source Source,
	accounts AccountStore,
	ads AdStore,
	images ImageStore,
	params ParameterStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		source:    source,
		accounts:  accounts,
		ads:       ads,
		images:    images,
		params:    params,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("source", source.Name()),
	}
}

// Sync runs one fetch+reconcile cycle. A fetch failure yields zero stats and
// the error value for logging; it never aborts the surrounding scheduler.
func (s *ReconcileService) Sync(ctx context.Context) (*domain.ReconcileStats, error) {
	start := time.Now()

	records, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Warn("fetch failed, nothing to process this cycle", "error", err)
		return &domain.ReconcileStats{Duration: time.Since(start)}, err
	}

	stats := s.Reconcile(ctx, records)
	stats.Duration = time.Since(start)

	s.logger.Info("sync completed",
		"fetched", stats.Fetched,
		"accounts", stats.Accounts,
		"ads", stats.Ads,
		"images", stats.Images,
		"parameters", stats.Parameters,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

// Reconcile processes the batch inside one transaction, each record inside
// its own savepoint. Stats count rows touched this run. A commit failure
// rolls the whole batch back and still returns a (zeroed) stats result.
func (s *ReconcileService) Reconcile(ctx context.Context, records []domain.ListingRecord) *domain.ReconcileStats {
	stats := &domain.ReconcileStats{Fetched: len(records)}
	if len(records) == 0 {
		s.logger.Warn("no listing records in batch")
		return stats
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := range records {
			rec := &records[i]
			if rec.AdID == 0 {
				stats.Skipped++
				s.logger.Debug("record without natural key skipped")
				continue
			}

			var res *recordResult
			err := s.txManager.WithSavepoint(txCtx, func(spCtx context.Context) error {
				var err error
				res, err = s.reconcileRecord(spCtx, rec)
				return err
			})
			if err != nil {
				stats.Errors++
				s.logger.Error("failed to reconcile record",
					"ad_id", rec.AdID,
					"error", err,
				)
				continue
			}

			stats.Accounts += res.delta.Accounts
			stats.Ads += res.delta.Ads
			stats.Images += res.delta.Images
			stats.Parameters += res.delta.Parameters

			if s.publisher != nil {
				if err := s.publisher.Publish(txCtx, res.ad, res.created); err != nil {
					stats.Errors++
					s.logger.Warn("failed to publish ad", "ad_id", res.ad.AdID, "error", err)
				} else {
					stats.Published++
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("batch commit failed, all changes rolled back", "error", err)
		return &domain.ReconcileStats{Fetched: len(records)}
	}

	return stats
}

type recordResult struct {
	ad      *domain.Ad
	created bool
	delta   domain.ReconcileStats
}

func (s *ReconcileService) reconcileRecord(ctx context.Context, rec *domain.ListingRecord) (*recordResult, error) {
	res := &recordResult{}

	var account *domain.Account
	if rec.Account != nil {
		var err error
		account, err = s.upsertAccount(ctx, *rec.Account)
		if err != nil {
			return nil, fmt.Errorf("upsert account %d: %w", rec.Account.AccountID, err)
		}
		res.delta.Accounts++
	}

	ad, created, err := s.upsertAd(ctx, *rec, account)
	if err != nil {
		return nil, fmt.Errorf("upsert ad: %w", err)
	}
	res.ad = ad
	res.created = created
	res.delta.Ads++

	imageCount, err := s.replaceImages(ctx, ad.ID, rec.Images)
	if err != nil {
		return nil, fmt.Errorf("replace images: %w", err)
	}
	res.delta.Images += imageCount

	paramCount, err := s.replaceParameters(ctx, ad.ID, rec.Params)
	if err != nil {
		return nil, fmt.Errorf("replace parameters: %w", err)
	}
	res.delta.Parameters += paramCount

	return res, nil
}

func (s *ReconcileService) upsertAccount(ctx context.Context, rec domain.AccountRecord) (*domain.Account, error) {
	acc, err := s.accounts.FindByAccountID(ctx, rec.AccountID)
	if err == nil {
		acc.Merge(rec)
		if err := s.accounts.Update(ctx, acc); err != nil {
			return nil, err
		}
		return acc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	acc = domain.NewAccount(rec)
	// The insert attempt gets its own savepoint: a lost natural-key race
	// must not poison the record's transaction state.
	insertErr := s.txManager.WithSavepoint(ctx, func(spCtx context.Context) error {
		return s.accounts.Insert(spCtx, acc)
	})
	if errors.Is(insertErr, domain.ErrConflict) {
		existing, err := s.accounts.FindByAccountID(ctx, rec.AccountID)
		if err != nil {
			return nil, err
		}
		existing.Merge(rec)
		if err := s.accounts.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if insertErr != nil {
		return nil, insertErr
	}
	return acc, nil
}

func (s *ReconcileService) upsertAd(ctx context.Context, rec domain.ListingRecord, account *domain.Account) (*domain.Ad, bool, error) {
	var accountID *int64
	if account != nil {
		accountID = &account.ID
	}

	ad, err := s.ads.FindByAdID(ctx, rec.AdID)
	if err == nil {
		ad.Merge(rec)
		if accountID != nil {
			ad.AccountID = accountID
		}
		return ad, false, s.ads.Update(ctx, ad)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	ad = domain.NewAd(rec)
	ad.AccountID = accountID
	insertErr := s.txManager.WithSavepoint(ctx, func(spCtx context.Context) error {
		return s.ads.Insert(spCtx, ad)
	})
	if errors.Is(insertErr, domain.ErrConflict) {
		existing, err := s.ads.FindByAdID(ctx, rec.AdID)
		if err != nil {
			return nil, false, err
		}
		existing.Merge(rec)
		if accountID != nil {
			existing.AccountID = accountID
		}
		return existing, false, s.ads.Update(ctx, existing)
	}
	if insertErr != nil {
		return nil, false, insertErr
	}
	return ad, true, nil
}

func (s *ReconcileService) replaceImages(ctx context.Context, adID int64, images []domain.ImageRecord) (int, error) {
	if err := s.images.DeleteByAd(ctx, adID); err != nil {
		return 0, err
	}

	for _, img := range images {
		row := &domain.AdImage{
			AdID:         adID,
			ImageURL:     img.URL,
			ThumbnailURL: img.ThumbnailURL,
			ImageType:    img.Type,
		}
		if err := s.images.Insert(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(images), nil
}

func (s *ReconcileService) replaceParameters(ctx context.Context, adID int64, params []domain.ParameterRecord) (int, error) {
	if err := s.params.DeleteByAd(ctx, adID); err != nil {
		return 0, err
	}

	for _, p := range params {
		row := &domain.AdParameter{
			AdID:    adID,
			ParamID: p.ParamID,
			Value:   p.Value,
			Label:   p.Label,
		}
		if err := s.params.Insert(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(params), nil
}
