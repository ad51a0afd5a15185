package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"reeltor/internal/domain"
	"reeltor/internal/service/mocks"
	"reeltor/internal/storage/memory"
)

func ptr[T any](v T) *T { return &v }

type ReconcileServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source *mocks.MockSource
	store  *memory.Store

	service *ReconcileService
	logger  *slog.Logger
}

func (s *ReconcileServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockSource(s.ctrl)
	s.store = memory.New()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.source.EXPECT().Name().Return("test-source").AnyTimes()

	s.service = NewReconcileService(
		s.source,
		s.store.Accounts(),
		s.store.Ads(),
		s.store.Images(),
		s.store.Parameters(),
		s.store,
		nil,
		s.logger,
	)
}

func (s *ReconcileServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReconcileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileServiceTestSuite))
}

func houseRecord() domain.ListingRecord {
	return domain.ListingRecord{
		AdID: 1,
		Account: &domain.AccountRecord{
			AccountID:   10,
			AccountName: ptr("seller"),
		},
		Subject: ptr("House"),
		Images: []domain.ImageRecord{
			{URL: "a.jpg", Type: domain.ImageTypeRegular},
			{URL: "b.jpg", Type: domain.ImageTypeRegular},
		},
		Params: []domain.ParameterRecord{
			{ParamID: "bd", Value: "3", Label: "Bedrooms"},
		},
	}
}

func (s *ReconcileServiceTestSuite) TestReconcile_EndToEnd() {
	ctx := context.Background()

	stats := s.service.Reconcile(ctx, []domain.ListingRecord{houseRecord()})

	s.Equal(1, stats.Accounts)
	s.Equal(1, stats.Ads)
	s.Equal(2, stats.Images)
	s.Equal(1, stats.Parameters)
	s.Equal(0, stats.Skipped)
	s.Equal(0, stats.Errors)

	counts, err := s.store.Counts(ctx)
	s.NoError(err)
	s.Equal(int64(1), counts.Accounts)
	s.Equal(int64(1), counts.Ads)
	s.Equal(int64(2), counts.Images)
	s.Equal(int64(1), counts.Parameters)

	ad, err := s.store.Ads().FindByAdID(ctx, 1)
	s.NoError(err)
	s.Equal("House", ad.Subject)
	s.Require().NotNil(ad.AccountID)

	acc, err := s.store.Accounts().FindByAccountID(ctx, 10)
	s.NoError(err)
	s.Equal(acc.ID, *ad.AccountID)
}

func (s *ReconcileServiceTestSuite) TestReconcile_Idempotent() {
	ctx := context.Background()

	first := s.service.Reconcile(ctx, []domain.ListingRecord{houseRecord()})
	second := s.service.Reconcile(ctx, []domain.ListingRecord{houseRecord()})

	// Stats count rows touched, so the re-run reports the same numbers.
	s.Equal(first.Accounts, second.Accounts)
	s.Equal(first.Ads, second.Ads)
	s.Equal(first.Images, second.Images)
	s.Equal(first.Parameters, second.Parameters)

	counts, err := s.store.Counts(ctx)
	s.NoError(err)
	s.Equal(int64(1), counts.Accounts)
	s.Equal(int64(1), counts.Ads)
	s.Equal(int64(2), counts.Images)
	s.Equal(int64(1), counts.Parameters)
}

func (s *ReconcileServiceTestSuite) TestReconcile_ImageReplaceNotUnion() {
	ctx := context.Background()

	five := houseRecord()
	five.Images = []domain.ImageRecord{
		{URL: "1.jpg", Type: domain.ImageTypeRegular},
		{URL: "2.jpg", Type: domain.ImageTypeRegular},
		{URL: "3.jpg", Type: domain.ImageTypeRegular},
		{URL: "4.jpg", Type: domain.ImageTypeRegular},
		{URL: "5.jpg", Type: domain.ImageTypeRegular},
	}
	s.service.Reconcile(ctx, []domain.ListingRecord{five})

	two := houseRecord()
	two.Images = []domain.ImageRecord{
		{URL: "6.jpg", Type: domain.ImageTypeRegular},
		{URL: "7.webp", Type: domain.ImageTypeWebp},
	}
	stats := s.service.Reconcile(ctx, []domain.ListingRecord{two})
	s.Equal(2, stats.Images)

	ad, err := s.store.Ads().FindByAdID(ctx, 1)
	s.NoError(err)
	images, err := s.store.Images().ListByAd(ctx, ad.ID)
	s.NoError(err)
	s.Require().Len(images, 2)
	s.Equal("6.jpg", images[0].ImageURL)
	s.Equal("7.webp", images[1].ImageURL)
	s.Equal(domain.ImageTypeWebp, images[1].ImageType)
}

func (s *ReconcileServiceTestSuite) TestReconcile_CoalesceOnUpdate() {
	ctx := context.Background()

	initial := houseRecord()
	initial.PriceString = ptr("$100")
	s.service.Reconcile(ctx, []domain.ListingRecord{initial})

	// Absent price leaves the stored value unchanged.
	absent := houseRecord()
	absent.PriceString = nil
	s.service.Reconcile(ctx, []domain.ListingRecord{absent})

	ad, err := s.store.Ads().FindByAdID(ctx, 1)
	s.NoError(err)
	s.Equal("$100", ad.PriceString)

	// A present price overwrites it.
	revised := houseRecord()
	revised.PriceString = ptr("$120")
	s.service.Reconcile(ctx, []domain.ListingRecord{revised})

	ad, err = s.store.Ads().FindByAdID(ctx, 1)
	s.NoError(err)
	s.Equal("$120", ad.PriceString)
}

func (s *ReconcileServiceTestSuite) TestReconcile_SkipsRecordWithoutKey() {
	ctx := context.Background()

	stats := s.service.Reconcile(ctx, []domain.ListingRecord{{Subject: ptr("no key")}})

	s.Equal(0, stats.Accounts)
	s.Equal(0, stats.Ads)
	s.Equal(0, stats.Images)
	s.Equal(0, stats.Parameters)
	s.Equal(1, stats.Skipped)
	s.Equal(0, stats.Errors)

	counts, err := s.store.Counts(ctx)
	s.NoError(err)
	s.Equal(int64(0), counts.Ads)
}

func (s *ReconcileServiceTestSuite) TestReconcile_AdWithoutAccount() {
	ctx := context.Background()

	rec := houseRecord()
	rec.Account = nil
	stats := s.service.Reconcile(ctx, []domain.ListingRecord{rec})

	s.Equal(0, stats.Accounts)
	s.Equal(1, stats.Ads)

	ad, err := s.store.Ads().FindByAdID(ctx, 1)
	s.NoError(err)
	s.Nil(ad.AccountID)
}

func (s *ReconcileServiceTestSuite) TestReconcile_NaturalKeyUniqueness() {
	ctx := context.Background()

	// The same listing sighted twice in one batch touches one row twice.
	stats := s.service.Reconcile(ctx, []domain.ListingRecord{houseRecord(), houseRecord()})

	s.Equal(2, stats.Accounts)
	s.Equal(2, stats.Ads)

	counts, err := s.store.Counts(ctx)
	s.NoError(err)
	s.Equal(int64(1), counts.Accounts)
	s.Equal(int64(1), counts.Ads)
}

type flakyAdStore struct {
	*memory.AdStore
	failAdID int64
}

func (f *flakyAdStore) FindByAdID(ctx context.Context, adID int64) (*domain.Ad, error) {
	if adID == f.failAdID {
		return nil, errors.New("storage failure")
	}
	return f.AdStore.FindByAdID(ctx, adID)
}

func (s *ReconcileServiceTestSuite) TestReconcile_PartialFailureIsolation() {
	ctx := context.Background()

	service := NewReconcileService(
		s.source,
		s.store.Accounts(),
		&flakyAdStore{AdStore: s.store.Ads(), failAdID: 2},
		s.store.Images(),
		s.store.Parameters(),
		s.store,
		nil,
		s.logger,
	)

	records := []domain.ListingRecord{
		{AdID: 1, Subject: ptr("first")},
		{AdID: 2, Subject: ptr("broken")},
		{AdID: 3, Subject: ptr("third")},
	}

	stats := service.Reconcile(ctx, records)

	s.Equal(2, stats.Ads)
	s.Equal(1, stats.Errors)

	counts, err := s.store.Counts(ctx)
	s.NoError(err)
	s.Equal(int64(2), counts.Ads)

	_, err = s.store.Ads().FindByAdID(ctx, 2)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ReconcileServiceTestSuite) TestReconcile_AccountConflictReload() {
	ctx := context.Background()

	accounts := mocks.NewMockAccountStore(s.ctrl)
	accounts.EXPECT().FindByAccountID(gomock.Any(), int64(10)).Return(nil, domain.ErrNotFound)
	accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("insert account 10: %w", domain.ErrConflict))
	winner := &domain.Account{ID: 77, AccountID: 10, AccountName: "winner"}
	accounts.EXPECT().FindByAccountID(gomock.Any(), int64(10)).Return(winner, nil)
	accounts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	service := NewReconcileService(
		s.source,
		accounts,
		s.store.Ads(),
		s.store.Images(),
		s.store.Parameters(),
		s.store,
		nil,
		s.logger,
	)

	stats := service.Reconcile(ctx, []domain.ListingRecord{houseRecord()})

	s.Equal(1, stats.Accounts)
	s.Equal(1, stats.Ads)
	s.Equal(0, stats.Errors)

	// The ad links to the row that won the race.
	ad, err := s.store.Ads().FindByAdID(ctx, 1)
	s.NoError(err)
	s.Require().NotNil(ad.AccountID)
	s.Equal(int64(77), *ad.AccountID)
}

func (s *ReconcileServiceTestSuite) TestSync_PublishesUpsertedAds() {
	ctx := context.Background()

	publisher := mocks.NewMockPublisher(s.ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), true).Return(nil)

	service := NewReconcileService(
		s.source,
		s.store.Accounts(),
		s.store.Ads(),
		s.store.Images(),
		s.store.Parameters(),
		s.store,
		publisher,
		s.logger,
	)

	s.source.EXPECT().Fetch(gomock.Any()).Return([]domain.ListingRecord{houseRecord()}, nil)

	stats, err := service.Sync(ctx)

	s.NoError(err)
	s.Equal(1, stats.Fetched)
	s.Equal(1, stats.Published)
}

func (s *ReconcileServiceTestSuite) TestSync_FetchFailureYieldsZeroStats() {
	ctx := context.Background()

	s.source.EXPECT().Fetch(gomock.Any()).Return(nil, errors.New("gateway down"))

	stats, err := s.service.Sync(ctx)

	s.Error(err)
	s.Require().NotNil(stats)
	s.Equal(0, stats.Fetched)
	s.Equal(0, stats.Ads)
}

func (s *ReconcileServiceTestSuite) TestSync_EmptyBatch() {
	ctx := context.Background()

	s.source.EXPECT().Fetch(gomock.Any()).Return(nil, nil)

	stats, err := s.service.Sync(ctx)

	s.NoError(err)
	s.Equal(0, stats.Fetched)
	s.Equal(0, stats.Ads)
}
