// Package memory provides a databaseless adapter implementing the same
// store surface as storage/postgres. Transactions and savepoints are
// snapshot-based: a failure restores the state captured at entry.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"reeltor/internal/domain"
)

type state struct {
	accounts map[int64]*domain.Account
	ads      map[int64]*domain.Ad
	images   map[int64]*domain.AdImage
	params   map[int64]*domain.AdParameter
	nextID   int64
}

func newState() *state {
	return &state{
		accounts: make(map[int64]*domain.Account),
		ads:      make(map[int64]*domain.Ad),
		images:   make(map[int64]*domain.AdImage),
		params:   make(map[int64]*domain.AdParameter),
	}
}

func (st *state) clone() *state {
	c := &state{
		accounts: make(map[int64]*domain.Account, len(st.accounts)),
		ads:      make(map[int64]*domain.Ad, len(st.ads)),
		images:   make(map[int64]*domain.AdImage, len(st.images)),
		params:   make(map[int64]*domain.AdParameter, len(st.params)),
		nextID:   st.nextID,
	}
	for id, acc := range st.accounts {
		cp := *acc
		c.accounts[id] = &cp
	}
	for id, ad := range st.ads {
		cp := *ad
		c.ads[id] = &cp
	}
	for id, img := range st.images {
		cp := *img
		c.images[id] = &cp
	}
	for id, p := range st.params {
		cp := *p
		c.params[id] = &cp
	}
	return c
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) Accounts() *AccountStore     { return &AccountStore{s} }
func (s *Store) Ads() *AdStore               { return &AdStore{s} }
func (s *Store) Images() *ImageStore         { return &ImageStore{s} }
func (s *Store) Parameters() *ParameterStore { return &ParameterStore{s} }

func (s *Store) nextID() int64 {
	s.st.nextID++
	return s.st.nextID
}

// WithTransaction snapshots the whole state and restores it when fn fails.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// WithSavepoint has the same snapshot semantics as WithTransaction; nesting
// them gives per-record isolation inside a batch.
func (s *Store) WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.WithTransaction(ctx, fn)
}

func (s *Store) Counts(ctx context.Context) (domain.StoreCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.StoreCounts{
		Accounts:   int64(len(s.st.accounts)),
		Ads:        int64(len(s.st.ads)),
		Images:     int64(len(s.st.images)),
		Parameters: int64(len(s.st.params)),
	}, nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Children before parents, matching the relational wipe order.
	s.st.params = make(map[int64]*domain.AdParameter)
	s.st.images = make(map[int64]*domain.AdImage)
	s.st.ads = make(map[int64]*domain.Ad)
	s.st.accounts = make(map[int64]*domain.Account)
	return nil
}

type AccountStore struct {
	s *Store
}

func (a *AccountStore) FindByAccountID(ctx context.Context, accountID int64) (*domain.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, acc := range a.s.st.accounts {
		if acc.AccountID == accountID {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (a *AccountStore) Insert(ctx context.Context, acc *domain.Account) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, existing := range a.s.st.accounts {
		if existing.AccountID == acc.AccountID {
			return fmt.Errorf("insert account %d: %w", acc.AccountID, domain.ErrConflict)
		}
	}

	now := time.Now()
	acc.ID = a.s.nextID()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	cp := *acc
	a.s.st.accounts[acc.ID] = &cp
	return nil
}

func (a *AccountStore) Update(ctx context.Context, acc *domain.Account) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	stored, ok := a.s.st.accounts[acc.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored.AccountOID = acc.AccountOID
	stored.AccountName = acc.AccountName
	stored.FullName = acc.FullName
	stored.Avatar = acc.Avatar
	stored.LiveAds = acc.LiveAds
	stored.UpdatedAt = time.Now()
	acc.UpdatedAt = stored.UpdatedAt
	return nil
}

type AdStore struct {
	s *Store
}

func (a *AdStore) FindByAdID(ctx context.Context, adID int64) (*domain.Ad, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, ad := range a.s.st.ads {
		if ad.AdID == adID {
			cp := *ad
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (a *AdStore) Insert(ctx context.Context, ad *domain.Ad) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, existing := range a.s.st.ads {
		if existing.AdID == ad.AdID {
			return fmt.Errorf("insert ad %d: %w", ad.AdID, domain.ErrConflict)
		}
	}

	now := time.Now()
	ad.ID = a.s.nextID()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	cp := *ad
	a.s.st.ads[ad.ID] = &cp
	return nil
}

// Update writes the mutable attribute class plus the account relation and
// the translated flag, mirroring the relational store.
func (a *AdStore) Update(ctx context.Context, ad *domain.Ad) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	stored, ok := a.s.st.ads[ad.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored.AccountID = ad.AccountID
	stored.ListTime = ad.ListTime
	stored.State = ad.State
	stored.Status = ad.Status
	stored.Subject = ad.Subject
	stored.Body = ad.Body
	stored.Image = ad.Image
	stored.WebpImage = ad.WebpImage
	stored.ThumbnailImage = ad.ThumbnailImage
	stored.NumberOfImages = ad.NumberOfImages
	stored.ContainVideos = ad.ContainVideos
	stored.PriceString = ad.PriceString
	stored.Translated = ad.Translated
	stored.UpdatedAt = time.Now()
	ad.UpdatedAt = stored.UpdatedAt
	return nil
}

func (a *AdStore) Recent(ctx context.Context, limit int) ([]domain.Ad, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	ads := make([]domain.Ad, 0, len(a.s.st.ads))
	for _, ad := range a.s.st.ads {
		ads = append(ads, *ad)
	}
	sort.Slice(ads, func(i, j int) bool {
		if !ads[i].CreatedAt.Equal(ads[j].CreatedAt) {
			return ads[i].CreatedAt.After(ads[j].CreatedAt)
		}
		return ads[i].ID > ads[j].ID
	})
	if limit < len(ads) {
		ads = ads[:limit]
	}
	return ads, nil
}

func (a *AdStore) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	stored, ok := a.s.st.ads[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.PostedAt = &postedAt
	stored.UpdatedAt = time.Now()
	return nil
}

type ImageStore struct {
	s *Store
}

func (i *ImageStore) DeleteByAd(ctx context.Context, adID int64) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()

	for id, img := range i.s.st.images {
		if img.AdID == adID {
			delete(i.s.st.images, id)
		}
	}
	return nil
}

func (i *ImageStore) Insert(ctx context.Context, img *domain.AdImage) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()

	img.ID = i.s.nextID()
	cp := *img
	i.s.st.images[img.ID] = &cp
	return nil
}

func (i *ImageStore) ListByAd(ctx context.Context, adID int64) ([]domain.AdImage, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()

	var images []domain.AdImage
	for _, img := range i.s.st.images {
		if img.AdID == adID {
			images = append(images, *img)
		}
	}
	sort.Slice(images, func(a, b int) bool { return images[a].ID < images[b].ID })
	return images, nil
}

type ParameterStore struct {
	s *Store
}

func (p *ParameterStore) DeleteByAd(ctx context.Context, adID int64) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for id, param := range p.s.st.params {
		if param.AdID == adID {
			delete(p.s.st.params, id)
		}
	}
	return nil
}

func (p *ParameterStore) Insert(ctx context.Context, param *domain.AdParameter) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	param.ID = p.s.nextID()
	cp := *param
	p.s.st.params[param.ID] = &cp
	return nil
}

func (p *ParameterStore) ListByAd(ctx context.Context, adID int64) ([]domain.AdParameter, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	var params []domain.AdParameter
	for _, param := range p.s.st.params {
		if param.AdID == adID {
			params = append(params, *param)
		}
	}
	sort.Slice(params, func(a, b int) bool { return params[a].ID < params[b].ID })
	return params, nil
}
