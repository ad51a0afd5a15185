package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"reeltor/internal/domain"
)

const adColumns = `id, ad_id, account_id, list_id, type, region, category, area, ward,
	longitude, latitude, property_legal_document, street_name, location, date,
	category_name, region_name, area_name, ward_name, size, size_unit_string,
	list_time, state, status, subject, body, image, webp_image, thumbnail_image,
	number_of_images, contain_videos, price_string,
	created_at, updated_at, posted_at, translated`

type AdStore struct {
	db *sqlx.DB
}

func NewAdStore(db *sqlx.DB) *AdStore {
	return &AdStore{db: db}
}

func (s *AdStore) FindByAdID(ctx context.Context, adID int64) (*domain.Ad, error) {
	ex := GetExecutor(ctx, s.db)

	var ad domain.Ad
	err := sqlx.GetContext(ctx, ex, &ad,
		`SELECT `+adColumns+` FROM ads WHERE ad_id = $1`,
		adID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *AdStore) Insert(ctx context.Context, ad *domain.Ad) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO ads (
			ad_id, account_id, list_id, type, region, category, area, ward,
			longitude, latitude, property_legal_document, street_name, location, date,
			category_name, region_name, area_name, ward_name, size, size_unit_string,
			list_time, state, status, subject, body, image, webp_image, thumbnail_image,
			number_of_images, contain_videos, price_string
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31
		)
		RETURNING id, created_at, updated_at`

	err := ex.QueryRowxContext(ctx, query,
		ad.AdID, ad.AccountID, ad.ListID, ad.Type, ad.Region, ad.Category, ad.Area, ad.Ward,
		ad.Longitude, ad.Latitude, ad.PropertyLegalDocument, ad.StreetName, ad.Location, ad.Date,
		ad.CategoryName, ad.RegionName, ad.AreaName, ad.WardName, ad.Size, ad.SizeUnitString,
		ad.ListTime, ad.State, ad.Status, ad.Subject, ad.Body, ad.Image, ad.WebpImage, ad.ThumbnailImage,
		ad.NumberOfImages, ad.ContainVideos, ad.PriceString,
	).Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("insert ad %d: %w", ad.AdID, domain.ErrConflict)
	}
	return err
}

// Update writes the mutable attribute class plus the account relation and
// the translated flag. Immutable-on-create columns stay untouched.
func (s *AdStore) Update(ctx context.Context, ad *domain.Ad) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		UPDATE ads SET
			account_id = $1,
			list_time = $2,
			state = $3,
			status = $4,
			subject = $5,
			body = $6,
			image = $7,
			webp_image = $8,
			thumbnail_image = $9,
			number_of_images = $10,
			contain_videos = $11,
			price_string = $12,
			translated = $13,
			updated_at = now()
		WHERE id = $14
		RETURNING updated_at`

	return ex.QueryRowxContext(ctx, query,
		ad.AccountID,
		ad.ListTime,
		ad.State,
		ad.Status,
		ad.Subject,
		ad.Body,
		ad.Image,
		ad.WebpImage,
		ad.ThumbnailImage,
		ad.NumberOfImages,
		ad.ContainVideos,
		ad.PriceString,
		ad.Translated,
		ad.ID,
	).Scan(&ad.UpdatedAt)
}

func (s *AdStore) Recent(ctx context.Context, limit int) ([]domain.Ad, error) {
	ex := GetExecutor(ctx, s.db)

	var ads []domain.Ad
	err := sqlx.SelectContext(ctx, ex, &ads,
		`SELECT `+adColumns+` FROM ads ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	return ads, err
}

func (s *AdStore) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	ex := GetExecutor(ctx, s.db)

	_, err := ex.ExecContext(ctx,
		`UPDATE ads SET posted_at = $1, updated_at = now() WHERE id = $2`,
		postedAt, id,
	)
	return err
}
