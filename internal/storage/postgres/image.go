package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"reeltor/internal/domain"
)

type ImageStore struct {
	db *sqlx.DB
}

func NewImageStore(db *sqlx.DB) *ImageStore {
	return &ImageStore{db: db}
}

func (s *ImageStore) DeleteByAd(ctx context.Context, adID int64) error {
	ex := GetExecutor(ctx, s.db)

	_, err := ex.ExecContext(ctx, `DELETE FROM ad_images WHERE ad_id = $1`, adID)
	return err
}

func (s *ImageStore) Insert(ctx context.Context, img *domain.AdImage) error {
	ex := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO ad_images (ad_id, image_url, thumbnail_url, image_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return ex.QueryRowxContext(ctx, query,
		img.AdID,
		img.ImageURL,
		img.ThumbnailURL,
		img.ImageType,
	).Scan(&img.ID)
}

func (s *ImageStore) ListByAd(ctx context.Context, adID int64) ([]domain.AdImage, error) {
	ex := GetExecutor(ctx, s.db)

	var images []domain.AdImage
	err := sqlx.SelectContext(ctx, ex, &images,
		`SELECT id, ad_id, image_url, thumbnail_url, image_type FROM ad_images WHERE ad_id = $1 ORDER BY id`,
		adID,
	)
	return images, err
}
