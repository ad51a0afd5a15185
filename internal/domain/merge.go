package domain

// coalesce overwrites dst only when the source value is present. Absent
// source fields leave the stored value unchanged.
func coalesce[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func orZero[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// NewAccount builds a fresh Account from a seller record, applying zero-value
// defaults for absent fields.
func NewAccount(rec AccountRecord) *Account {
	return &Account{
		AccountID:   rec.AccountID,
		AccountOID:  orZero(rec.AccountOID),
		AccountName: orZero(rec.AccountName),
		FullName:    orZero(rec.FullName),
		Avatar:      rec.Avatar,
		LiveAds:     rec.LiveAds,
	}
}

// Merge folds a seller record into an existing account. One coalesce call
// per mutable field; this list is the whole merge policy.
func (a *Account) Merge(rec AccountRecord) {
	coalesce(&a.AccountOID, rec.AccountOID)
	coalesce(&a.AccountName, rec.AccountName)
	coalesce(&a.FullName, rec.FullName)
	if rec.Avatar != nil {
		a.Avatar = rec.Avatar
	}
	if rec.LiveAds != nil {
		a.LiveAds = rec.LiveAds
	}
}

// NewAd builds a fresh Ad from a listing record. Both attribute classes are
// written here; only the mutable class is ever revised afterwards.
func NewAd(rec ListingRecord) *Ad {
	return &Ad{
		AdID: rec.AdID,

		ListID:                rec.ListID,
		Type:                  rec.Type,
		Region:                rec.Region,
		Category:              rec.Category,
		Area:                  rec.Area,
		Ward:                  rec.Ward,
		Longitude:             rec.Longitude,
		Latitude:              rec.Latitude,
		PropertyLegalDocument: rec.PropertyLegalDocument,
		StreetName:            rec.StreetName,
		Location:              rec.Location,
		Date:                  rec.Date,
		CategoryName:          rec.CategoryName,
		RegionName:            rec.RegionName,
		AreaName:              rec.AreaName,
		WardName:              rec.WardName,
		Size:                  rec.Size,
		SizeUnitString:        rec.SizeUnitString,

		ListTime:       orZero(rec.ListTime),
		State:          orZero(rec.State),
		Status:         orZero(rec.Status),
		Subject:        orZero(rec.Subject),
		Body:           orZero(rec.Body),
		Image:          orZero(rec.Image),
		WebpImage:      orZero(rec.WebpImage),
		ThumbnailImage: orZero(rec.ThumbnailImage),
		NumberOfImages: orZero(rec.NumberOfImages),
		ContainVideos:  orZero(rec.ContainVideos),
		PriceString:    orZero(rec.PriceString),
	}
}

// Merge folds a listing record into an existing ad. Only the mutable
// attribute class appears here; immutable-on-create fields are never revised.
func (a *Ad) Merge(rec ListingRecord) {
	coalesce(&a.ListTime, rec.ListTime)
	coalesce(&a.State, rec.State)
	coalesce(&a.Status, rec.Status)
	coalesce(&a.Subject, rec.Subject)
	coalesce(&a.Body, rec.Body)
	coalesce(&a.Image, rec.Image)
	coalesce(&a.WebpImage, rec.WebpImage)
	coalesce(&a.ThumbnailImage, rec.ThumbnailImage)
	coalesce(&a.NumberOfImages, rec.NumberOfImages)
	coalesce(&a.ContainVideos, rec.ContainVideos)
	coalesce(&a.PriceString, rec.PriceString)
}
