package chotot

import "reeltor/internal/domain"

func deref[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// normalizeAd converts one raw listing into a domain record. Pure, no I/O.
// Immutable attributes get zero-value defaults when absent; mutable
// attributes keep their pointers so the reconciler can coalesce-merge them.
// A listing without ad_id normalizes to a record with a zero natural key.
func normalizeAd(l Listing) domain.ListingRecord {
	rec := domain.ListingRecord{
		AdID: deref(l.AdID),

		ListID:                deref(l.ListID),
		Type:                  deref(l.Type),
		Region:                deref(l.Region),
		Category:              deref(l.Category),
		Area:                  deref(l.Area),
		Ward:                  deref(l.Ward),
		Longitude:             deref(l.Longitude),
		Latitude:              deref(l.Latitude),
		PropertyLegalDocument: deref(l.PropertyLegalDocument),
		StreetName:            deref(l.StreetName),
		Location:              deref(l.Location),
		Date:                  deref(l.Date),
		CategoryName:          deref(l.CategoryName),
		RegionName:            deref(l.RegionName),
		AreaName:              deref(l.AreaName),
		WardName:              deref(l.WardName),
		Size:                  deref(l.Size),
		SizeUnitString:        deref(l.SizeUnitString),

		ListTime:       l.ListTime,
		State:          l.State,
		Status:         l.Status,
		Subject:        l.Subject,
		Body:           l.Body,
		Image:          l.Image,
		WebpImage:      l.WebpImage,
		ThumbnailImage: l.ThumbnailImage,
		NumberOfImages: l.NumberOfImages,
		ContainVideos:  l.ContainVideos,
		PriceString:    l.PriceString,
	}

	if l.AccountID != nil && *l.AccountID != 0 {
		acc := &domain.AccountRecord{
			AccountID:   *l.AccountID,
			AccountOID:  l.AccountOID,
			AccountName: l.AccountName,
			FullName:    l.FullName,
			Avatar:      l.Avatar,
		}
		if l.SellerInfo != nil {
			acc.LiveAds = l.SellerInfo.LiveAds
		}
		rec.Account = acc
	}

	for _, url := range l.Images {
		rec.Images = append(rec.Images, domain.ImageRecord{
			URL:  url,
			Type: domain.ImageTypeRegular,
		})
	}
	for _, thumb := range l.ImageThumbnails {
		if thumb.Image == "" {
			continue
		}
		rec.Images = append(rec.Images, domain.ImageRecord{
			URL:          thumb.Image,
			ThumbnailURL: thumb.Thumbnail,
			Type:         domain.ImageTypeRegular,
		})
	}
	if l.WebpImage != nil && *l.WebpImage != "" {
		rec.Images = append(rec.Images, domain.ImageRecord{
			URL:  *l.WebpImage,
			Type: domain.ImageTypeWebp,
		})
	}

	for _, p := range l.Params {
		rec.Params = append(rec.Params, domain.ParameterRecord{
			ParamID: p.ID,
			Value:   p.Value,
			Label:   p.Label,
		})
	}

	return rec
}
