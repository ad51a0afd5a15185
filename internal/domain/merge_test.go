package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestAdMerge_CoalescesAbsentFields(t *testing.T) {
	ad := &Ad{
		AdID:        1,
		Subject:     "House",
		PriceString: "$100",
	}

	ad.Merge(ListingRecord{AdID: 1})

	assert.Equal(t, "House", ad.Subject)
	assert.Equal(t, "$100", ad.PriceString)
}

func TestAdMerge_OverwritesPresentFields(t *testing.T) {
	ad := &Ad{
		AdID:        1,
		Subject:     "House",
		PriceString: "$100",
	}

	ad.Merge(ListingRecord{
		AdID:        1,
		PriceString: ptr("$120"),
		State:       ptr("accepted"),
	})

	assert.Equal(t, "$120", ad.PriceString)
	assert.Equal(t, "accepted", ad.State)
	assert.Equal(t, "House", ad.Subject)
}

func TestAdMerge_NeverTouchesImmutableFields(t *testing.T) {
	ad := &Ad{
		AdID:       1,
		Region:     13000,
		StreetName: "Nguyen Hue",
	}

	rec := ListingRecord{
		AdID:       1,
		Region:     99,
		StreetName: "other street",
		Subject:    ptr("revised"),
	}
	ad.Merge(rec)

	assert.Equal(t, 13000, ad.Region)
	assert.Equal(t, "Nguyen Hue", ad.StreetName)
	assert.Equal(t, "revised", ad.Subject)
}

func TestNewAd_DefaultsAbsentMutableFields(t *testing.T) {
	ad := NewAd(ListingRecord{AdID: 1, Subject: ptr("House")})

	assert.Equal(t, "House", ad.Subject)
	assert.Empty(t, ad.Body)
	assert.Empty(t, ad.PriceString)
	assert.Zero(t, ad.NumberOfImages)
	assert.False(t, ad.Translated)
}

func TestAccountMerge_Coalesces(t *testing.T) {
	acc := &Account{
		AccountID:   10,
		AccountName: "seller",
		LiveAds:     ptr(4),
	}

	acc.Merge(AccountRecord{
		AccountID: 10,
		FullName:  ptr("Seller Person"),
	})

	assert.Equal(t, "seller", acc.AccountName)
	assert.Equal(t, "Seller Person", acc.FullName)
	assert.Equal(t, 4, *acc.LiveAds)

	acc.Merge(AccountRecord{
		AccountID: 10,
		LiveAds:   ptr(7),
	})
	assert.Equal(t, 7, *acc.LiveAds)
}

func TestNewAccount_Defaults(t *testing.T) {
	acc := NewAccount(AccountRecord{AccountID: 10})

	assert.Equal(t, int64(10), acc.AccountID)
	assert.Empty(t, acc.AccountName)
	assert.Nil(t, acc.Avatar)
	assert.Nil(t, acc.LiveAds)
}
