package domain

import "time"

// Image type tags stored in ad_images.image_type.
const (
	ImageTypeRegular = "regular"
	ImageTypeWebp    = "webp"
)

// Account is a seller identity, keyed by the externally assigned AccountID.
type Account struct {
	ID          int64     `db:"id"`
	AccountID   int64     `db:"account_id"`
	AccountOID  string    `db:"account_oid"`
	AccountName string    `db:"account_name"`
	FullName    string    `db:"full_name"`
	Avatar      *string   `db:"avatar"`
	LiveAds     *int      `db:"live_ads"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Ad is one listing, keyed by the externally assigned AdID. AccountID
// references the owning account's surrogate id and may be null when the
// listing arrived without a resolvable seller.
type Ad struct {
	ID        int64  `db:"id"`
	AdID      int64  `db:"ad_id"`
	AccountID *int64 `db:"account_id"`

	// Written once on insert, never revised.
	ListID                int64   `db:"list_id"`
	Type                  string  `db:"type"`
	Region                int     `db:"region"`
	Category              int     `db:"category"`
	Area                  int     `db:"area"`
	Ward                  int     `db:"ward"`
	Longitude             float64 `db:"longitude"`
	Latitude              float64 `db:"latitude"`
	PropertyLegalDocument int     `db:"property_legal_document"`
	StreetName            string  `db:"street_name"`
	Location              string  `db:"location"`
	Date                  string  `db:"date"`
	CategoryName          string  `db:"category_name"`
	RegionName            string  `db:"region_name"`
	AreaName              string  `db:"area_name"`
	WardName              string  `db:"ward_name"`
	Size                  float64 `db:"size"`
	SizeUnitString        string  `db:"size_unit_string"`

	// Revised on every re-sighting.
	ListTime       int64  `db:"list_time"`
	State          string `db:"state"`
	Status         string `db:"status"`
	Subject        string `db:"subject"`
	Body           string `db:"body"`
	Image          string `db:"image"`
	WebpImage      string `db:"webp_image"`
	ThumbnailImage string `db:"thumbnail_image"`
	NumberOfImages int    `db:"number_of_images"`
	ContainVideos  int    `db:"contain_videos"`
	PriceString    string `db:"price_string"`

	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	PostedAt   *time.Time `db:"posted_at"`
	Translated bool       `db:"translated"`
}

// AdImage is one image reference owned by an ad. The set of an ad's images
// is replaced wholesale on every re-sighting.
type AdImage struct {
	ID           int64   `db:"id"`
	AdID         int64   `db:"ad_id"`
	ImageURL     string  `db:"image_url"`
	ThumbnailURL *string `db:"thumbnail_url"`
	ImageType    string  `db:"image_type"`
}

// AdParameter is one key/value/label attribute owned by an ad, replaced
// wholesale on every re-sighting like AdImage.
type AdParameter struct {
	ID      int64  `db:"id"`
	AdID    int64  `db:"ad_id"`
	ParamID string `db:"param_id"`
	Value   string `db:"value"`
	Label   string `db:"label"`
}
