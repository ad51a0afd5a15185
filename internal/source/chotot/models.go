package chotot

// APIResponse represents the ad-listing gateway response structure.
type APIResponse struct {
	Total int       `json:"total"`
	Ads   []Listing `json:"ads"`
}

// Listing is one raw listing record as delivered by the gateway. Optional
// fields decode as pointers so absent and null inputs stay distinguishable
// from zero values.
type Listing struct {
	AdID   *int64 `json:"ad_id"`
	ListID *int64 `json:"list_id"`

	AccountID   *int64      `json:"account_id"`
	AccountOID  *string     `json:"account_oid"`
	AccountName *string     `json:"account_name"`
	FullName    *string     `json:"full_name"`
	Avatar      *string     `json:"avatar"`
	SellerInfo  *SellerInfo `json:"seller_info"`

	Type                  *string  `json:"type"`
	Region                *int     `json:"region"`
	Category              *int     `json:"category"`
	Area                  *int     `json:"area"`
	Ward                  *int     `json:"ward"`
	Longitude             *float64 `json:"longitude"`
	Latitude              *float64 `json:"latitude"`
	PropertyLegalDocument *int     `json:"property_legal_document"`
	StreetName            *string  `json:"street_name"`
	Location              *string  `json:"location"`
	Date                  *string  `json:"date"`
	CategoryName          *string  `json:"category_name"`
	RegionName            *string  `json:"region_name"`
	AreaName              *string  `json:"area_name"`
	WardName              *string  `json:"ward_name"`
	Size                  *float64 `json:"size"`
	SizeUnitString        *string  `json:"size_unit_string"`

	ListTime       *int64  `json:"list_time"`
	State          *string `json:"state"`
	Status         *string `json:"status"`
	Subject        *string `json:"subject"`
	Body           *string `json:"body"`
	Image          *string `json:"image"`
	WebpImage      *string `json:"webp_image"`
	ThumbnailImage *string `json:"thumbnail_image"`
	NumberOfImages *int    `json:"number_of_images"`
	ContainVideos  *int    `json:"contain_videos"`
	PriceString    *string `json:"price_string"`

	Images          []string         `json:"images"`
	ImageThumbnails []ImageThumbnail `json:"image_thumbnails"`
	Params          []Param          `json:"params"`
}

type SellerInfo struct {
	LiveAds *int `json:"live_ads"`
}

type ImageThumbnail struct {
	Image     string  `json:"image"`
	Thumbnail *string `json:"thumbnail"`
}

type Param struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}
