package domain

// ListingRecord is one normalized listing from the upstream feed. Immutable
// attributes carry defaults already applied; mutable attributes stay pointers
// so that "absent upstream" survives into the merge and leaves the stored
// value untouched. A zero AdID means the record cannot be persisted.
type ListingRecord struct {
	AdID    int64
	Account *AccountRecord

	ListID                int64
	Type                  string
	Region                int
	Category              int
	Area                  int
	Ward                  int
	Longitude             float64
	Latitude              float64
	PropertyLegalDocument int
	StreetName            string
	Location              string
	Date                  string
	CategoryName          string
	RegionName            string
	AreaName              string
	WardName              string
	Size                  float64
	SizeUnitString        string

	ListTime       *int64
	State          *string
	Status         *string
	Subject        *string
	Body           *string
	Image          *string
	WebpImage      *string
	ThumbnailImage *string
	NumberOfImages *int
	ContainVideos  *int
	PriceString    *string

	Images []ImageRecord
	Params []ParameterRecord
}

// AccountRecord is the seller block nested in a listing record.
type AccountRecord struct {
	AccountID   int64
	AccountOID  *string
	AccountName *string
	FullName    *string
	Avatar      *string
	LiveAds     *int
}

// ImageRecord is one image reference carried by a listing record.
type ImageRecord struct {
	URL          string
	ThumbnailURL *string
	Type         string
}

// ParameterRecord is one {id, value, label} triple carried by a listing record.
type ParameterRecord struct {
	ParamID string
	Value   string
	Label   string
}
