package model

import (
	"time"

	"github.com/lib/pq"
)

// Listing status values. Closed listings stay browsable to their owner
// and to holders of a grant; deleted ones disappear from every read path.
const (
	ListingOpen   = "open"
	ListingClosed = "closed"

	LifecycleActive  = "active"
	LifecycleDeleted = "deleted"
)

type Listing struct {
	ID            string         `db:"id" json:"id"`
	OwnerID       string         `db:"owner_id" json:"ownerId"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description"`
	Area          string         `db:"area" json:"area"`
	Price         int64          `db:"price" json:"price"`
	Amenities     pq.StringArray `db:"amenities" json:"amenities"`
	PreviewImages pq.StringArray `db:"preview_images" json:"previewImages"`

	// Private attributes. Only ever serialized through UnlockedView.
	Address       string `db:"address" json:"-"`
	DirectionsURL string `db:"directions_url" json:"-"`
	LandlordName  string `db:"landlord_name" json:"-"`
	LandlordPhone string `db:"landlord_phone" json:"-"`

	Status    string     `db:"status" json:"status"`
	Views     int64      `db:"views" json:"views"`
	Lifecycle string     `db:"lifecycle" json:"-"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

// ListingFilter narrows browse queries. Zero values mean "no filter".
type ListingFilter struct {
	Area     string
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}
