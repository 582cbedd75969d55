package model

import "time"

// PublicView is the projection every caller gets: the private address
// and landlord contact are never populated here.
type PublicView struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Area          string    `json:"area"`
	Price         int64     `json:"price"`
	Amenities     []string  `json:"amenities"`
	PreviewImages []string  `json:"previewImages"`
	Status        string    `json:"status"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UnlockedView adds the private attributes on top of the public ones.
// It is only built for the owner, an admin, or a requester holding a
// grant for this listing.
type UnlockedView struct {
	PublicView
	Address       string `json:"address"`
	DirectionsURL string `json:"directionsUrl,omitempty"`
	LandlordName  string `json:"landlordName"`
	LandlordPhone string `json:"landlordPhone"`
}

// Public strips the private attributes unconditionally.
func (l *Listing) Public() PublicView {
	return PublicView{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		Title:         l.Title,
		Description:   l.Description,
		Area:          l.Area,
		Price:         l.Price,
		Amenities:     l.Amenities,
		PreviewImages: l.PreviewImages,
		Status:        l.Status,
		Views:         l.Views,
		CreatedAt:     l.CreatedAt,
	}
}

func (l *Listing) Unlocked() UnlockedView {
	return UnlockedView{
		PublicView:    l.Public(),
		Address:       l.Address,
		DirectionsURL: l.DirectionsURL,
		LandlordName:  l.LandlordName,
		LandlordPhone: l.LandlordPhone,
	}
}
