package domain

import "github.com/shopspring/decimal"

type Hotel struct {
	ID            int64           `json:"id" mapstructure:"Id"`
	Name          string          `json:"name" mapstructure:"name_c"`
	Address       string          `json:"address" mapstructure:"address_c"`
	City          string          `json:"city" mapstructure:"location_city_c"`
	State         string          `json:"state" mapstructure:"location_state_c"`
	Country       string          `json:"country" mapstructure:"location_country_c"`
	Lat           *float64        `json:"lat,omitempty" mapstructure:"location_coordinates_lat_c"`
	Lng           *float64        `json:"lng,omitempty" mapstructure:"location_coordinates_lng_c"`
	PricePerNight decimal.Decimal `json:"pricePerNight" mapstructure:"price_per_night_c"`
	StarRating    int             `json:"starRating" mapstructure:"star_rating_c"`
	Rating        float64         `json:"rating" mapstructure:"rating_c"`
	ReviewCount   int             `json:"reviewCount" mapstructure:"review_count_c"`
	Featured      bool            `json:"featured" mapstructure:"featured_c"`
	Available     bool            `json:"available" mapstructure:"available_c"`
	Description   string          `json:"description" mapstructure:"description_c"`

	// Set on detail lookups only, when live review stats were computed.
	ReviewStats *ReviewStats `json:"reviewStats,omitempty" mapstructure:"-"`
}

// Backend field names for hotels.
const (
	HotelName        = "name_c"
	HotelAddress     = "address_c"
	HotelCity        = "location_city_c"
	HotelState       = "location_state_c"
	HotelCountry     = "location_country_c"
	HotelLat         = "location_coordinates_lat_c"
	HotelLng         = "location_coordinates_lng_c"
	HotelPrice       = "price_per_night_c"
	HotelStarRating  = "star_rating_c"
	HotelRating      = "rating_c"
	HotelReviewCount = "review_count_c"
	HotelFeatured    = "featured_c"
	HotelAvailable   = "available_c"
	HotelDescription = "description_c"
)

var HotelFields = []string{
	FieldName, HotelAddress, HotelAvailable, HotelDescription, HotelFeatured,
	HotelCity, HotelLat, HotelLng, HotelCountry, HotelState, HotelName,
	HotelPrice, HotelRating, HotelReviewCount, HotelStarRating,
}

// HotelInput is a create payload or a partial update: nil fields are left
// untouched by updates and omitted from creates.
type HotelInput struct {
	Name          *string          `json:"name"`
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	State         *string          `json:"state"`
	Country       *string          `json:"country"`
	Lat           *float64         `json:"lat"`
	Lng           *float64         `json:"lng"`
	PricePerNight *decimal.Decimal `json:"pricePerNight"`
	StarRating    *int             `json:"starRating"`
	Rating        *float64         `json:"rating"`
	ReviewCount   *int             `json:"reviewCount"`
	Featured      *bool            `json:"featured"`
	Available     *bool            `json:"available"`
	Description   *string          `json:"description"`
}

type RoomOffer struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Capacity      int             `json:"capacity"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Amenities     []string        `json:"amenities"`
	Available     bool            `json:"available"`
}

type Availability struct {
	Available bool        `json:"available"`
	HotelID   int64       `json:"hotelId"`
	CheckIn   string      `json:"checkIn"`
	CheckOut  string      `json:"checkOut"`
	Rooms     []RoomOffer `json:"rooms"`
}
