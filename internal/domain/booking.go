package domain

import "github.com/shopspring/decimal"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID                 int64           `json:"id" mapstructure:"Id"`
	HotelID            int64           `json:"hotelId" mapstructure:"hotel_id_c"`
	UserID             int64           `json:"userId" mapstructure:"user_id_c"`
	HotelName          string          `json:"hotelName" mapstructure:"hotel_name_c"`
	HotelImage         string          `json:"hotelImage,omitempty" mapstructure:"hotel_image_c"`
	Location           string          `json:"location" mapstructure:"location_c"`
	CheckIn            string          `json:"checkIn" mapstructure:"check_in_c"`
	CheckOut           string          `json:"checkOut" mapstructure:"check_out_c"`
	Nights             int             `json:"nights" mapstructure:"nights_c"`
	Guests             int             `json:"guests" mapstructure:"guests_c"`
	RoomType           string          `json:"roomType" mapstructure:"room_type_c"`
	Status             BookingStatus   `json:"status" mapstructure:"status_c"`
	ConfirmationNumber string          `json:"confirmationNumber" mapstructure:"confirmation_number_c"`
	TotalPrice         decimal.Decimal `json:"totalPrice" mapstructure:"total_price_c"`
	Guest              GuestDetails    `json:"guestDetails" mapstructure:",squash"`
	CreatedOn          string          `json:"createdOn,omitempty" mapstructure:"CreatedOn"`
}

type GuestDetails struct {
	FirstName string `json:"firstName" mapstructure:"guest_details_first_name_c"`
	LastName  string `json:"lastName" mapstructure:"guest_details_last_name_c"`
	Email     string `json:"email" mapstructure:"guest_details_email_c"`
	Phone     string `json:"phone" mapstructure:"guest_details_phone_c"`
}

const (
	BookingHotelID      = "hotel_id_c"
	BookingUserID       = "user_id_c"
	BookingHotelName    = "hotel_name_c"
	BookingHotelImage   = "hotel_image_c"
	BookingLocation     = "location_c"
	BookingCheckIn      = "check_in_c"
	BookingCheckOut     = "check_out_c"
	BookingNights       = "nights_c"
	BookingGuests       = "guests_c"
	BookingRoomType     = "room_type_c"
	BookingStatusField  = "status_c"
	BookingConfirmation = "confirmation_number_c"
	BookingTotalPrice   = "total_price_c"
	BookingGuestFirst   = "guest_details_first_name_c"
	BookingGuestLast    = "guest_details_last_name_c"
	BookingGuestEmail   = "guest_details_email_c"
	BookingGuestPhone   = "guest_details_phone_c"
)

var BookingFields = []string{
	FieldName, BookingCheckIn, BookingCheckOut, BookingConfirmation,
	BookingGuestEmail, BookingGuestFirst, BookingGuestLast, BookingGuestPhone,
	BookingGuests, BookingHotelID, BookingHotelImage, BookingHotelName,
	BookingLocation, BookingNights, BookingRoomType, BookingStatusField,
	BookingTotalPrice, BookingUserID, FieldCreatedOn,
}

// BookingInput creates a booking. Status may only be set on creation;
// afterwards the cancel operation is the only status change.
type BookingInput struct {
	HotelID            *int64           `json:"hotelId"`
	UserID             *int64           `json:"userId"`
	HotelName          *string          `json:"hotelName"`
	HotelImage         *string          `json:"hotelImage"`
	Location           *string          `json:"location"`
	CheckIn            *string          `json:"checkIn"`
	CheckOut           *string          `json:"checkOut"`
	Nights             *int             `json:"nights"`
	Guests             *int             `json:"guests"`
	RoomType           *string          `json:"roomType"`
	Status             *BookingStatus   `json:"status"`
	ConfirmationNumber *string          `json:"confirmationNumber"`
	TotalPrice         *decimal.Decimal `json:"totalPrice"`
	GuestFirstName     *string          `json:"guestFirstName"`
	GuestLastName      *string          `json:"guestLastName"`
	GuestEmail         *string          `json:"guestEmail"`
	GuestPhone         *string          `json:"guestPhone"`
}

// BookingUpdate is a partial update. It has no status field.
type BookingUpdate struct {
	CheckIn        *string          `json:"checkIn"`
	CheckOut       *string          `json:"checkOut"`
	Nights         *int             `json:"nights"`
	Guests         *int             `json:"guests"`
	RoomType       *string          `json:"roomType"`
	TotalPrice     *decimal.Decimal `json:"totalPrice"`
	GuestFirstName *string          `json:"guestFirstName"`
	GuestLastName  *string          `json:"guestLastName"`
	GuestEmail     *string          `json:"guestEmail"`
	GuestPhone     *string          `json:"guestPhone"`
}
