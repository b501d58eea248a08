package app

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	isDate   = validation.Date(dateLayout).Error("must be a date (YYYY-MM-DD)")
	positive = validation.Min(1).Error("must be greater than zero")
)

// nonNegative works on decimal.Decimal and *decimal.Decimal.
var nonNegative = validation.By(func(v any) error {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		d = *x
	default:
		return nil
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
})

func validateHotel(in domain.HotelInput, create bool) error {
	return domain.Invalid(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.When(create, validation.Required), validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&in.StarRating, validation.NilOrNotEmpty, validation.Min(1), validation.Max(5)),
		validation.Field(&in.Rating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&in.ReviewCount, validation.Min(0)),
		validation.Field(&in.PricePerNight, nonNegative),
		validation.Field(&in.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&in.Lng, validation.Min(-180.0), validation.Max(180.0)),
	))
}

func validateReview(in domain.ReviewInput, create bool) error {
	return domain.Invalid(validation.ValidateStruct(&in,
		validation.Field(&in.HotelID, validation.When(create, validation.Required), validation.NilOrNotEmpty, positive),
		validation.Field(&in.UserID, validation.When(create, validation.Required), validation.NilOrNotEmpty, positive),
		validation.Field(&in.Rating,
			validation.When(create, validation.Required),
			validation.NilOrNotEmpty.Error("must be between 1 and 5"),
			validation.Min(1), validation.Max(5)),
		validation.Field(&in.Title, validation.When(create, validation.Required), validation.NilOrNotEmpty),
		validation.Field(&in.StayDate, isDate),
		validation.Field(&in.Helpful, validation.Min(0)),
		validation.Field(&in.UserAvatar, is.URL),
	))
}

func validateBooking(in domain.BookingInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.HotelID, validation.Required, positive),
		validation.Field(&in.UserID, validation.Required, positive),
		validation.Field(&in.CheckIn, validation.Required, isDate),
		validation.Field(&in.CheckOut, validation.Required, isDate),
		validation.Field(&in.Guests, validation.Required, positive),
		validation.Field(&in.Nights, validation.NilOrNotEmpty, positive),
		validation.Field(&in.Status, validation.By(validStatus)),
		validation.Field(&in.TotalPrice, nonNegative),
		validation.Field(&in.GuestEmail, is.EmailFormat),
	)
	if err != nil {
		return domain.Invalid(err)
	}
	return nil
}

func validateBookingUpdate(in domain.BookingUpdate) error {
	return domain.Invalid(validation.ValidateStruct(&in,
		validation.Field(&in.CheckIn, validation.NilOrNotEmpty, isDate),
		validation.Field(&in.CheckOut, validation.NilOrNotEmpty, isDate),
		validation.Field(&in.Guests, validation.NilOrNotEmpty, positive),
		validation.Field(&in.Nights, validation.NilOrNotEmpty, positive),
		validation.Field(&in.TotalPrice, nonNegative),
		validation.Field(&in.GuestEmail, is.EmailFormat),
	))
}

func validStatus(v any) error {
	s, ok := v.(*domain.BookingStatus)
	if !ok || s == nil {
		return nil
	}
	if !s.Valid() {
		return errors.New("must be one of confirmed, upcoming, completed, cancelled")
	}
	return nil
}

func validateProfile(in domain.ProfileUpdate) error {
	return domain.Invalid(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&in.Avatar, is.URL),
	))
}

// stayNights returns the nights between two YYYY-MM-DD dates, or a
// validation error unless check-out is after check-in.
func stayNights(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return 0, &domain.ValidationError{Field: "checkIn", Value: checkIn, Reason: "must be a date (YYYY-MM-DD)"}
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return 0, &domain.ValidationError{Field: "checkOut", Value: checkOut, Reason: "must be a date (YYYY-MM-DD)"}
	}
	if !out.After(in) {
		return 0, &domain.ValidationError{Field: "checkOut", Value: checkOut, Reason: "must be after check-in"}
	}
	return int(out.Sub(in).Hours() / 24), nil
}
