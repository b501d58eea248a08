package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayhub/internal/domain"
	"stayhub/internal/query"
)

const (
	recentBookingsLimit  = 5
	confirmationAttempts = 3
)

type BookingFilter struct {
	UserID string
	Status string
	SortBy string
	Limit  int
	Offset int
}

var bookingSorts = query.Sorts{
	Keys: map[string]domain.Order{
		"newest":   {Field: domain.FieldCreatedOn, Direction: domain.Desc},
		"oldest":   {Field: domain.FieldCreatedOn, Direction: domain.Asc},
		"check-in": {Field: domain.BookingCheckIn, Direction: domain.Asc},
	},
}

// BookingQuery maps a booking filter onto a backend query.
func BookingQuery(f BookingFilter) (domain.Query, error) {
	b := query.New(domain.BookingFields...)
	if f.Status != "" {
		st := domain.BookingStatus(f.Status)
		if !st.Valid() {
			return domain.Query{}, &domain.ValidationError{Field: "status", Value: f.Status, Reason: "unknown booking status"}
		}
		b.Eq(domain.BookingStatusField, string(st))
	}
	if f.UserID != "" {
		b.Eq(domain.BookingUserID, b.Int("userId", f.UserID))
	}
	b.Sort(f.SortBy, bookingSorts)
	b.Page(f.Limit, f.Offset)
	return b.Build()
}

type BookingService struct {
	be       domain.Backend
	registry domain.ConfirmationRegistry
	now      func() time.Time
	newCode  func(time.Time) string
}

// NewBookingService wires the booking module. registry may be nil, in
// which case confirmation numbers are not checked for reuse.
func NewBookingService(be domain.Backend, registry domain.ConfirmationRegistry) *BookingService {
	return &BookingService{be: be, registry: registry, now: time.Now, newCode: confirmationCode}
}

func confirmationCode(t time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("STY-%s-%s", t.UTC().Format("20060102"), strings.ToUpper(id[:8]))
}

func (s *BookingService) GetAll(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q, err := BookingQuery(f)
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Booking](ctx, s.be, domain.TableBooking, q)
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (domain.Booking, error) {
	return getOne[domain.Booking](ctx, s.be, domain.TableBooking, id, domain.BookingFields)
}

func (s *BookingService) GetByStatus(ctx context.Context, status, userID string) ([]domain.Booking, error) {
	if status == "" {
		return nil, &domain.ValidationError{Field: "status", Reason: "is required"}
	}
	return s.GetAll(ctx, BookingFilter{Status: status, UserID: userID})
}

// GetUpcoming lists bookings checking in today or later that are not
// cancelled, soonest first.
func (s *BookingService) GetUpcoming(ctx context.Context, userID string) ([]domain.Booking, error) {
	today := s.now().UTC().Format(dateLayout)
	b := query.New(domain.BookingFields...).
		Gte(domain.BookingCheckIn, today).
		Ne(domain.BookingStatusField, string(domain.StatusCancelled))
	if userID != "" {
		b.Eq(domain.BookingUserID, b.Int("userId", userID))
	}
	q, err := b.OrderBy(domain.BookingCheckIn, domain.Asc).Build()
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Booking](ctx, s.be, domain.TableBooking, q)
}

// GetRecent lists the newest bookings; limit <= 0 means 5.
func (s *BookingService) GetRecent(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = recentBookingsLimit
	}
	b := query.New(domain.BookingFields...)
	if userID != "" {
		b.Eq(domain.BookingUserID, b.Int("userId", userID))
	}
	q, err := b.OrderBy(domain.FieldCreatedOn, domain.Desc).Page(limit, 0).Build()
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Booking](ctx, s.be, domain.TableBooking, q)
}

// Create books a stay. Nights are derived from the dates, status defaults
// to confirmed and a confirmation number is generated when absent.
func (s *BookingService) Create(ctx context.Context, in domain.BookingInput) (domain.Booking, error) {
	if err := validateBooking(in); err != nil {
		return domain.Booking{}, err
	}
	nights, err := stayNights(*in.CheckIn, *in.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := matchNights(in.Nights, nights); err != nil {
		return domain.Booking{}, err
	}
	in.Nights = &nights
	if in.Status == nil {
		st := domain.StatusConfirmed
		in.Status = &st
	}
	code, err := s.claimConfirmation(ctx, in.ConfirmationNumber)
	if err != nil {
		return domain.Booking{}, err
	}
	in.ConfirmationNumber = &code
	return createOne[domain.Booking](ctx, s.be, domain.TableBooking, bookingRecord(in))
}

func (s *BookingService) claimConfirmation(ctx context.Context, given *string) (string, error) {
	if given != nil && strings.TrimSpace(*given) != "" {
		code := strings.TrimSpace(*given)
		if s.registry == nil {
			return code, nil
		}
		ok, err := s.registry.Reserve(ctx, code)
		if err != nil {
			return "", fmt.Errorf("reserve confirmation number: %w", err)
		}
		if !ok {
			return "", &domain.ValidationError{Field: "confirmationNumber", Value: code, Reason: "already in use"}
		}
		return code, nil
	}
	for i := 0; i < confirmationAttempts; i++ {
		code := s.newCode(s.now())
		if s.registry == nil {
			return code, nil
		}
		ok, err := s.registry.Reserve(ctx, code)
		if err != nil {
			return "", fmt.Errorf("reserve confirmation number: %w", err)
		}
		if ok {
			return code, nil
		}
		log.Warn().Str("code", code).Msg("confirmation number collision, regenerating")
	}
	return "", fmt.Errorf("could not allocate a unique confirmation number after %d attempts", confirmationAttempts)
}

// Update changes booking details. When a date or the nights count changes
// the stored booking is read so the resulting range can be checked and
// nights recomputed; a nights value that disagrees with the dates is
// rejected.
func (s *BookingService) Update(ctx context.Context, id int64, in domain.BookingUpdate) (domain.Booking, error) {
	if err := validateBookingUpdate(in); err != nil {
		return domain.Booking{}, err
	}
	if in.CheckIn != nil || in.CheckOut != nil || in.Nights != nil {
		checkIn, checkOut := in.CheckIn, in.CheckOut
		if checkIn == nil || checkOut == nil {
			cur, err := s.GetByID(ctx, id)
			if err != nil {
				return domain.Booking{}, err
			}
			if checkIn == nil {
				checkIn = &cur.CheckIn
			}
			if checkOut == nil {
				checkOut = &cur.CheckOut
			}
		}
		nights, err := stayNights(*checkIn, *checkOut)
		if err != nil {
			return domain.Booking{}, err
		}
		if err := matchNights(in.Nights, nights); err != nil {
			return domain.Booking{}, err
		}
		in.Nights = &nights
	}
	return updateOne[domain.Booking](ctx, s.be, domain.TableBooking, id, bookingUpdateRecord(in))
}

func matchNights(given *int, nights int) error {
	if given == nil || *given == nights {
		return nil
	}
	return &domain.ValidationError{
		Field: "nights", Value: strconv.Itoa(*given),
		Reason: fmt.Sprintf("does not match the %d nights between check-in and check-out", nights),
	}
}

// Cancel is the only status transition this service performs.
func (s *BookingService) Cancel(ctx context.Context, id int64) (domain.Booking, error) {
	rec := domain.Record{domain.BookingStatusField: string(domain.StatusCancelled)}
	return updateOne[domain.Booking](ctx, s.be, domain.TableBooking, id, rec)
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	return deleteOne(ctx, s.be, domain.TableBooking, id)
}

func bookingRecord(in domain.BookingInput) domain.Record {
	r := domain.Record{}
	if in.ConfirmationNumber != nil {
		r[domain.FieldName] = *in.ConfirmationNumber
	}
	put(r, domain.BookingHotelID, in.HotelID)
	put(r, domain.BookingUserID, in.UserID)
	put(r, domain.BookingHotelName, in.HotelName)
	put(r, domain.BookingHotelImage, in.HotelImage)
	put(r, domain.BookingLocation, in.Location)
	put(r, domain.BookingCheckIn, in.CheckIn)
	put(r, domain.BookingCheckOut, in.CheckOut)
	put(r, domain.BookingNights, in.Nights)
	put(r, domain.BookingGuests, in.Guests)
	put(r, domain.BookingRoomType, in.RoomType)
	if in.Status != nil {
		r[domain.BookingStatusField] = string(*in.Status)
	}
	put(r, domain.BookingConfirmation, in.ConfirmationNumber)
	putDecimal(r, domain.BookingTotalPrice, in.TotalPrice)
	put(r, domain.BookingGuestFirst, in.GuestFirstName)
	put(r, domain.BookingGuestLast, in.GuestLastName)
	put(r, domain.BookingGuestEmail, in.GuestEmail)
	put(r, domain.BookingGuestPhone, in.GuestPhone)
	return r
}

func bookingUpdateRecord(in domain.BookingUpdate) domain.Record {
	r := domain.Record{}
	put(r, domain.BookingCheckIn, in.CheckIn)
	put(r, domain.BookingCheckOut, in.CheckOut)
	put(r, domain.BookingNights, in.Nights)
	put(r, domain.BookingGuests, in.Guests)
	put(r, domain.BookingRoomType, in.RoomType)
	putDecimal(r, domain.BookingTotalPrice, in.TotalPrice)
	put(r, domain.BookingGuestFirst, in.GuestFirstName)
	put(r, domain.BookingGuestLast, in.GuestLastName)
	put(r, domain.BookingGuestEmail, in.GuestEmail)
	put(r, domain.BookingGuestPhone, in.GuestPhone)
	return r
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
