package app

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain"
)

var today = time.Date(2030, 5, 10, 15, 0, 0, 0, time.UTC)

func newBookings(be domain.Backend, reg domain.ConfirmationRegistry) *BookingService {
	s := NewBookingService(be, reg)
	s.now = func() time.Time { return today }
	return s
}

func stay(hotel, user int64, in, out string) domain.BookingInput {
	return domain.BookingInput{
		HotelID: ptr(hotel), UserID: ptr(user),
		CheckIn: ptr(in), CheckOut: ptr(out), Guests: ptr(2),
	}
}

func TestConfirmationCode_Format(t *testing.T) {
	code := confirmationCode(today)
	assert.Regexp(t, regexp.MustCompile(`^STY-20300510-[0-9A-F]{8}$`), code)
	assert.NotEqual(t, code, confirmationCode(today))
}

func TestBookingService_CreateDefaults(t *testing.T) {
	svc := newBookings(newBackend(), nil)

	b, err := svc.Create(context.Background(), stay(1, 7, "2030-06-01", "2030-06-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Regexp(t, `^STY-20300510-`, b.ConfirmationNumber)
	assert.Equal(t, int64(7), b.UserID)
}

func TestBookingService_CreateValidation(t *testing.T) {
	svc := newBookings(newBackend(), nil)
	ctx := context.Background()

	in := stay(1, 7, "2030-06-01", "2030-06-04")
	in.Nights = ptr(2)
	_, err := svc.Create(ctx, in)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nights", ve.Field)

	_, err = svc.Create(ctx, stay(1, 7, "2030-06-04", "2030-06-04"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, stay(1, 7, "06/01/2030", "2030-06-04"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = stay(1, 7, "2030-06-01", "2030-06-04")
	in.Status = ptr(domain.BookingStatus("pending"))
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_ConfirmationRetry(t *testing.T) {
	reg := &scriptedRegistry{answers: []bool{false, false}}
	svc := newBookings(newBackend(), reg)
	n := 0
	svc.newCode = func(time.Time) string { n++; return fmt.Sprintf("STY-TEST-%d", n) }

	b, err := svc.Create(context.Background(), stay(1, 7, "2030-06-01", "2030-06-02"))
	require.NoError(t, err)
	assert.Equal(t, "STY-TEST-3", b.ConfirmationNumber)
	assert.Equal(t, []string{"STY-TEST-1", "STY-TEST-2", "STY-TEST-3"}, reg.seen)
}

func TestBookingService_ConfirmationExhausted(t *testing.T) {
	be := newBackend()
	svc := newBookings(be, &scriptedRegistry{answers: []bool{false, false, false}})

	_, err := svc.Create(context.Background(), stay(1, 7, "2030-06-01", "2030-06-02"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)

	rs, _ := be.Store.Fetch(context.Background(), domain.TableBooking, domain.Query{})
	assert.Empty(t, rs, "nothing is written without a confirmation number")
}

func TestBookingService_GivenConfirmation(t *testing.T) {
	ctx := context.Background()

	svc := newBookings(newBackend(), &scriptedRegistry{answers: []bool{false}})
	in := stay(1, 7, "2030-06-01", "2030-06-02")
	in.ConfirmationNumber = ptr("ABC123")
	_, err := svc.Create(ctx, in)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "confirmationNumber", ve.Field)

	svc = newBookings(newBackend(), &scriptedRegistry{err: errRegistryDown})
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, errRegistryDown)
}

func TestBookingService_UpdateRecomputesNights(t *testing.T) {
	svc := newBookings(newBackend(), nil)
	ctx := context.Background()

	b, err := svc.Create(ctx, stay(1, 7, "2030-06-01", "2030-06-04"))
	require.NoError(t, err)

	b, err = svc.Update(ctx, b.ID, domain.BookingUpdate{CheckOut: ptr("2030-06-08")})
	require.NoError(t, err)
	assert.Equal(t, 7, b.Nights)
	assert.Equal(t, domain.StatusConfirmed, b.Status)

	_, err = svc.Update(ctx, b.ID, domain.BookingUpdate{CheckIn: ptr("2030-06-09")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, 999, domain.BookingUpdate{CheckIn: ptr("2030-06-02")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// nights alone is checked against the stored dates
	_, err = svc.Update(ctx, b.ID, domain.BookingUpdate{Nights: ptr(10)})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nights", ve.Field)

	_, err = svc.Update(ctx, b.ID, domain.BookingUpdate{CheckOut: ptr("2030-06-05"), Nights: ptr(99)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	b, err = svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-06-08", b.CheckOut, "rejected patches leave the booking untouched")
	assert.Equal(t, 7, b.Nights)

	b, err = svc.Update(ctx, b.ID, domain.BookingUpdate{CheckOut: ptr("2030-06-05"), Nights: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, b.Nights)

	b, err = svc.Update(ctx, b.ID, domain.BookingUpdate{Nights: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, b.Nights)
}

func TestBookingService_CancelAndUpcoming(t *testing.T) {
	svc := newBookings(newBackend(), nil)
	ctx := context.Background()

	past, err := svc.Create(ctx, stay(1, 7, "2030-05-01", "2030-05-03"))
	require.NoError(t, err)
	later, err := svc.Create(ctx, stay(1, 7, "2030-08-01", "2030-08-03"))
	require.NoError(t, err)
	soon, err := svc.Create(ctx, stay(2, 7, "2030-05-10", "2030-05-12"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, stay(2, 8, "2030-06-10", "2030-06-12"))
	require.NoError(t, err)

	up, err := svc.GetUpcoming(ctx, "7")
	require.NoError(t, err)
	require.Len(t, up, 2)
	assert.Equal(t, soon.ID, up[0].ID, "check-in today counts as upcoming")
	assert.Equal(t, later.ID, up[1].ID)

	c, err := svc.Cancel(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, c.Status)

	up, err = svc.GetUpcoming(ctx, "7")
	require.NoError(t, err)
	require.Len(t, up, 1)
	assert.Equal(t, soon.ID, up[0].ID)

	cancelled, err := svc.GetByStatus(ctx, "cancelled", "")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.NotEqual(t, past.ID, cancelled[0].ID)

	_, err = svc.GetByStatus(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.GetUpcoming(ctx, "seven")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_GetRecent(t *testing.T) {
	svc := newBookings(newBackend(), nil)
	ctx := context.Background()
	var last int64
	for i := 0; i < 7; i++ {
		b, err := svc.Create(ctx, stay(1, 7, "2030-06-01", "2030-06-02"))
		require.NoError(t, err)
		last = b.ID
	}

	recent, err := svc.GetRecent(ctx, "7", 0)
	require.NoError(t, err)
	require.Len(t, recent, recentBookingsLimit)
	assert.Equal(t, last, recent[0].ID, "newest first")

	recent, err = svc.GetRecent(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestBookingQuery_Status(t *testing.T) {
	_, err := BookingQuery(BookingFilter{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	q, err := BookingQuery(BookingFilter{Status: "upcoming", UserID: "3", SortBy: "check-in"})
	require.NoError(t, err)
	assert.Len(t, q.Where, 2)
	assert.Equal(t, domain.BookingCheckIn, q.OrderBy[0].Field)
}

func TestBookingService_Delete(t *testing.T) {
	svc := newBookings(newBackend(), nil)
	ctx := context.Background()
	b, err := svc.Create(ctx, stay(1, 7, "2030-06-01", "2030-06-02"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err = svc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var batch *domain.BatchError
	assert.ErrorAs(t, svc.Delete(ctx, b.ID), &batch)
}
