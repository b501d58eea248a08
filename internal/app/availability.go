package app

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
)

// DefaultUnavailableProbability is the chance that an otherwise available
// hotel reports no rooms.
const DefaultUnavailableProbability = 0.1

// AvailabilityPolicy decides whether an available hotel has rooms for a
// given request.
type AvailabilityPolicy struct {
	UnavailableProbability float64
	Source                 domain.RandomSource
}

// NewAvailabilityPolicy draws from the process-wide generator.
func NewAvailabilityPolicy(p float64) AvailabilityPolicy {
	return AvailabilityPolicy{UnavailableProbability: p, Source: systemRandom{}}
}

func (p AvailabilityPolicy) open() bool {
	if p.Source == nil || p.UnavailableProbability <= 0 {
		return true
	}
	return p.Source.Float64() >= p.UnavailableProbability
}

type systemRandom struct{}

func (systemRandom) Float64() float64 { return rand.Float64() }

type roomClass struct {
	suffix     string
	kind       string
	capacity   int
	multiplier decimal.Decimal
	amenities  []string
}

var roomCatalog = []roomClass{
	{"deluxe", "Deluxe Room", 2, decimal.NewFromInt(1), []string{"Free WiFi", "Mini Bar", "City View"}},
	{"suite", "Executive Suite", 4, decimal.RequireFromString("1.5"), []string{"Free WiFi", "Mini Bar", "Ocean View", "Living Area"}},
}

// RoomsFor prices the room catalog off the hotel's nightly rate.
func RoomsFor(h domain.Hotel) []domain.RoomOffer {
	out := make([]domain.RoomOffer, 0, len(roomCatalog))
	for _, c := range roomCatalog {
		out = append(out, domain.RoomOffer{
			ID:            fmt.Sprintf("%d_%s", h.ID, c.suffix),
			Type:          c.kind,
			Capacity:      c.capacity,
			PricePerNight: h.PricePerNight.Mul(c.multiplier),
			Amenities:     append([]string(nil), c.amenities...),
			Available:     true,
		})
	}
	return out
}

// CheckAvailability reports whether hotelID can be booked between the two
// dates and, if so, which rooms are offered.
func (s *HotelService) CheckAvailability(ctx context.Context, hotelID int64, checkIn, checkOut string) (domain.Availability, error) {
	if _, err := stayNights(checkIn, checkOut); err != nil {
		return domain.Availability{}, err
	}
	h, err := s.GetByID(ctx, hotelID)
	if err != nil {
		return domain.Availability{}, err
	}
	av := domain.Availability{
		Available: h.Available && s.policy.open(),
		HotelID:   h.ID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Rooms:     []domain.RoomOffer{},
	}
	if av.Available {
		av.Rooms = RoomsFor(h)
	}
	return av, nil
}
