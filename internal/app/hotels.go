package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"stayhub/internal/domain"
	"stayhub/internal/query"
)

const featuredLimit = 4

// HotelFilter carries list filters as the caller sent them. Numeric
// values are coerced while the query is built.
type HotelFilter struct {
	Destination string
	MinPrice    string
	MaxPrice    string
	StarRatings []string
	MinRating   string
	SortBy      string
	Limit       int
	Offset      int
}

var hotelSorts = query.Sorts{
	Keys: map[string]domain.Order{
		"price-low":  {Field: domain.HotelPrice, Direction: domain.Asc},
		"price-high": {Field: domain.HotelPrice, Direction: domain.Desc},
		"rating":     {Field: domain.HotelRating, Direction: domain.Desc},
		"name":       {Field: domain.HotelName, Direction: domain.Asc},
	},
}

// HotelQuery maps a list filter onto a backend query.
func HotelQuery(f HotelFilter) (domain.Query, error) {
	b := query.New(domain.HotelFields...)
	if f.MinPrice != "" {
		b.Gte(domain.HotelPrice, b.Float("minPrice", f.MinPrice))
	}
	if f.MaxPrice != "" {
		b.Lte(domain.HotelPrice, b.Float("maxPrice", f.MaxPrice))
	}
	if len(f.StarRatings) > 0 {
		b.Eq(domain.HotelStarRating, b.Ints("starRating", f.StarRatings)...)
	}
	if f.MinRating != "" {
		b.Gte(domain.HotelRating, b.Float("rating", f.MinRating))
	}
	b.AnyContains(f.Destination, domain.HotelCity, domain.HotelState, domain.HotelName)
	b.Sort(f.SortBy, hotelSorts)
	b.Page(f.Limit, f.Offset)
	return b.Build()
}

// StatsSource computes live review stats for a hotel.
type StatsSource interface {
	HotelStats(ctx context.Context, hotelID int64) (domain.ReviewStats, error)
}

type HotelService struct {
	be     domain.Backend
	stats  StatsSource
	policy AvailabilityPolicy
}

func NewHotelService(be domain.Backend, stats StatsSource, policy AvailabilityPolicy) *HotelService {
	return &HotelService{be: be, stats: stats, policy: policy}
}

func (s *HotelService) GetAll(ctx context.Context, f HotelFilter) ([]domain.Hotel, error) {
	q, err := HotelQuery(f)
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Hotel](ctx, s.be, domain.TableHotel, q)
}

// GetByID returns the hotel with rating and review count recomputed from
// its live reviews. If that fails the stored values are returned as-is.
func (s *HotelService) GetByID(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := getOne[domain.Hotel](ctx, s.be, domain.TableHotel, id, domain.HotelFields)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.stats == nil {
		return h, nil
	}
	st, err := s.stats.HotelStats(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", id).Msg("review stats unavailable, using stored rating")
		return h, nil
	}
	if st.TotalReviews > 0 {
		h.Rating = st.AverageRating
		h.ReviewCount = st.TotalReviews
	}
	h.ReviewStats = &st
	return h, nil
}

func (s *HotelService) GetFeatured(ctx context.Context) ([]domain.Hotel, error) {
	q, err := query.New(domain.HotelFields...).
		Eq(domain.HotelFeatured, true).
		OrderBy(domain.FieldID, domain.Asc).
		Page(featuredLimit, 0).
		Build()
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Hotel](ctx, s.be, domain.TableHotel, q)
}

// Search matches term against name, city, state and description. A blank
// term returns no hotels without calling the backend.
func (s *HotelService) Search(ctx context.Context, term string) ([]domain.Hotel, error) {
	if strings.TrimSpace(term) == "" {
		return []domain.Hotel{}, nil
	}
	q, err := query.New(domain.HotelFields...).
		AnyContains(term, domain.HotelName, domain.HotelCity, domain.HotelState, domain.HotelDescription).
		Build()
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Hotel](ctx, s.be, domain.TableHotel, q)
}

func (s *HotelService) Create(ctx context.Context, in domain.HotelInput) (domain.Hotel, error) {
	if err := validateHotel(in, true); err != nil {
		return domain.Hotel{}, err
	}
	return createOne[domain.Hotel](ctx, s.be, domain.TableHotel, hotelRecord(in))
}

// CreateMany creates hotels in one backend call. If any record fails the
// returned *domain.BatchError lists every failure.
func (s *HotelService) CreateMany(ctx context.Context, in []domain.HotelInput) ([]domain.Hotel, error) {
	recs := make([]domain.Record, 0, len(in))
	for _, h := range in {
		if err := validateHotel(h, true); err != nil {
			return nil, err
		}
		recs = append(recs, hotelRecord(h))
	}
	if len(recs) == 0 {
		return []domain.Hotel{}, nil
	}
	return createMany[domain.Hotel](ctx, s.be, domain.TableHotel, recs)
}

func (s *HotelService) Update(ctx context.Context, id int64, in domain.HotelInput) (domain.Hotel, error) {
	if err := validateHotel(in, false); err != nil {
		return domain.Hotel{}, err
	}
	return updateOne[domain.Hotel](ctx, s.be, domain.TableHotel, id, hotelRecord(in))
}

func (s *HotelService) Delete(ctx context.Context, id int64) error {
	return deleteOne(ctx, s.be, domain.TableHotel, id)
}

func hotelRecord(in domain.HotelInput) domain.Record {
	r := domain.Record{}
	if in.Name != nil {
		r[domain.FieldName] = *in.Name
	}
	put(r, domain.HotelName, in.Name)
	put(r, domain.HotelAddress, in.Address)
	put(r, domain.HotelCity, in.City)
	put(r, domain.HotelState, in.State)
	put(r, domain.HotelCountry, in.Country)
	put(r, domain.HotelLat, in.Lat)
	put(r, domain.HotelLng, in.Lng)
	putDecimal(r, domain.HotelPrice, in.PricePerNight)
	put(r, domain.HotelStarRating, in.StarRating)
	put(r, domain.HotelRating, in.Rating)
	put(r, domain.HotelReviewCount, in.ReviewCount)
	put(r, domain.HotelFeatured, in.Featured)
	put(r, domain.HotelAvailable, in.Available)
	put(r, domain.HotelDescription, in.Description)
	return r
}
