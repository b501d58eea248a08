package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"stayhub/internal/domain"
	"stayhub/internal/query"
)

const syncPageSize = 100

// RatingSyncService writes live review stats back onto the denormalized
// hotel rating and review count.
type RatingSyncService struct {
	be    domain.Backend
	stats StatsSource
}

func NewRatingSyncService(be domain.Backend, stats StatsSource) *RatingSyncService {
	return &RatingSyncService{be: be, stats: stats}
}

// HotelIDs pages through every hotel id, lowest first.
func (s *RatingSyncService) HotelIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for offset := 0; ; offset += syncPageSize {
		q, err := query.New(domain.FieldID).
			OrderBy(domain.FieldID, domain.Asc).
			Page(syncPageSize, offset).
			Build()
		if err != nil {
			return nil, err
		}
		rs, err := s.be.Fetch(ctx, domain.TableHotel, q)
		if err != nil {
			return nil, logFailure("fetch", domain.TableHotel, err)
		}
		for _, r := range rs {
			id, err := decodeRecord[struct {
				ID int64 `mapstructure:"Id"`
			}](r)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id.ID)
		}
		if len(rs) < syncPageSize {
			return ids, nil
		}
	}
}

// SyncHotel recomputes one hotel's stats and updates the stored values if
// they drifted. It reports whether an update was written.
func (s *RatingSyncService) SyncHotel(ctx context.Context, id int64) (bool, error) {
	rec, err := s.be.GetByID(ctx, domain.TableHotel, id, []string{domain.HotelRating, domain.HotelReviewCount})
	if err != nil {
		return false, logFailure("get", domain.TableHotel, err)
	}
	if rec == nil {
		return false, domain.NotFound(domain.TableHotel, id)
	}
	cur, err := decodeRecord[domain.Hotel](rec)
	if err != nil {
		return false, err
	}
	st, err := s.stats.HotelStats(ctx, id)
	if err != nil {
		return false, fmt.Errorf("stats for hotel %d: %w", id, err)
	}
	if st.TotalReviews == cur.ReviewCount && math.Abs(st.AverageRating-cur.Rating) < 0.05 {
		return false, nil
	}
	_, err = updateOne[domain.Hotel](ctx, s.be, domain.TableHotel, id, domain.Record{
		domain.HotelRating:      st.AverageRating,
		domain.HotelReviewCount: st.TotalReviews,
	})
	if err != nil {
		return false, err
	}
	log.Info().
		Int64("hotel_id", id).
		Float64("rating_from", cur.Rating).
		Float64("rating_to", st.AverageRating).
		Int("reviews_from", cur.ReviewCount).
		Int("reviews_to", st.TotalReviews).
		Msg("hotel rating synced")
	return true, nil
}

// IsMissing reports whether err means the hotel vanished mid-run.
func IsMissing(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
