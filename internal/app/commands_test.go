package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain"
)

func TestRatingSync_HotelIDsPages(t *testing.T) {
	be := newBackend()
	for i := 0; i < syncPageSize*2+5; i++ {
		be.Seed(domain.TableHotel, domain.Record{domain.HotelName: "H"})
	}
	ids, err := NewRatingSyncService(be, nil).HotelIDs(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, syncPageSize*2+5)
	assert.Equal(t, int64(1), ids[0])
	assert.Equal(t, int64(syncPageSize*2+5), ids[len(ids)-1])
	assert.Equal(t, int64(3), be.fetches.Load())
}

func TestRatingSync_SyncHotel(t *testing.T) {
	be := newBackend()
	seedHotels(be)
	reviews := NewReviewService(be)
	svc := NewRatingSyncService(be, reviews)
	ctx := context.Background()

	for _, r := range []int{4, 4, 5} {
		_, err := reviews.Create(ctx, domain.ReviewInput{HotelID: ptr(int64(1)), UserID: ptr(int64(1)), Rating: ptr(r), Title: ptr("t")})
		require.NoError(t, err)
	}

	changed, err := svc.SyncHotel(ctx, 1)
	require.NoError(t, err)
	assert.True(t, changed)

	rec, err := be.GetByID(ctx, domain.TableHotel, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.3, rec[domain.HotelRating])
	assert.Equal(t, 3, rec[domain.HotelReviewCount])

	changed, err = svc.SyncHotel(ctx, 1)
	require.NoError(t, err)
	assert.False(t, changed, "second run finds nothing to do")

	_, err = svc.SyncHotel(ctx, 99)
	assert.True(t, IsMissing(err))

	_, err = NewRatingSyncService(be, failingStats{}).SyncHotel(ctx, 2)
	var backend *domain.BackendError
	assert.ErrorAs(t, err, &backend)
}
