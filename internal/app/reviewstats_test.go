package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/domain"
)

func TestSummarizeRatings(t *testing.T) {
	cases := []struct {
		name    string
		in      []int
		avg     float64
		total   int
		skipped int
	}{
		{"empty", nil, 0, 0, 0},
		{"rounds half up", []int{5, 4, 5, 5}, 4.8, 4, 0},
		{"quarter rounds up", []int{5, 4, 4, 4}, 4.3, 4, 0},
		{"exact", []int{3}, 3.0, 1, 0},
		{"three fives and a four", []int{5, 5, 5, 4}, 4.8, 4, 0},
		{"half", []int{3, 4}, 3.5, 2, 0},
		{"five reviews", []int{5, 4, 4, 3, 5}, 4.2, 5, 0},
		{"thirds", []int{5, 4, 4}, 4.3, 3, 0},
		{"out of range skipped", []int{0, 6, -1, 2}, 2.0, 1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := SummarizeRatings(tc.in)
			assert.Equal(t, tc.avg, st.AverageRating)
			assert.Equal(t, tc.total, st.TotalReviews)
			assert.Equal(t, tc.skipped, st.Skipped)

			sum := 0
			for star := 1; star <= 5; star++ {
				n, ok := st.RatingDistribution[star]
				assert.True(t, ok, "bucket %d missing", star)
				sum += n
			}
			assert.Equal(t, st.TotalReviews, sum)
		})
	}
}

func TestRatingOf(t *testing.T) {
	assert.Equal(t, 4, ratingOf(domain.Record{domain.ReviewRating: 4.0}))
	assert.Equal(t, 0, ratingOf(domain.Record{domain.ReviewRating: 4.5}))
	assert.Equal(t, 3, ratingOf(domain.Record{domain.ReviewRating: " 3"}))
	assert.Equal(t, 5, ratingOf(domain.Record{domain.ReviewRating: []byte("5")}))
	assert.Equal(t, 0, ratingOf(domain.Record{}))
}

func TestSummarizeRatings_Idempotent(t *testing.T) {
	in := []int{5, 4, 4, 3, 5}
	a := SummarizeRatings(in)
	b := SummarizeRatings(in)
	assert.Equal(t, a, b)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 2, 5: 2}, a.RatingDistribution)
	assert.Equal(t, []int{5, 4, 4, 3, 5}, in, "input is not modified")
}
