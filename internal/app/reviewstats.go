package app

import (
	"strconv"
	"strings"

	"stayhub/internal/domain"
)

// SummarizeRatings reduces star ratings to average, count and histogram.
//
// Only integer ratings in 1..5 are counted; anything else (0 for missing
// included) is left out and reported in Skipped, so the histogram always
// sums to TotalReviews. The average is rounded half up to one decimal
// using integer arithmetic: 4.75 -> 4.8, 4.25 -> 4.3.
func SummarizeRatings(ratings []int) domain.ReviewStats {
	st := domain.ReviewStats{
		RatingDistribution: map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0},
	}
	sum := 0
	for _, r := range ratings {
		if r < 1 || r > 5 {
			st.Skipped++
			continue
		}
		st.RatingDistribution[r]++
		st.TotalReviews++
		sum += r
	}
	if st.TotalReviews == 0 {
		return st
	}
	n := st.TotalReviews
	// round(sum/n, 1) half up == floor((20*sum + n) / (2n)) / 10
	tenths := (20*sum + n) / (2 * n)
	st.AverageRating = float64(tenths) / 10
	return st
}

// ratingOf extracts a rating from a raw record, 0 when missing or malformed.
func ratingOf(r domain.Record) int {
	switch v := r[domain.ReviewRating].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v != float64(int(v)) {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case []byte:
		n, err := strconv.Atoi(strings.TrimSpace(string(v)))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
