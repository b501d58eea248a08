package app

import (
	"context"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/query"
)

const anonymousReviewer = "Anonymous"

type ReviewFilter struct {
	HotelID   string
	UserID    string
	MinRating string
	Search    string
	SortBy    string
	Limit     int
	Offset    int
}

var newestFirst = domain.Order{Field: domain.FieldCreatedOn, Direction: domain.Desc}

var reviewSorts = query.Sorts{
	Keys: map[string]domain.Order{
		"newest":      newestFirst,
		"oldest":      {Field: domain.FieldCreatedOn, Direction: domain.Asc},
		"rating-high": {Field: domain.ReviewRating, Direction: domain.Desc},
		"rating-low":  {Field: domain.ReviewRating, Direction: domain.Asc},
	},
	Default: newestFirst,
}

// ReviewQuery maps a review filter onto a backend query. Reviews default
// to newest first.
func ReviewQuery(f ReviewFilter) (domain.Query, error) {
	b := query.New(domain.ReviewFields...)
	if f.HotelID != "" {
		b.Eq(domain.ReviewHotelID, b.Int("hotelId", f.HotelID))
	}
	if f.UserID != "" {
		b.Eq(domain.ReviewUserID, b.Int("userId", f.UserID))
	}
	if f.MinRating != "" {
		b.Gte(domain.ReviewRating, b.Int("minRating", f.MinRating))
	}
	b.AnyContains(f.Search, domain.ReviewTitle, domain.ReviewComment, domain.ReviewUserName)
	b.Sort(f.SortBy, reviewSorts)
	b.Page(f.Limit, f.Offset)
	return b.Build()
}

type ReviewService struct {
	be  domain.Backend
	now func() time.Time
}

func NewReviewService(be domain.Backend) *ReviewService {
	return &ReviewService{be: be, now: time.Now}
}

func (s *ReviewService) GetAll(ctx context.Context, f ReviewFilter) ([]domain.Review, error) {
	q, err := ReviewQuery(f)
	if err != nil {
		return nil, err
	}
	return fetchAll[domain.Review](ctx, s.be, domain.TableReview, q)
}

func (s *ReviewService) GetByID(ctx context.Context, id int64) (domain.Review, error) {
	return getOne[domain.Review](ctx, s.be, domain.TableReview, id, domain.ReviewFields)
}

func (s *ReviewService) GetByHotel(ctx context.Context, hotelID int64, f ReviewFilter) ([]domain.Review, error) {
	f.HotelID = idString(hotelID)
	return s.GetAll(ctx, f)
}

func (s *ReviewService) GetByUser(ctx context.Context, userID int64, f ReviewFilter) ([]domain.Review, error) {
	f.UserID = idString(userID)
	return s.GetAll(ctx, f)
}

// Create requires hotel, user, rating and title. Helpful defaults to 0,
// verified to true, the stay date to today and the reviewer name to
// "Anonymous".
func (s *ReviewService) Create(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	if err := validateReview(in, true); err != nil {
		return domain.Review{}, err
	}
	r := reviewRecord(in)
	if in.Helpful == nil {
		r[domain.ReviewHelpful] = 0
	}
	if in.Verified == nil {
		r[domain.ReviewVerified] = true
	}
	if in.StayDate == nil {
		r[domain.ReviewStayDate] = s.now().UTC().Format(dateLayout)
	}
	if in.UserName == nil {
		r[domain.ReviewUserName] = anonymousReviewer
	}
	return createOne[domain.Review](ctx, s.be, domain.TableReview, r)
}

func (s *ReviewService) Update(ctx context.Context, id int64, in domain.ReviewInput) (domain.Review, error) {
	if err := validateReview(in, false); err != nil {
		return domain.Review{}, err
	}
	return updateOne[domain.Review](ctx, s.be, domain.TableReview, id, reviewRecord(in))
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return deleteOne(ctx, s.be, domain.TableReview, id)
}

// HotelStats aggregates every review rating of one hotel.
func (s *ReviewService) HotelStats(ctx context.Context, hotelID int64) (domain.ReviewStats, error) {
	q, err := query.New(domain.ReviewRating).Eq(domain.ReviewHotelID, hotelID).Build()
	if err != nil {
		return domain.ReviewStats{}, err
	}
	rs, err := s.be.Fetch(ctx, domain.TableReview, q)
	if err != nil {
		return domain.ReviewStats{}, logFailure("fetch", domain.TableReview, err)
	}
	ratings := make([]int, 0, len(rs))
	for _, r := range rs {
		ratings = append(ratings, ratingOf(r))
	}
	return SummarizeRatings(ratings), nil
}

func reviewRecord(in domain.ReviewInput) domain.Record {
	r := domain.Record{}
	put(r, domain.ReviewHotelID, in.HotelID)
	put(r, domain.ReviewUserID, in.UserID)
	put(r, domain.ReviewUserName, in.UserName)
	put(r, domain.ReviewUserAvatar, in.UserAvatar)
	put(r, domain.ReviewRating, in.Rating)
	put(r, domain.ReviewTitle, in.Title)
	put(r, domain.ReviewComment, in.Comment)
	put(r, domain.ReviewStayDate, in.StayDate)
	put(r, domain.ReviewHelpful, in.Helpful)
	put(r, domain.ReviewVerified, in.Verified)
	return r
}
