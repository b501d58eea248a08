package domain

type Review struct {
	ID         int64  `json:"id" mapstructure:"Id"`
	HotelID    int64  `json:"hotelId" mapstructure:"hotel_id_c"`
	UserID     int64  `json:"userId" mapstructure:"user_id_c"`
	UserName   string `json:"userName" mapstructure:"user_name_c"`
	UserAvatar string `json:"userAvatar,omitempty" mapstructure:"user_avatar_c"`
	Rating     int    `json:"rating" mapstructure:"rating_c"`
	Title      string `json:"title" mapstructure:"title_c"`
	Comment    string `json:"comment" mapstructure:"comment_c"`
	StayDate   string `json:"stayDate" mapstructure:"stay_date_c"`
	Helpful    int    `json:"helpful" mapstructure:"helpful_c"`
	Verified   bool   `json:"verified" mapstructure:"verified_c"`
	CreatedOn  string `json:"createdOn,omitempty" mapstructure:"CreatedOn"`
	ModifiedOn string `json:"modifiedOn,omitempty" mapstructure:"ModifiedOn"`
}

const (
	ReviewHotelID    = "hotel_id_c"
	ReviewUserID     = "user_id_c"
	ReviewUserName   = "user_name_c"
	ReviewUserAvatar = "user_avatar_c"
	ReviewRating     = "rating_c"
	ReviewTitle      = "title_c"
	ReviewComment    = "comment_c"
	ReviewStayDate   = "stay_date_c"
	ReviewHelpful    = "helpful_c"
	ReviewVerified   = "verified_c"
	FieldCreatedOn   = "CreatedOn"
	FieldModifiedOn  = "ModifiedOn"
)

var ReviewFields = []string{
	FieldName, ReviewComment, ReviewHelpful, ReviewHotelID, ReviewRating,
	ReviewStayDate, ReviewTitle, ReviewUserAvatar, ReviewUserID,
	ReviewUserName, ReviewVerified, FieldCreatedOn, FieldModifiedOn,
}

type ReviewInput struct {
	HotelID    *int64  `json:"hotelId"`
	UserID     *int64  `json:"userId"`
	UserName   *string `json:"userName"`
	UserAvatar *string `json:"userAvatar"`
	Rating     *int    `json:"rating"`
	Title      *string `json:"title"`
	Comment    *string `json:"comment"`
	StayDate   *string `json:"stayDate"`
	Helpful    *int    `json:"helpful"`
	Verified   *bool   `json:"verified"`
}

// ReviewStats summarises the ratings of one hotel.
type ReviewStats struct {
	AverageRating      float64     `json:"averageRating"`
	TotalReviews       int         `json:"totalReviews"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
	// Ratings outside 1..5 (or missing) that were left out of the summary.
	Skipped int `json:"skipped,omitempty"`
}
