package domain

type User struct {
	ID            int64           `json:"id" mapstructure:"Id"`
	Name          string          `json:"name" mapstructure:"name_c"`
	FirstName     string          `json:"firstName" mapstructure:"first_name_c"`
	LastName      string          `json:"lastName" mapstructure:"last_name_c"`
	Email         string          `json:"email" mapstructure:"email_c"`
	Phone         string          `json:"phone" mapstructure:"phone_c"`
	Avatar        string          `json:"avatar,omitempty" mapstructure:"avatar_c"`
	LoyaltyStatus string          `json:"loyaltyStatus" mapstructure:"loyalty_status_c"`
	MemberSince   string          `json:"memberSince" mapstructure:"member_since_c"`
	TotalBookings int             `json:"totalBookings" mapstructure:"total_bookings_c"`
	Preferences   UserPreferences `json:"preferences" mapstructure:",squash"`
}

type UserPreferences struct {
	RoomType          string `json:"roomType" mapstructure:"room_type_c"`
	BedType           string `json:"bedType" mapstructure:"bed_type_c"`
	SmokingPreference string `json:"smokingPreference" mapstructure:"smoking_preference_c"`
	FloorPreference   string `json:"floorPreference" mapstructure:"floor_preference_c"`
	Newsletter        bool   `json:"newsletter" mapstructure:"newsletter_c"`
}

const (
	UserName          = "name_c"
	UserFirstName     = "first_name_c"
	UserLastName      = "last_name_c"
	UserEmail         = "email_c"
	UserPhone         = "phone_c"
	UserAvatar        = "avatar_c"
	UserLoyaltyStatus = "loyalty_status_c"
	UserMemberSince   = "member_since_c"
	UserTotalBookings = "total_bookings_c"
	UserRoomType      = "room_type_c"
	UserBedType       = "bed_type_c"
	UserSmoking       = "smoking_preference_c"
	UserFloor         = "floor_preference_c"
	UserNewsletter    = "newsletter_c"
)

var UserFields = []string{
	FieldName, UserAvatar, UserEmail, UserFirstName, UserLastName, UserPhone,
	UserLoyaltyStatus, UserMemberSince, UserTotalBookings, UserName,
	UserRoomType, UserBedType, UserSmoking, UserFloor, UserNewsletter,
}

type ProfileUpdate struct {
	Name      *string `json:"name"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
}

type PreferencesUpdate struct {
	RoomType          *string `json:"roomType"`
	BedType           *string `json:"bedType"`
	SmokingPreference *string `json:"smokingPreference"`
	FloorPreference   *string `json:"floorPreference"`
	Newsletter        *bool   `json:"newsletter"`
}

type UserInput struct {
	ProfileUpdate
	PreferencesUpdate
	LoyaltyStatus *string `json:"loyaltyStatus"`
	MemberSince   *string `json:"memberSince"`
	TotalBookings *int    `json:"totalBookings"`
}
