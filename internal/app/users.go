package app

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"stayhub/internal/domain"
	"stayhub/internal/query"
)

type UserService struct {
	be domain.Backend
}

func NewUserService(be domain.Backend) *UserService {
	return &UserService{be: be}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return getOne[domain.User](ctx, s.be, domain.TableUser, id, domain.UserFields)
}

// GetCurrent returns the signed-in user. There is no session layer, so the
// first user record stands in for it.
func (s *UserService) GetCurrent(ctx context.Context) (domain.User, error) {
	q, err := query.New(domain.UserFields...).Sort("", query.Sorts{}).Page(1, 0).Build()
	if err != nil {
		return domain.User{}, err
	}
	us, err := fetchAll[domain.User](ctx, s.be, domain.TableUser, q)
	if err != nil {
		return domain.User{}, err
	}
	if len(us) == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return us[0], nil
}

func (s *UserService) Create(ctx context.Context, in domain.UserInput) (domain.User, error) {
	if err := validateProfile(in.ProfileUpdate); err != nil {
		return domain.User{}, err
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.TotalBookings, validation.Min(0)),
		validation.Field(&in.MemberSince, isDate),
	)
	if err != nil {
		return domain.User{}, domain.Invalid(err)
	}
	r := profileRecord(in.ProfileUpdate)
	for k, v := range preferencesRecord(in.PreferencesUpdate) {
		r[k] = v
	}
	put(r, domain.UserLoyaltyStatus, in.LoyaltyStatus)
	put(r, domain.UserMemberSince, in.MemberSince)
	put(r, domain.UserTotalBookings, in.TotalBookings)
	return createOne[domain.User](ctx, s.be, domain.TableUser, r)
}

// UpdateProfile changes name and contact fields only.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in domain.ProfileUpdate) (domain.User, error) {
	if err := validateProfile(in); err != nil {
		return domain.User{}, err
	}
	return updateOne[domain.User](ctx, s.be, domain.TableUser, id, profileRecord(in))
}

func (s *UserService) UpdatePreferences(ctx context.Context, id int64, in domain.PreferencesUpdate) (domain.User, error) {
	return updateOne[domain.User](ctx, s.be, domain.TableUser, id, preferencesRecord(in))
}

// UploadAvatar stores a reference (URL) to an already uploaded image.
func (s *UserService) UploadAvatar(ctx context.Context, id int64, avatarURL string) (domain.User, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if err := validation.Validate(avatarURL, validation.Required, is.URL); err != nil {
		return domain.User{}, &domain.ValidationError{Field: "avatar", Value: avatarURL, Reason: err.Error()}
	}
	return updateOne[domain.User](ctx, s.be, domain.TableUser, id, domain.Record{domain.UserAvatar: avatarURL})
}

func profileRecord(in domain.ProfileUpdate) domain.Record {
	r := domain.Record{}
	if in.Name != nil {
		r[domain.FieldName] = *in.Name
	}
	put(r, domain.UserName, in.Name)
	put(r, domain.UserFirstName, in.FirstName)
	put(r, domain.UserLastName, in.LastName)
	put(r, domain.UserEmail, in.Email)
	put(r, domain.UserPhone, in.Phone)
	put(r, domain.UserAvatar, in.Avatar)
	return r
}

func preferencesRecord(in domain.PreferencesUpdate) domain.Record {
	r := domain.Record{}
	put(r, domain.UserRoomType, in.RoomType)
	put(r, domain.UserBedType, in.BedType)
	put(r, domain.UserSmoking, in.SmokingPreference)
	put(r, domain.UserFloor, in.FloorPreference)
	put(r, domain.UserNewsletter, in.Newsletter)
	return r
}
