package account

import (
	"context"
	"io"
	"strings"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/imaging"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

// UpdateProfileInput is a partial update; nil fields are left alone. Email,
// role and digital_id are not part of it.
type UpdateProfileInput struct {
	Username    *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	DateOfBirth *string
	Bio         *string
	Address     *string
	City        *string

	ProfilePicture io.Reader
}

type UpdateProfile struct {
	store    domain.Store
	pictures *Pictures
	audit    *audit.Dispatcher
}

func NewUpdateProfile(
	store domain.Store,
	pictures *Pictures,
	audit *audit.Dispatcher,
) *UpdateProfile {
	return &UpdateProfile{store: store, pictures: pictures, audit: audit}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	user *models.User,
	in UpdateProfileInput,
) (*models.User, error) {

	fe := httperr.FieldErrors{}
	dob := parseDate(fe, "date_of_birth", in.DateOfBirth)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username != user.Username {
			taken, err := uc.store.Users().ExistsUsername(ctx, username, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, httperr.Validation("username", "A user with that username already exists.")
			}
		}
	}

	var picture *imaging.Result
	if in.ProfilePicture != nil && uc.pictures != nil {
		var err error
		if picture, err = uc.pictures.Prepare(in.ProfilePicture); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Apply patch on a copy; the caller's user stays intact on failure
	// --------------------------------------------------
	next := *user
	if in.Username != nil {
		next.Username = strings.TrimSpace(*in.Username)
	}
	if in.FirstName != nil {
		next.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		next.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.PhoneNumber != nil {
		next.PhoneNumber = optional(in.PhoneNumber)
	}
	if in.DateOfBirth != nil {
		next.DateOfBirth = dob
	}
	if in.Bio != nil {
		next.Bio = *in.Bio
	}
	if in.Address != nil {
		next.Address = optional(in.Address)
	}
	if in.City != nil {
		next.City = optional(in.City)
	}

	var uploaded *string
	if picture != nil {
		key, err := uc.pictures.Put(ctx, user.ID, picture)
		if err != nil {
			return nil, err
		}
		uploaded = &key
		next.ProfilePicture = &key
	}

	if err := uc.store.Users().Update(ctx, &next); err != nil {
		uc.pictures.Discard(context.WithoutCancel(ctx), uploaded)
		return nil, err
	}

	if uploaded != nil {
		uc.pictures.Discard(ctx, user.ProfilePicture)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionUserUpdated,
		Entity:   audit.EntityUser,
		EntityID: idString(user.ID),
	})

	*user = next
	return user, nil
}
