package account

import (
	"context"
	"io"
	"strings"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/auth"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/imaging"
	"github.com/BruksfildServices01/realty-api/internal/models"
	"github.com/BruksfildServices01/realty-api/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	Password2 string

	FirstName   string
	LastName    string
	PhoneNumber *string
	DateOfBirth *string
	Bio         string
	DigitalID   *string
	Address     *string
	City        *string
	Role        string

	ProfilePicture io.Reader
}

type AuthResult struct {
	User  *models.User
	Token string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	store            domain.Store
	issuer           *auth.Issuer
	pictures         *Pictures
	audit            *audit.Dispatcher
	checkEmailDomain bool
}

func NewRegister(
	store domain.Store,
	issuer *auth.Issuer,
	pictures *Pictures,
	audit *audit.Dispatcher,
	checkEmailDomain bool,
) *Register {
	return &Register{
		store:            store,
		issuer:           issuer,
		pictures:         pictures,
		audit:            audit,
		checkEmailDomain: checkEmailDomain,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {

	// --------------------------------------------------
	// Field rules; the request shape is checked at binding
	// --------------------------------------------------
	email := validators.NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	fe := httperr.FieldErrors{}
	if uc.checkEmailDomain && !validators.IsEmailDomainValid(email) {
		fe.Add("email", "The email domain does not appear to be valid.")
	}
	if in.Password != in.Password2 {
		fe.Add("password", "Passwords must match")
	}

	dob := parseDate(fe, "date_of_birth", in.DateOfBirth)

	role := domain.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if role == "" {
		role = domain.RoleCustomer
	}
	switch {
	case !role.Valid():
		fe.Add("role", "\""+in.Role+"\" is not a valid choice.")
	case !role.SelfAssignable():
		fe.Add("role", "This role cannot be chosen at registration.")
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Uniqueness
	// --------------------------------------------------
	users := uc.store.Users()
	digitalID := optional(in.DigitalID)

	if taken, err := users.ExistsEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		fe.Add("email", "Email already exists")
	}
	if taken, err := users.ExistsUsername(ctx, username, 0); err != nil {
		return nil, err
	} else if taken {
		fe.Add("username", "A user with that username already exists.")
	}
	if digitalID != nil {
		if taken, err := users.ExistsDigitalID(ctx, *digitalID, 0); err != nil {
			return nil, err
		} else if taken {
			fe.Add("digital_id", "Digital ID already exists")
		}
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Picture is decoded before anything is written
	// --------------------------------------------------
	var picture *imaging.Result
	if in.ProfilePicture != nil && uc.pictures != nil {
		var err error
		if picture, err = uc.pictures.Prepare(in.ProfilePicture); err != nil {
			return nil, err
		}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		PhoneNumber:  optional(in.PhoneNumber),
		DateOfBirth:  dob,
		Bio:          in.Bio,
		DigitalID:    digitalID,
		Address:      optional(in.Address),
		City:         optional(in.City),
		Role:         string(role),
		IsActive:     true,
	}

	// --------------------------------------------------
	// User + token (+ picture) in one transaction
	// --------------------------------------------------
	var (
		token    *models.AuthToken
		uploaded *string
	)
	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		if picture != nil {
			key, err := uc.pictures.Put(ctx, user.ID, picture)
			if err != nil {
				return err
			}
			uploaded = &key
			user.ProfilePicture = &key
			if err := tx.Users().Update(ctx, user); err != nil {
				return err
			}
		}

		tok, _, err := tx.Tokens().GetOrCreate(ctx, user.ID, func() (*models.AuthToken, error) {
			return uc.issuer.Issue(user.ID)
		})
		if err != nil {
			return err
		}
		token = tok
		return nil
	})
	if err != nil {
		uc.pictures.Discard(context.WithoutCancel(ctx), uploaded)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   audit.EntityUser,
		EntityID: idString(user.ID),
		Metadata: map[string]any{"role": user.Role},
	})

	return &AuthResult{User: user, Token: token.Key}, nil
}
