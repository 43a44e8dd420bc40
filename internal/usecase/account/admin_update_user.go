package account

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

// AdminUpdateUserInput carries the fields only an admin may change.
type AdminUpdateUserInput struct {
	Role      *string
	DigitalID *string
	IsActive  *bool
}

type AdminUpdateUser struct {
	store domain.Store
	cache cache.TokenCache
	audit *audit.Dispatcher
	log   logrus.FieldLogger
}

func NewAdminUpdateUser(
	store domain.Store,
	tokenCache cache.TokenCache,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *AdminUpdateUser {
	return &AdminUpdateUser{store: store, cache: tokenCache, audit: audit, log: log}
}

func (uc *AdminUpdateUser) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
	in AdminUpdateUserInput,
) (*models.User, error) {

	if err := domain.Check(actor, domain.CapManageUser, domain.Target{UserID: id}); err != nil {
		return nil, err
	}

	users := uc.store.Users()
	user, err := users.FindByID(ctx, id)
	if notFound(err) {
		return nil, errUserNotFound()
	} else if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if in.Role != nil {
		role := domain.Role(strings.ToUpper(strings.TrimSpace(*in.Role)))
		if !role.Valid() {
			return nil, httperr.Validation("role", "\""+*in.Role+"\" is not a valid choice.")
		}
		user.Role = string(role)
		changes["role"] = user.Role
	}

	if in.DigitalID != nil {
		digitalID := optional(in.DigitalID)
		if digitalID != nil {
			taken, err := users.ExistsDigitalID(ctx, *digitalID, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, httperr.Validation("digital_id", "Digital ID already exists")
			}
		}
		user.DigitalID = digitalID
		changes["digital_id"] = digitalID
	}

	deactivated := false
	if in.IsActive != nil {
		if !*in.IsActive && user.ID == actor.UserID {
			return nil, httperr.Permission("cannot_deactivate_self", "You cannot deactivate your own account.")
		}
		deactivated = user.IsActive && !*in.IsActive
		user.IsActive = *in.IsActive
		changes["is_active"] = user.IsActive
	}

	var revoked []string
	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		if !deactivated {
			return nil
		}

		keys, err := tx.Tokens().KeysForUser(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := tx.Tokens().DeleteByKey(ctx, k); err != nil && !notFound(err) {
				return err
			}
		}
		revoked = keys
		return nil
	})
	if err != nil {
		return nil, err
	}

	forget(ctx, uc.cache, uc.log, revoked...)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionUserUpdated,
		Entity:   audit.EntityUser,
		EntityID: idString(user.ID),
		Metadata: changes,
	})

	return user, nil
}
