package account

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
)

type DeleteUser struct {
	store    domain.Store
	cache    cache.TokenCache
	pictures *Pictures
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
}

func NewDeleteUser(
	store domain.Store,
	tokenCache cache.TokenCache,
	pictures *Pictures,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *DeleteUser {
	return &DeleteUser{
		store:    store,
		cache:    tokenCache,
		pictures: pictures,
		audit:    audit,
		log:      log,
	}
}

// Execute removes user id on behalf of actor. Its token goes with it and the
// properties it owned are kept without an owner.
func (uc *DeleteUser) Execute(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.IsAdmin() {
		return domain.Check(actor, domain.CapDeleteUser, domain.Target{})
	}

	users := uc.store.Users()

	target, err := users.FindByID(ctx, id)
	if notFound(err) {
		return errUserNotFound()
	} else if err != nil {
		return err
	}

	if err := domain.Check(actor, domain.CapDeleteUser, domain.UserTarget(target)); err != nil {
		return err
	}

	keys, err := uc.store.Tokens().KeysForUser(ctx, target.ID)
	if err != nil {
		return err
	}

	if err := users.Delete(ctx, target); err != nil {
		return err
	}

	forget(ctx, uc.cache, uc.log, keys...)
	uc.pictures.Discard(ctx, target.ProfilePicture)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   audit.ActionUserDeleted,
		Entity:   audit.EntityUser,
		EntityID: idString(target.ID),
		Metadata: map[string]any{"username": target.Username},
	})

	return nil
}
