package account

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/auth"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type ChangePasswordInput struct {
	OldPassword        string
	NewPassword        string
	NewPasswordConfirm string
}

type ChangePassword struct {
	store  domain.Store
	issuer *auth.Issuer
	cache  cache.TokenCache
	audit  *audit.Dispatcher
	log    logrus.FieldLogger
}

func NewChangePassword(
	store domain.Store,
	issuer *auth.Issuer,
	tokenCache cache.TokenCache,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *ChangePassword {
	return &ChangePassword{
		store:  store,
		issuer: issuer,
		cache:  tokenCache,
		audit:  audit,
		log:    log,
	}
}

// Execute replaces the password hash and every token of user. The new token
// is returned; all other sessions stop working.
func (uc *ChangePassword) Execute(
	ctx context.Context,
	user *models.User,
	in ChangePasswordInput,
) (string, error) {

	if !checkPassword(user.PasswordHash, in.OldPassword) {
		return "", httperr.Validation("old_password", "Old password is incorrect")
	}
	if in.NewPassword != in.NewPasswordConfirm {
		return "", httperr.Validation("new_password", "New passwords must match")
	}

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return "", err
	}

	var (
		token   *models.AuthToken
		revoked []string
	)
	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		user.PasswordHash = hash
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}

		tok, err := uc.issuer.Issue(user.ID)
		if err != nil {
			return err
		}
		if revoked, err = tx.Tokens().Replace(ctx, tok); err != nil {
			return err
		}
		token = tok
		return nil
	})
	if err != nil {
		return "", err
	}

	forget(ctx, uc.cache, uc.log, revoked...)

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionPasswordChanged,
		Entity:   audit.EntityUser,
		EntityID: idString(user.ID),
		Metadata: map[string]any{"revoked_tokens": len(revoked)},
	})

	return token.Key, nil
}
