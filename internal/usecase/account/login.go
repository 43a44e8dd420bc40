package account

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/auth"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/models"
	"github.com/BruksfildServices01/realty-api/internal/validators"
)

type Login struct {
	store  domain.Store
	issuer *auth.Issuer
	cache  cache.TokenCache
	log    logrus.FieldLogger
}

func NewLogin(
	store domain.Store,
	issuer *auth.Issuer,
	tokenCache cache.TokenCache,
	log logrus.FieldLogger,
) *Login {
	return &Login{store: store, issuer: issuer, cache: tokenCache, log: log}
}

var errInvalidCredentials = httperr.ErrBusiness(
	httperr.KindValidation,
	"invalid_credentials",
	"Invalid login credentials",
)

// Execute authenticates by email and password and hands out the user's
// token, creating it when none is live.
func (uc *Login) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validators.NormalizeEmail(email)

	user, err := uc.store.Users().FindByEmail(ctx, email)
	if notFound(err) {
		return nil, errInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive || !checkPassword(user.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	tok, created, err := uc.store.Tokens().GetOrCreate(ctx, user.ID, func() (*models.AuthToken, error) {
		return uc.issuer.Issue(user.ID)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, tok.Key, user.ID); err != nil {
		uc.log.WithError(err).Warn("token cache set failed")
	}

	uc.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"new_token": created,
	}).Info("login")

	return &AuthResult{User: user, Token: tok.Key}, nil
}

