package account

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/auth"
	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

// Authenticate resolves a bearer token to its active user.
type Authenticate struct {
	store  domain.Store
	issuer *auth.Issuer
	cache  cache.TokenCache
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewAuthenticate(
	store domain.Store,
	issuer *auth.Issuer,
	tokenCache cache.TokenCache,
	log logrus.FieldLogger,
) *Authenticate {
	return &Authenticate{
		store:  store,
		issuer: issuer,
		cache:  tokenCache,
		log:    log,
		now:    time.Now,
	}
}

func (uc *Authenticate) Execute(ctx context.Context, key string) (*models.User, error) {
	userID, err := uc.issuer.Parse(key)
	if err != nil {
		return nil, errInvalidToken
	}

	cachedID, hit, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.WithError(err).Warn("token cache get failed")
		hit = false
	}

	if !hit || cachedID != userID {
		tok, err := uc.store.Tokens().FindByKey(ctx, key)
		if notFound(err) {
			return nil, errInvalidToken
		} else if err != nil {
			return nil, err
		}
		if tok.UserID != userID || !tok.Live(uc.now()) {
			return nil, errInvalidToken
		}
		if err := uc.cache.Set(ctx, key, userID); err != nil {
			uc.log.WithError(err).Warn("token cache set failed")
		}
	}

	user, err := uc.store.Users().FindByID(ctx, userID)
	if notFound(err) {
		return nil, errInvalidToken
	} else if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, httperr.Authentication("user_inactive", "User inactive or deleted.")
	}
	return user, nil
}
