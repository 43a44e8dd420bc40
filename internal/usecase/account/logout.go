package account

import (
	"context"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
)

type Logout struct {
	tokens domain.TokenRepository
	cache  cache.TokenCache
	log    logrus.FieldLogger
}

func NewLogout(tokens domain.TokenRepository, tokenCache cache.TokenCache, log logrus.FieldLogger) *Logout {
	return &Logout{tokens: tokens, cache: tokenCache, log: log}
}

func (uc *Logout) Execute(ctx context.Context, key string) error {
	if key == "" {
		return errInvalidToken
	}

	// the row goes first so a concurrent lookup cannot refill the cache
	// from a token that is about to disappear
	err := uc.tokens.DeleteByKey(ctx, key)
	if err != nil && !notFound(err) {
		return err
	}
	forget(ctx, uc.cache, uc.log, key)

	if err != nil {
		return errInvalidToken
	}
	return nil
}

var errInvalidToken = httperr.Authentication("invalid_token", "Invalid token.")
