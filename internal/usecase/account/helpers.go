package account

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
)

const dateLayout = "2006-01-02"

var hashCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func errUserNotFound() error {
	return httperr.NotFoundErr("user_not_found", "User not found.")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// forget drops token keys from the cache. The database stays the source of
// truth, so a cache failure is only logged.
func forget(ctx context.Context, c cache.TokenCache, log logrus.FieldLogger, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		log.WithError(err).Warn("token cache delete failed")
	}
}

// optional turns a submitted value into a nullable column value.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func parseDate(fe httperr.FieldErrors, field string, raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		fe.Add(field, "Date has wrong format. Use YYYY-MM-DD.")
		return nil
	}
	return &d
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
