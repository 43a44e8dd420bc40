package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type TokenGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTokenGormRepository(db *gorm.DB) *TokenGormRepository {
	return &TokenGormRepository{db: db, now: time.Now}
}

func (r *TokenGormRepository) GetOrCreate(
	ctx context.Context,
	userID uint,
	issue func() (*models.AuthToken, error),
) (*models.AuthToken, bool, error) {

	var (
		out     *models.AuthToken
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.AuthToken
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&existing).Error

		switch {
		case err == nil:
			if existing.Live(r.now()) {
				out = &existing
				return nil
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		tok, err := issue()
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(tok).Error; err != nil {
			return err
		}
		out, created = tok, true
		return nil
	})

	if isUniqueViolation(err) {
		// A concurrent login stored its token first; hand that one out.
		var winner models.AuthToken
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			First(&winner).Error; err != nil {
			return nil, false, err
		}
		return &winner, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func (r *TokenGormRepository) Replace(ctx context.Context, tok *models.AuthToken) ([]string, error) {
	var revoked []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AuthToken{}).
			Where("user_id = ?", tok.UserID).
			Pluck("token_key", &revoked).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", tok.UserID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(tok).Error
	})
	if err != nil {
		return nil, err
	}
	return revoked, nil
}

func (r *TokenGormRepository) FindByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var tok models.AuthToken
	if err := r.db.WithContext(ctx).
		Where("token_key = ?", key).
		First(&tok).Error; err != nil {
		return nil, err
	}
	return &tok, nil
}

func (r *TokenGormRepository) DeleteByKey(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Where("token_key = ?", key).Delete(&models.AuthToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TokenGormRepository) KeysForUser(ctx context.Context, userID uint) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).
		Model(&models.AuthToken{}).
		Where("user_id = ?", userID).
		Pluck("token_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

var _ account.TokenRepository = (*TokenGormRepository)(nil)
