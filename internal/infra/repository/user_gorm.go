package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/realty-api/internal/domain/account"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
	return translateUserError(err)
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
	return translateUserError(err)
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserGormRepository) ExistsUsername(ctx context.Context, username string, exceptID uint) (bool, error) {
	return r.exists(ctx, "username = ? AND id <> ?", username, exceptID)
}

func (r *UserGormRepository) ExistsDigitalID(ctx context.Context, digitalID string, exceptID uint) (bool, error) {
	return r.exists(ctx, "digital_id = ? AND id <> ?", digitalID, exceptID)
}

func (r *UserGormRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where(query, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserGormRepository) Delete(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Property{}).
			Where("user_id = ?", u.ID).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, u.ID).Error
	})
}

func translateUserError(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	switch duplicateColumn(err, "email", "username", "digital_id") {
	case "email":
		return httperr.Validation("email", "Email already exists")
	case "username":
		return httperr.Validation("username", "A user with that username already exists.")
	case "digital_id":
		return httperr.Validation("digital_id", "Digital ID already exists")
	}
	return httperr.Conflict("duplicate_user", "User already exists.")
}

var _ account.UserRepository = (*UserGormRepository)(nil)
