package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/httperr"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

type PropertyGormRepository struct {
	db *gorm.DB
}

func NewPropertyGormRepository(db *gorm.DB) *PropertyGormRepository {
	return &PropertyGormRepository{db: db}
}

func (r *PropertyGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PropertyGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Sequence
// --------------------------------------------------

// NextSequence bumps the counter row of t and returns the new value. The
// UPDATE holds the row lock until the surrounding transaction ends, so
// concurrent creators of the same type are serialised.
//
// The counter never falls behind the highest pid already stored for t:
// rows written with an explicit pid after the counter was created are
// skipped over instead of reissued.
func (r *PropertyGormRepository) NextSequence(ctx context.Context, t domain.Type) (int64, error) {
	db := r.db.WithContext(ctx)

	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PropertySequence{PropertyType: string(t)}).Error; err != nil {
		return 0, fmt.Errorf("ensure sequence %s: %w", t, err)
	}

	if err := db.
		Model(&models.PropertySequence{}).
		Where("property_type = ?", string(t)).
		UpdateColumn("last_value", gorm.Expr("last_value + ?", 1)).Error; err != nil {
		return 0, fmt.Errorf("bump sequence %s: %w", t, err)
	}

	var seq models.PropertySequence
	if err := db.
		Where("property_type = ?", string(t)).
		First(&seq).Error; err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", t, err)
	}

	// pids are zero padded, so the longest then lexically greatest is the max
	var pids []string
	if err := db.
		Model(&models.Property{}).
		Where("property_type = ?", string(t)).
		Order("LENGTH(pid) DESC, pid DESC").
		Limit(1).
		Pluck("pid", &pids).Error; err != nil {
		return 0, fmt.Errorf("scan pids %s: %w", t, err)
	}

	if stored := domain.MaxPIDNumber(pids); seq.LastValue <= stored {
		seq.LastValue = stored + 1
		if err := db.
			Model(&models.PropertySequence{}).
			Where("property_type = ?", string(t)).
			UpdateColumn("last_value", seq.LastValue).Error; err != nil {
			return 0, fmt.Errorf("advance sequence %s: %w", t, err)
		}
	}
	return seq.LastValue, nil
}

// --------------------------------------------------
// Property
// --------------------------------------------------

func (r *PropertyGormRepository) Create(ctx context.Context, p *models.Property) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
	if isUniqueViolation(err) {
		return httperr.Conflict("duplicate_pid", "A property with this pid already exists.")
	}
	return err
}

func (r *PropertyGormRepository) Update(ctx context.Context, p *models.Property) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *PropertyGormRepository) Delete(ctx context.Context, p *models.Property) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("property_id = ?", p.ID).Delete(&models.PropertyImage{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Property{}, p.ID).Error
}

func (r *PropertyGormRepository) FindByPID(ctx context.Context, pid string) (*models.Property, error) {
	var p models.Property
	if err := r.withRelations(r.db.WithContext(ctx)).
		Where("pid = ?", pid).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyGormRepository) FindByPIDForUpdate(ctx context.Context, pid string) (*models.Property, error) {
	var p models.Property
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pid = ?", pid).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Property, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Property{})

	if f.Action != "" {
		q = q.Where("action = ?", string(f.Action))
	}
	if f.Type != "" {
		q = q.Where("property_type = ?", string(f.Type))
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.OwnerID != nil {
		q = q.Where("user_id = ?", *f.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var props []models.Property
	if err := r.withRelations(q).
		Order("id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&props).Error; err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

func (r *PropertyGormRepository) withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		})
}

// --------------------------------------------------
// Images
// --------------------------------------------------

func (r *PropertyGormRepository) CreateImage(ctx context.Context, img *models.PropertyImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *PropertyGormRepository) SetImagePath(ctx context.Context, imageID uint, path string) error {
	return r.db.WithContext(ctx).
		Model(&models.PropertyImage{}).
		Where("id = ?", imageID).
		Update("image", path).Error
}

func (r *PropertyGormRepository) NextImagePosition(ctx context.Context, propertyID uint) (int, error) {
	var next int
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyImage{}).
		Select("COALESCE(MAX(position), -1) + 1").
		Where("property_id = ?", propertyID).
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (r *PropertyGormRepository) FindImage(ctx context.Context, propertyID, imageID uint) (*models.PropertyImage, error) {
	var img models.PropertyImage
	if err := r.db.WithContext(ctx).
		Where("id = ? AND property_id = ?", imageID, propertyID).
		First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *PropertyGormRepository) DeleteImage(ctx context.Context, img *models.PropertyImage) error {
	return r.db.WithContext(ctx).Delete(&models.PropertyImage{}, img.ID).Error
}

// Compile-time check
var _ domain.Repository = (*PropertyGormRepository)(nil)
