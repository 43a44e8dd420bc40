package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/realty-api/internal/domain/property"
	"github.com/BruksfildServices01/realty-api/internal/models"
)

// Migrate creates or updates the schema and seeds the pid counters.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertySequence{},
		&models.AuditLog{},
	); err != nil {
		return err
	}
	return SeedSequences(db)
}

// SeedSequences creates a counter row per property type, starting after the
// highest pid already stored. Existing counters are left alone.
func SeedSequences(db *gorm.DB) error {
	for _, t := range property.Types {
		var pids []string
		if err := db.Model(&models.Property{}).
			Where("property_type = ?", string(t)).
			Pluck("pid", &pids).Error; err != nil {
			return fmt.Errorf("load pids for %s: %w", t, err)
		}

		seq := models.PropertySequence{
			PropertyType: string(t),
			LastValue:    property.MaxPIDNumber(pids),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return fmt.Errorf("seed sequence %s: %w", t, err)
		}
	}
	return nil
}
