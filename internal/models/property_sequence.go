package models

// PropertySequence holds the last pid number handed out per property type.
type PropertySequence struct {
	PropertyType string `gorm:"primaryKey;size:20"`
	LastValue    int64  `gorm:"not null;default:0"`
}
