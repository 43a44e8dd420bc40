package models

import "time"

type PropertyImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID uint   `gorm:"not null;index" json:"-"`
	Image      string `gorm:"size:255;not null" json:"image"`
	Position   int    `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"-"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}
