package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	PID          string `gorm:"column:pid;size:16;uniqueIndex;not null" json:"pid"`
	PropertyType string `gorm:"size:20;not null;index" json:"property_type"`

	Title         string          `gorm:"size:200;not null" json:"title"`
	SellerName    string          `gorm:"size:100;not null" json:"seller_name"`
	PhoneNumber   string          `gorm:"size:15;not null" json:"phone_number"`
	Email         string          `gorm:"size:254;not null" json:"email"`
	StreetAddress string          `gorm:"size:200;not null" json:"street_address"`
	City          string          `gorm:"size:100;not null" json:"city"`
	State         string          `gorm:"size:100;not null" json:"state"`
	Price         decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"price"`
	Size          decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"size"`
	LegalDocument bool            `gorm:"not null;default:false" json:"legal_document"`
	Map           *string         `gorm:"size:500" json:"map"`

	Status string `gorm:"size:20;not null;default:'Pending'" json:"status"`
	Action string `gorm:"size:20;not null;default:'Ongoing';index" json:"action"`

	CreatedDate     *time.Time `gorm:"type:date" json:"created_date"`
	TransactionDate *time.Time `gorm:"type:date" json:"transaction_date"`

	Bedrooms  *uint `json:"bedrooms"`
	Bathrooms *uint `json:"bathrooms"`
	BuiltYear *uint `json:"built_year"`

	UserID *uint `gorm:"index" json:"-"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Images []PropertyImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Property) TableName() string {
	return "properties"
}
