package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleBroker   = "BROKER"
	RoleCustomer = "CUSTOMER"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`

	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	PhoneNumber    *string    `gorm:"size:15" json:"phone_number"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth"`
	ProfilePicture *string    `gorm:"size:255" json:"profile_picture"`
	Bio            string     `gorm:"size:500" json:"bio"`
	DigitalID      *string    `gorm:"size:50;uniqueIndex" json:"digital_id"`
	Address        *string    `gorm:"size:100" json:"address"`
	City           *string    `gorm:"size:100" json:"city"`
	Role           string     `gorm:"size:20;not null;default:'CUSTOMER'" json:"role"`

	IsSuperuser bool `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    bool `gorm:"not null;default:true" json:"is_active"`

	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}
