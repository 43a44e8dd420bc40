package models

import "time"

// AuthToken is the single live bearer token of a user.
type AuthToken struct {
	Key    string `gorm:"column:token_key;primaryKey;size:512" json:"-"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *AuthToken) Live(now time.Time) bool {
	return t.ExpiresAt == nil || now.Before(*t.ExpiresAt)
}
