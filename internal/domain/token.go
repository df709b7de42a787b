package domain

import "time"

// AuthToken is the opaque bearer credential, one row per user. Logins
// fetch-or-create; the key is only rotated when the row is deleted
// (logout, account deletion, password reset).
type AuthToken struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	UserID    UserID    `gorm:"type:uuid;uniqueIndex:ux_tokens_user" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (AuthToken) TableName() string { return "auth_tokens" }
