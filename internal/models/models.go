package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string `gorm:"size:100;not null"        json:"full_name"`
	Username     string `gorm:"size:100;unique;not null" json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Email        string `gorm:"size:100;unique;not null" json:"email"`
	Role         Role   `gorm:"size:20;not null;default:user" json:"role"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"   json:"price"`
	Image       string          `gorm:"not null"                      json:"image"`
	Description string          `gorm:"not null"                      json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Session binds an opaque client token to a user. Only the HMAC of the token
// is stored; the raw value exists client-side in the cookie and nowhere else.
type Session struct {
	ID        uint   `gorm:"primaryKey"                   json:"id"`
	TokenHash string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID    uint   `gorm:"index;not null"               json:"user_id"`
	ExpiresAt int64  `gorm:"not null"                     json:"expires_at"`
}
