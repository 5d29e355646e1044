package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `json:"name"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	Password    string    `json:"-"`
	Role        string    `gorm:"default:'user'" json:"role"`
	PhoneNumber string    `json:"phone_number,omitempty"`

	// Wallet state. Balance is only ever mutated through atomic
	// conditional updates in pkg/wallet.
	CoinBalance         int `gorm:"not null;default:0" json:"coin_balance"`
	FreeContentConsumed int `gorm:"not null;default:0" json:"free_content_consumed"`

	ProfileComplete     bool   `gorm:"default:false" json:"profile_complete"`
	PreferredCategories string `json:"preferred_categories,omitempty"`
	IsAdmin             bool   `gorm:"default:false" json:"is_admin"`

	Timestamp
}
