package entities

import (
	"github.com/google/uuid"
)

// PaymentTransaction is one reconciled (or attempted) coin purchase.
// Reference is the internal transaction id generated at initiation time;
// the unique index is the database-level guard against crediting the same
// gateway notification twice.
type PaymentTransaction struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID               uuid.UUID `gorm:"index" json:"user_id"`
	Reference            string    `gorm:"uniqueIndex" json:"reference"`
	Gateway              string    `json:"gateway"` // "paystack", "waafi"
	Amount               float64   `json:"amount"`  // major currency unit
	Currency             string    `json:"currency"`
	Coins                int       `json:"coins"`
	Status               string    `json:"status"` // "success", or the gateway's status string
	PackageName          string    `json:"package_name,omitempty"`
	GatewayTransactionID string    `json:"gateway_transaction_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
