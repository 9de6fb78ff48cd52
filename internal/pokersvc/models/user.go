package models

import (
	"time"
)

// PaymentHandle is one external payment account a user can be paid through.
type PaymentHandle struct {
	Type   string `json:"type"`   // venmo, paypal, zelle, cashapp
	Handle string `json:"handle"`
}

// User represents the users table in the database.
type User struct {
	UserID         int64           `json:"user_id"`
	DisplayName    string          `json:"display_name"`
	PasswordHash   string          `json:"-"`
	PaymentHandles []PaymentHandle `json:"payment_handles,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
