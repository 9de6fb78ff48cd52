package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GameStatusUpcoming  = "upcoming"
	GameStatusCompleted = "completed"
	GameStatusCanceled  = "canceled"
)

type Game struct {
	ID            int64           `json:"id"`             // Primary key
	HostID        int64           `json:"host_id"`        // FK to users(user_id)
	HostName      string          `json:"host_name,omitempty"` // filled by joined queries only
	ScheduledTime time.Time       `json:"scheduled_time"`
	Location      string          `json:"location"`
	BigBlind      decimal.Decimal `json:"big_blind"`
	Status        string          `json:"status"` // 'upcoming', 'completed', 'canceled'
	InviteCode    string          `json:"invite_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
