package models

import "time"

const (
	JoinRequestPending  = "pending"
	JoinRequestApproved = "approved"
	JoinRequestDenied   = "denied"
)

// JoinRequest is a player's request to join a game. Only the game's host may
// move it out of 'pending'; 'approved' and 'denied' are terminal.
type JoinRequest struct {
	ID        int64     `json:"id"`        // Primary key
	GameID    int64     `json:"game_id"`   // FK to games(id)
	PlayerID  int64     `json:"player_id"` // FK to users(user_id)
	Status    string    `json:"status"`    // 'pending', 'approved', 'denied'
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GamePlayer struct {
	ID        int64     `json:"id"`        // Primary key
	GameID    int64     `json:"game_id"`   // FK to games(id)
	PlayerID  int64     `json:"player_id"` // FK to users(user_id)
	CreatedAt time.Time `json:"created_at"`
}
