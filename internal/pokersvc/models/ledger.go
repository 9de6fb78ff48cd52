package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuyIn is money a player puts into a game. Only approved buy-ins count
// toward settlement.
type BuyIn struct {
	ID        int64           `json:"id"`
	GameID    int64           `json:"game_id"`
	PlayerID  int64           `json:"player_id"`
	Amount    decimal.Decimal `json:"amount"`
	Approved  bool            `json:"approved"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashOut is the amount a player leaves a game with. At most one per
// (game, player) is recorded.
type CashOut struct {
	ID        int64           `json:"id"`
	GameID    int64           `json:"game_id"`
	PlayerID  int64           `json:"player_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
