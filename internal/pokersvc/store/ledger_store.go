package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerStore holds the buy-in and cash-out tables that settlement math
// runs over.
type LedgerStore struct {
	db *pgxpool.Pool
}

func NewLedgerStore(db *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) CreateBuyIn(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.BuyIn, error) {
	query := `
		INSERT INTO buy_ins (game_id, player_id, amount, approved)
		VALUES ($1, $2, $3, false)
		RETURNING id, game_id, player_id, amount, approved, created_at;
	`

	b := &models.BuyIn{}
	err := s.db.QueryRow(ctx, query, gameID, playerID, amount).Scan(
		&b.ID,
		&b.GameID,
		&b.PlayerID,
		&b.Amount,
		&b.Approved,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create buy-in: %w", err)
	}

	return b, nil
}

func (s *LedgerStore) GetBuyInByID(ctx context.Context, buyInID int64) (*models.BuyIn, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, game_id, player_id, amount, approved, created_at
		FROM buy_ins
		WHERE id = $1
	`, buyInID)

	b := &models.BuyIn{}
	err := row.Scan(&b.ID, &b.GameID, &b.PlayerID, &b.Amount, &b.Approved, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // buy-in not found
		}
		return nil, fmt.Errorf("failed to get buy-in: %w", err)
	}

	return b, nil
}

// ApproveBuyIn marks a pending buy-in approved. Zero rows affected means it
// was already approved or does not exist.
func (s *LedgerStore) ApproveBuyIn(ctx context.Context, buyInID int64) (bool, error) {
	ct, err := s.db.Exec(ctx, `
		UPDATE buy_ins SET approved = true WHERE id = $1 AND approved = false
	`, buyInID)
	if err != nil {
		return false, fmt.Errorf("failed to approve buy-in: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// GetBuyIns returns the player's buy-ins for one game in insertion order,
// approved and pending alike; callers filter on Approved.
func (s *LedgerStore) GetBuyIns(ctx context.Context, gameID, playerID int64) ([]*models.BuyIn, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, player_id, amount, approved, created_at
		FROM buy_ins
		WHERE game_id = $1 AND player_id = $2
		ORDER BY id
	`, gameID, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buyIns []*models.BuyIn
	for rows.Next() {
		var b models.BuyIn
		err := rows.Scan(&b.ID, &b.GameID, &b.PlayerID, &b.Amount, &b.Approved, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		buyIns = append(buyIns, &b)
	}

	return buyIns, rows.Err()
}

func (s *LedgerStore) CreateCashOut(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.CashOut, error) {
	query := `
		INSERT INTO cash_outs (game_id, player_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, game_id, player_id, amount, created_at;
	`

	c := &models.CashOut{}
	err := s.db.QueryRow(ctx, query, gameID, playerID, amount).Scan(
		&c.ID,
		&c.GameID,
		&c.PlayerID,
		&c.Amount,
		&c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("cash-out already recorded for player %d in game %d", playerID, gameID)
		}
		return nil, fmt.Errorf("failed to create cash-out: %w", err)
	}

	return c, nil
}

func (s *LedgerStore) HasCashOut(ctx context.Context, gameID, playerID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM cash_outs WHERE game_id = $1 AND player_id = $2
		)
	`, gameID, playerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check cash-out: %w", err)
	}
	return exists, nil
}

// GetCashOuts returns the player's cash-outs for one game in insertion
// order. The aggregator consumes only the first row.
func (s *LedgerStore) GetCashOuts(ctx context.Context, gameID, playerID int64) ([]*models.CashOut, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, player_id, amount, created_at
		FROM cash_outs
		WHERE game_id = $1 AND player_id = $2
		ORDER BY id
	`, gameID, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cashOuts []*models.CashOut
	for rows.Next() {
		var c models.CashOut
		err := rows.Scan(&c.ID, &c.GameID, &c.PlayerID, &c.Amount, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		cashOuts = append(cashOuts, &c)
	}

	return cashOuts, rows.Err()
}
