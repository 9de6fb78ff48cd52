package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JoinRequestStore struct {
	db *pgxpool.Pool
}

func NewJoinRequestStore(db *pgxpool.Pool) *JoinRequestStore {
	return &JoinRequestStore{db: db}
}

func (s *JoinRequestStore) CreateJoinRequest(ctx context.Context, gameID, playerID int64) (*models.JoinRequest, error) {
	query := `
		INSERT INTO join_requests (game_id, player_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, game_id, player_id, status, created_at, updated_at;
	`

	jr := &models.JoinRequest{}
	err := s.db.QueryRow(ctx, query, gameID, playerID).Scan(
		&jr.ID,
		&jr.GameID,
		&jr.PlayerID,
		&jr.Status,
		&jr.CreatedAt,
		&jr.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("invalid reference: %s", pgErr.Message)
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	return jr, nil
}

func (s *JoinRequestStore) GetJoinRequestByID(ctx context.Context, requestID int64) (*models.JoinRequest, error) {
	query := `
		SELECT id, game_id, player_id, status, created_at, updated_at
		FROM join_requests
		WHERE id = $1
	`

	jr := &models.JoinRequest{}
	err := s.db.QueryRow(ctx, query, requestID).Scan(
		&jr.ID,
		&jr.GameID,
		&jr.PlayerID,
		&jr.Status,
		&jr.CreatedAt,
		&jr.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // request not found
		}
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}

	return jr, nil
}

func (s *JoinRequestStore) HasPendingRequest(ctx context.Context, gameID, playerID int64) (bool, error) {
	var pending bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM join_requests
			WHERE game_id = $1 AND player_id = $2 AND status = 'pending'
		)
	`, gameID, playerID).Scan(&pending)
	if err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return pending, nil
}

// UpdateStatus moves a pending request to a terminal status. Zero rows
// affected means the request raced with another transition.
func (s *JoinRequestStore) UpdateStatus(ctx context.Context, requestID int64, status string) error {
	ct, err := s.db.Exec(ctx, `
		UPDATE join_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = 'pending'
	`, status, requestID)
	if err != nil {
		return fmt.Errorf("failed to update join request status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.Conflictf("join request is no longer pending")
	}
	return nil
}

// ApproveAndAddPlayer flips the request to approved and inserts the
// membership row in one transaction, so a failed insert never leaves an
// approved request without a game_players row.
func (s *JoinRequestStore) ApproveAndAddPlayer(ctx context.Context, requestID, gameID, playerID int64) error {
	return pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
			UPDATE join_requests
			SET status = 'approved', updated_at = now()
			WHERE id = $1 AND status = 'pending'
		`, requestID)
		if err != nil {
			return fmt.Errorf("failed to approve join request: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return apperr.Conflictf("join request is no longer pending")
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO game_players (game_id, player_id)
			VALUES ($1, $2)
		`, gameID, playerID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return apperr.Conflictf("player is already in the game")
			}
			return fmt.Errorf("failed to add player to game: %w", err)
		}
		return nil
	})
}
