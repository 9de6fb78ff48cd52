package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GamePlayerStore struct {
	db *pgxpool.Pool
}

func NewGamePlayerStore(db *pgxpool.Pool) *GamePlayerStore {
	return &GamePlayerStore{db: db}
}

func (s *GamePlayerStore) GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.GamePlayer, error) {
	query := `
		SELECT id, game_id, player_id, created_at
		FROM game_players
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.GamePlayer
	for rows.Next() {
		var gp models.GamePlayer
		err := rows.Scan(
			&gp.ID,
			&gp.GameID,
			&gp.PlayerID,
			&gp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		players = append(players, &gp)
	}

	return players, rows.Err()
}

func (s *GamePlayerStore) IsPlayerInGame(ctx context.Context, gameID, playerID int64) (bool, error) {
	var member bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM game_players WHERE game_id = $1 AND player_id = $2
		)
	`, gameID, playerID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return member, nil
}

// AddPlayerToGame fails on the unique_game_player constraint if the user has
// already joined the game.
func (s *GamePlayerStore) AddPlayerToGame(ctx context.Context, gameID, playerID int64) (*models.GamePlayer, error) {
	query := `
		INSERT INTO game_players (game_id, player_id)
		VALUES ($1, $2)
		RETURNING id, game_id, player_id, created_at;
	`

	gp := &models.GamePlayer{}
	err := s.db.QueryRow(ctx, query, gameID, playerID).Scan(
		&gp.ID,
		&gp.GameID,
		&gp.PlayerID,
		&gp.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, fmt.Errorf("user %d has already joined game %d", playerID, gameID)
			case "23503":
				return nil, fmt.Errorf("invalid reference: %s", pgErr.Message)
			}
		}
		return nil, fmt.Errorf("failed to create game player: %w", err)
	}

	return gp, nil
}
