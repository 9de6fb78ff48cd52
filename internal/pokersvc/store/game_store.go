package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

const gameColumns = `id, host_id, scheduled_time, location, big_blind, status, invite_code, created_at, updated_at`

func (s *GameStore) CreateGame(ctx context.Context, game *models.Game) (*models.Game, error) {
	query := `
		INSERT INTO games (host_id, scheduled_time, location, big_blind, status, invite_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`

	err := s.db.QueryRow(ctx, query,
		game.HostID,
		game.ScheduledTime,
		game.Location,
		game.BigBlind,
		game.Status,
		game.InviteCode,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, gameID).Scan(
		&game.ID,
		&game.HostID,
		&game.ScheduledTime,
		&game.Location,
		&game.BigBlind,
		&game.Status,
		&game.InviteCode,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

func (s *GameStore) GetGameByInviteCode(ctx context.Context, code string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE invite_code = $1`

	game := &models.Game{}
	err := s.db.QueryRow(ctx, query, code).Scan(
		&game.ID,
		&game.HostID,
		&game.ScheduledTime,
		&game.Location,
		&game.BigBlind,
		&game.Status,
		&game.InviteCode,
		&game.CreatedAt,
		&game.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game by invite code: %w", err)
	}

	return game, nil
}

// GetUpcomingGames lists games still open for join requests. hostName
// filters by the host's display name when non-empty; sortBy is 'date' or 'host'.
func (s *GameStore) GetUpcomingGames(ctx context.Context, hostName, sortBy string) ([]*models.Game, error) {
	order := "g.scheduled_time ASC"
	if sortBy == "host" {
		order = "u.display_name ASC, g.scheduled_time ASC"
	}

	query := `
		SELECT g.id, g.host_id, u.display_name, g.scheduled_time, g.location, g.big_blind, g.status, g.created_at, g.updated_at
		FROM games g
		JOIN users u ON u.user_id = g.host_id
		WHERE g.status = 'upcoming'
		  AND ($1 = '' OR u.display_name ILIKE '%' || $1 || '%')
		ORDER BY ` + order

	rows, err := s.db.Query(ctx, query, hostName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		var g models.Game
		err := rows.Scan(
			&g.ID,
			&g.HostID,
			&g.HostName,
			&g.ScheduledTime,
			&g.Location,
			&g.BigBlind,
			&g.Status,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, &g)
	}

	return games, rows.Err()
}

// GetGamesByUserID returns every game the user hosts or plays in.
func (s *GameStore) GetGamesByUserID(ctx context.Context, userID int64) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games g
		WHERE g.host_id = $1
		   OR EXISTS (SELECT 1 FROM game_players gp WHERE gp.game_id = g.id AND gp.player_id = $1)
		ORDER BY g.scheduled_time DESC
	`

	return s.queryGames(ctx, query, userID)
}

// GetCompletedGamesForUser returns completed games where the user is host or
// member, in game insertion order. Settlement math depends on this ordering
// being stable.
func (s *GameStore) GetCompletedGamesForUser(ctx context.Context, userID int64) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games g
		WHERE g.status = 'completed'
		  AND (g.host_id = $1
		   OR EXISTS (SELECT 1 FROM game_players gp WHERE gp.game_id = g.id AND gp.player_id = $1))
		ORDER BY g.id
	`

	return s.queryGames(ctx, query, userID)
}

func (s *GameStore) UpdateGameStatus(ctx context.Context, gameID int64, status string) error {
	ct, err := s.db.Exec(ctx, `
		UPDATE games SET status = $1, updated_at = now() WHERE id = $2
	`, status, gameID)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}

func (s *GameStore) queryGames(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		var g models.Game
		err := rows.Scan(
			&g.ID,
			&g.HostID,
			&g.ScheduledTime,
			&g.Location,
			&g.BigBlind,
			&g.Status,
			&g.InviteCode,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		games = append(games, &g)
	}

	return games, rows.Err()
}
