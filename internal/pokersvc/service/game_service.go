package service

import (
	"context"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GameStore interface {
	CreateGame(ctx context.Context, game *models.Game) (*models.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	GetGameByInviteCode(ctx context.Context, code string) (*models.Game, error)
	GetUpcomingGames(ctx context.Context, hostName, sortBy string) ([]*models.Game, error)
	GetGamesByUserID(ctx context.Context, userID int64) ([]*models.Game, error)
	GetCompletedGamesForUser(ctx context.Context, userID int64) ([]*models.Game, error)
	UpdateGameStatus(ctx context.Context, gameID int64, status string) error
}

type GamePlayerStore interface {
	GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.GamePlayer, error)
	IsPlayerInGame(ctx context.Context, gameID, playerID int64) (bool, error)
	AddPlayerToGame(ctx context.Context, gameID, playerID int64) (*models.GamePlayer, error)
}

type GameService struct {
	games   GameStore
	players GamePlayerStore
}

func NewGameService(games GameStore, players GamePlayerStore) *GameService {
	return &GameService{games: games, players: players}
}

func (s *GameService) CreateGame(ctx context.Context, hostID int64, scheduledTime time.Time, location string, bigBlind decimal.Decimal) (*models.Game, error) {
	if bigBlind.Sign() <= 0 {
		return nil, apperr.Validationf("big blind must be positive")
	}

	game := &models.Game{
		HostID:        hostID,
		ScheduledTime: scheduledTime,
		Location:      location,
		BigBlind:      bigBlind,
		Status:        models.GameStatusUpcoming,
		InviteCode:    uuid.New().String(),
	}

	return s.games.CreateGame(ctx, game)
}

func (s *GameService) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperr.NotFoundf("game not found")
	}
	return game, nil
}

func (s *GameService) GetUpcomingGames(ctx context.Context, hostName, sortBy string) ([]*models.Game, error) {
	if sortBy == "" {
		sortBy = "date"
	}
	if sortBy != "date" && sortBy != "host" {
		return nil, apperr.Validationf("sort must be 'date' or 'host'")
	}
	return s.games.GetUpcomingGames(ctx, hostName, sortBy)
}

func (s *GameService) GetGamesForUser(ctx context.Context, userID int64) ([]*models.Game, error) {
	return s.games.GetGamesByUserID(ctx, userID)
}

// UpdateStatus lets the host close out or cancel an upcoming game.
func (s *GameService) UpdateStatus(ctx context.Context, gameID, actingUserID int64, status string) (*models.Game, error) {
	game, err := s.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.HostID != actingUserID {
		return nil, apperr.Forbiddenf("only the host can change the game status")
	}
	if status != models.GameStatusCompleted && status != models.GameStatusCanceled {
		return nil, apperr.Validationf("status must be 'completed' or 'canceled'")
	}
	if game.Status != models.GameStatusUpcoming {
		return nil, apperr.Conflictf("game is already %s", game.Status)
	}

	if err := s.games.UpdateGameStatus(ctx, gameID, status); err != nil {
		return nil, err
	}
	game.Status = status
	return game, nil
}
