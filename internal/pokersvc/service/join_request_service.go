package service

import (
	"context"
	"fmt"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"
)

const (
	ActionApprove = "approve"
	ActionDeny    = "denied"
)

type JoinRequestStore interface {
	CreateJoinRequest(ctx context.Context, gameID, playerID int64) (*models.JoinRequest, error)
	GetJoinRequestByID(ctx context.Context, requestID int64) (*models.JoinRequest, error)
	HasPendingRequest(ctx context.Context, gameID, playerID int64) (bool, error)
	UpdateStatus(ctx context.Context, requestID int64, status string) error
	ApproveAndAddPlayer(ctx context.Context, requestID, gameID, playerID int64) error
}

type JoinRequestService struct {
	games    GameStore
	players  GamePlayerStore
	requests JoinRequestStore
	users    UserStore
}

func NewJoinRequestService(games GameStore, players GamePlayerStore, requests JoinRequestStore, users UserStore) *JoinRequestService {
	return &JoinRequestService{
		games:    games,
		players:  players,
		requests: requests,
		users:    users,
	}
}

// RequestToJoin files a pending join request for the game behind inviteCode.
func (s *JoinRequestService) RequestToJoin(ctx context.Context, inviteCode string, playerID int64) (*models.JoinRequest, error) {
	game, err := s.games.GetGameByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperr.NotFoundf("no game for that invite code")
	}
	if game.Status != models.GameStatusUpcoming {
		return nil, apperr.Conflictf("game is %s and cannot be joined", game.Status)
	}
	if game.HostID == playerID {
		return nil, apperr.Conflictf("the host is already in the game")
	}

	member, err := s.players.IsPlayerInGame(ctx, game.ID, playerID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperr.Conflictf("you are already in this game")
	}

	pending, err := s.requests.HasPendingRequest(ctx, game.ID, playerID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperr.Conflictf("you already have a pending request for this game")
	}

	return s.requests.CreateJoinRequest(ctx, game.ID, playerID)
}

// Process moves a pending request to approved or denied. Only the game's
// host may act, and only on a request that belongs to the named game.
// Approval also inserts the game_players membership row; the store does both
// writes in one transaction.
func (s *JoinRequestService) Process(ctx context.Context, gameID, requestID int64, action string, actingUserID int64) (string, error) {
	if action != ActionApprove && action != ActionDeny {
		return "", apperr.Validationf("action must be '%s' or '%s'", ActionApprove, ActionDeny)
	}

	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return "", err
	}
	if game == nil {
		return "", apperr.NotFoundf("game not found")
	}

	req, err := s.requests.GetJoinRequestByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req == nil {
		return "", apperr.NotFoundf("join request not found")
	}

	if game.HostID != actingUserID {
		return "", apperr.Forbiddenf("only the host can manage join requests")
	}
	if req.GameID != gameID {
		return "", apperr.Conflictf("join request does not belong to this game")
	}
	if req.Status != models.JoinRequestPending {
		return "", apperr.Conflictf("join request is already %s", req.Status)
	}

	player, err := s.users.GetByIDSafe(ctx, req.PlayerID)
	if err != nil {
		return "", err
	}
	if player == nil {
		return "", apperr.NotFoundf("requesting player not found")
	}

	if action == ActionApprove {
		if err := s.requests.ApproveAndAddPlayer(ctx, requestID, gameID, req.PlayerID); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s has been added to the game", player.DisplayName), nil
	}

	if err := s.requests.UpdateStatus(ctx, requestID, models.JoinRequestDenied); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s's request has been denied", player.DisplayName), nil
}
