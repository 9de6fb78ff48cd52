package service

import (
	"context"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/shopspring/decimal"
)

type LedgerStore interface {
	CreateBuyIn(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.BuyIn, error)
	GetBuyInByID(ctx context.Context, buyInID int64) (*models.BuyIn, error)
	ApproveBuyIn(ctx context.Context, buyInID int64) (bool, error)
	GetBuyIns(ctx context.Context, gameID, playerID int64) ([]*models.BuyIn, error)
	CreateCashOut(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.CashOut, error)
	HasCashOut(ctx context.Context, gameID, playerID int64) (bool, error)
	GetCashOuts(ctx context.Context, gameID, playerID int64) ([]*models.CashOut, error)
}

// LedgerService records buy-ins and cash-outs against games.
type LedgerService struct {
	games   GameStore
	players GamePlayerStore
	ledger  LedgerStore
}

func NewLedgerService(games GameStore, players GamePlayerStore, ledger LedgerStore) *LedgerService {
	return &LedgerService{games: games, players: players, ledger: ledger}
}

func (s *LedgerService) PlaceBuyIn(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.BuyIn, error) {
	if amount.Sign() <= 0 {
		return nil, apperr.Validationf("buy-in amount must be positive")
	}

	game, err := s.getOpenGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, game, playerID); err != nil {
		return nil, err
	}

	return s.ledger.CreateBuyIn(ctx, gameID, playerID, amount)
}

// ApproveBuyIn is a host action; pending buy-ins do not count toward
// settlement until approved.
func (s *LedgerService) ApproveBuyIn(ctx context.Context, gameID, buyInID, actingUserID int64) (*models.BuyIn, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperr.NotFoundf("game not found")
	}
	if game.HostID != actingUserID {
		return nil, apperr.Forbiddenf("only the host can approve buy-ins")
	}

	buyIn, err := s.ledger.GetBuyInByID(ctx, buyInID)
	if err != nil {
		return nil, err
	}
	if buyIn == nil {
		return nil, apperr.NotFoundf("buy-in not found")
	}
	if buyIn.GameID != gameID {
		return nil, apperr.Conflictf("buy-in does not belong to this game")
	}

	updated, err := s.ledger.ApproveBuyIn(ctx, buyInID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.Conflictf("buy-in is already approved")
	}

	buyIn.Approved = true
	return buyIn, nil
}

func (s *LedgerService) RecordCashOut(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.CashOut, error) {
	if amount.Sign() < 0 {
		return nil, apperr.Validationf("cash-out amount cannot be negative")
	}

	game, err := s.getOpenGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, game, playerID); err != nil {
		return nil, err
	}

	exists, err := s.ledger.HasCashOut(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflictf("cash-out already recorded for this game")
	}

	return s.ledger.CreateCashOut(ctx, gameID, playerID, amount)
}

func (s *LedgerService) getOpenGame(ctx context.Context, gameID int64) (*models.Game, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperr.NotFoundf("game not found")
	}
	if game.Status == models.GameStatusCanceled {
		return nil, apperr.Conflictf("game was canceled")
	}
	return game, nil
}

func (s *LedgerService) requireParticipant(ctx context.Context, game *models.Game, userID int64) error {
	if game.HostID == userID {
		return nil
	}
	member, err := s.players.IsPlayerInGame(ctx, game.ID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperr.Forbiddenf("you are not in this game")
	}
	return nil
}
