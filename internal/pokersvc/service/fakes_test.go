package service

import (
	"context"
	"fmt"
	"time"

	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes so the business rules can be exercised without a
// database.

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, displayName, passwordHash string) (*models.User, error) {
	u := &models.User{
		UserID:       int64(len(f.users) + 1),
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserStore) GetByDisplayName(ctx context.Context, displayName string) (*models.User, error) {
	for _, u := range f.users {
		if u.DisplayName == displayName {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByIDSafe(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.UserID == id {
			safe := *u
			safe.PasswordHash = ""
			return &safe, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) IsDisplayNameTaken(ctx context.Context, displayName string) (bool, error) {
	u, _ := f.GetByDisplayName(ctx, displayName)
	return u != nil, nil
}

func (f *fakeUserStore) UpdatePaymentHandles(ctx context.Context, id int64, handles []models.PaymentHandle) error {
	for _, u := range f.users {
		if u.UserID == id {
			u.PaymentHandles = handles
			return nil
		}
	}
	return fmt.Errorf("user %d not found", id)
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return f.users, nil
}

type fakeGameStore struct {
	games   []*models.Game
	players *fakeGamePlayerStore
}

func (f *fakeGameStore) CreateGame(ctx context.Context, game *models.Game) (*models.Game, error) {
	game.ID = int64(len(f.games) + 1)
	game.CreatedAt = time.Now()
	f.games = append(f.games, game)
	return game, nil
}

func (f *fakeGameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	for _, g := range f.games {
		if g.ID == gameID {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGameStore) GetGameByInviteCode(ctx context.Context, code string) (*models.Game, error) {
	for _, g := range f.games {
		if g.InviteCode == code {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGameStore) GetUpcomingGames(ctx context.Context, hostName, sortBy string) ([]*models.Game, error) {
	var out []*models.Game
	for _, g := range f.games {
		if g.Status == models.GameStatusUpcoming {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGameStore) GetGamesByUserID(ctx context.Context, userID int64) ([]*models.Game, error) {
	var out []*models.Game
	for _, g := range f.games {
		if f.isParticipant(g, userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGameStore) GetCompletedGamesForUser(ctx context.Context, userID int64) ([]*models.Game, error) {
	var out []*models.Game
	for _, g := range f.games {
		if g.Status == models.GameStatusCompleted && f.isParticipant(g, userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGameStore) UpdateGameStatus(ctx context.Context, gameID int64, status string) error {
	for _, g := range f.games {
		if g.ID == gameID {
			g.Status = status
			return nil
		}
	}
	return fmt.Errorf("game %d not found", gameID)
}

func (f *fakeGameStore) isParticipant(g *models.Game, userID int64) bool {
	if g.HostID == userID {
		return true
	}
	if f.players == nil {
		return false
	}
	member, _ := f.players.IsPlayerInGame(context.Background(), g.ID, userID)
	return member
}

type fakeGamePlayerStore struct {
	memberships []*models.GamePlayer
}

func (f *fakeGamePlayerStore) GetPlayersByGameID(ctx context.Context, gameID int64) ([]*models.GamePlayer, error) {
	var out []*models.GamePlayer
	for _, gp := range f.memberships {
		if gp.GameID == gameID {
			out = append(out, gp)
		}
	}
	return out, nil
}

func (f *fakeGamePlayerStore) IsPlayerInGame(ctx context.Context, gameID, playerID int64) (bool, error) {
	for _, gp := range f.memberships {
		if gp.GameID == gameID && gp.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGamePlayerStore) AddPlayerToGame(ctx context.Context, gameID, playerID int64) (*models.GamePlayer, error) {
	gp := &models.GamePlayer{
		ID:       int64(len(f.memberships) + 1),
		GameID:   gameID,
		PlayerID: playerID,
	}
	f.memberships = append(f.memberships, gp)
	return gp, nil
}

type fakeJoinRequestStore struct {
	requests []*models.JoinRequest
	players  *fakeGamePlayerStore
}

func (f *fakeJoinRequestStore) CreateJoinRequest(ctx context.Context, gameID, playerID int64) (*models.JoinRequest, error) {
	jr := &models.JoinRequest{
		ID:       int64(len(f.requests) + 1),
		GameID:   gameID,
		PlayerID: playerID,
		Status:   models.JoinRequestPending,
	}
	f.requests = append(f.requests, jr)
	return jr, nil
}

func (f *fakeJoinRequestStore) GetJoinRequestByID(ctx context.Context, requestID int64) (*models.JoinRequest, error) {
	for _, jr := range f.requests {
		if jr.ID == requestID {
			return jr, nil
		}
	}
	return nil, nil
}

func (f *fakeJoinRequestStore) HasPendingRequest(ctx context.Context, gameID, playerID int64) (bool, error) {
	for _, jr := range f.requests {
		if jr.GameID == gameID && jr.PlayerID == playerID && jr.Status == models.JoinRequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeJoinRequestStore) UpdateStatus(ctx context.Context, requestID int64, status string) error {
	for _, jr := range f.requests {
		if jr.ID == requestID {
			jr.Status = status
			return nil
		}
	}
	return fmt.Errorf("request %d not found", requestID)
}

func (f *fakeJoinRequestStore) ApproveAndAddPlayer(ctx context.Context, requestID, gameID, playerID int64) error {
	if err := f.UpdateStatus(ctx, requestID, models.JoinRequestApproved); err != nil {
		return err
	}
	_, err := f.players.AddPlayerToGame(ctx, gameID, playerID)
	return err
}

type ledgerKey struct {
	gameID   int64
	playerID int64
}

type fakeLedgerStore struct {
	buyIns   map[ledgerKey][]*models.BuyIn
	cashOuts map[ledgerKey][]*models.CashOut
	nextID   int64
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		buyIns:   make(map[ledgerKey][]*models.BuyIn),
		cashOuts: make(map[ledgerKey][]*models.CashOut),
	}
}

func (f *fakeLedgerStore) addBuyIn(gameID, playerID int64, amount string, approved bool) {
	f.nextID++
	k := ledgerKey{gameID, playerID}
	f.buyIns[k] = append(f.buyIns[k], &models.BuyIn{
		ID:       f.nextID,
		GameID:   gameID,
		PlayerID: playerID,
		Amount:   decimal.RequireFromString(amount),
		Approved: approved,
	})
}

func (f *fakeLedgerStore) addCashOut(gameID, playerID int64, amount string) {
	f.nextID++
	k := ledgerKey{gameID, playerID}
	f.cashOuts[k] = append(f.cashOuts[k], &models.CashOut{
		ID:       f.nextID,
		GameID:   gameID,
		PlayerID: playerID,
		Amount:   decimal.RequireFromString(amount),
	})
}

func (f *fakeLedgerStore) CreateBuyIn(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.BuyIn, error) {
	f.addBuyIn(gameID, playerID, amount.String(), false)
	k := ledgerKey{gameID, playerID}
	return f.buyIns[k][len(f.buyIns[k])-1], nil
}

func (f *fakeLedgerStore) GetBuyInByID(ctx context.Context, buyInID int64) (*models.BuyIn, error) {
	for _, list := range f.buyIns {
		for _, b := range list {
			if b.ID == buyInID {
				return b, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeLedgerStore) ApproveBuyIn(ctx context.Context, buyInID int64) (bool, error) {
	b, _ := f.GetBuyInByID(ctx, buyInID)
	if b == nil || b.Approved {
		return false, nil
	}
	b.Approved = true
	return true, nil
}

func (f *fakeLedgerStore) GetBuyIns(ctx context.Context, gameID, playerID int64) ([]*models.BuyIn, error) {
	return f.buyIns[ledgerKey{gameID, playerID}], nil
}

func (f *fakeLedgerStore) CreateCashOut(ctx context.Context, gameID, playerID int64, amount decimal.Decimal) (*models.CashOut, error) {
	f.addCashOut(gameID, playerID, amount.String())
	k := ledgerKey{gameID, playerID}
	return f.cashOuts[k][len(f.cashOuts[k])-1], nil
}

func (f *fakeLedgerStore) HasCashOut(ctx context.Context, gameID, playerID int64) (bool, error) {
	return len(f.cashOuts[ledgerKey{gameID, playerID}]) > 0, nil
}

func (f *fakeLedgerStore) GetCashOuts(ctx context.Context, gameID, playerID int64) ([]*models.CashOut, error) {
	return f.cashOuts[ledgerKey{gameID, playerID}], nil
}

// fakeMessageStore holds chat messages newest-first, mirroring the mongo
// store's descending _id order.
type fakeMessageStore struct {
	messages []*models.ChatMessage // newest first
	clock    time.Time
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{clock: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeMessageStore) InsertMessage(ctx context.Context, msg *models.ChatMessage) error {
	f.clock = f.clock.Add(time.Second)
	msg.ID = primitive.NewObjectIDFromTimestamp(f.clock)
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = f.clock
	}
	f.messages = append([]*models.ChatMessage{msg}, f.messages...)
	return nil
}

func (f *fakeMessageStore) ListBefore(ctx context.Context, cursor string, limit int) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, m := range f.messages {
		if cursor != "" && m.ID.Hex() >= cursor {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
