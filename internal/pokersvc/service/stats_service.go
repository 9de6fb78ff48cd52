package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// leaderboardSize caps each leaderboard list.
const leaderboardSize = 3

type LeaderboardEntry struct {
	UserID      int64           `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Net         decimal.Decimal `json:"net"`
}

type Leaderboard struct {
	Winners []LeaderboardEntry `json:"winners"`
	Losers  []LeaderboardEntry `json:"losers"`
}

type PlayerStats struct {
	TotalNet     decimal.Decimal `json:"total_net"`
	GamesPlayed  int             `json:"games_played"`
	GamesWon     int             `json:"games_won"`
	GamesLost    int             `json:"games_lost"`
	AverageBuyIn decimal.Decimal `json:"average_buy_in"`
}

// StatsService derives leaderboards and per-player settlement stats from
// the ledger across completed games.
type StatsService struct {
	users  UserStore
	games  GameStore
	ledger LedgerStore
}

func NewStatsService(users UserStore, games GameStore, ledger LedgerStore) *StatsService {
	return &StatsService{users: users, games: games, ledger: ledger}
}

// gameNet is cash-out minus total approved buy-ins for one (game, player).
// Only the first cash-out row counts; no cash-out means zero.
func (s *StatsService) gameNet(ctx context.Context, gameID, userID int64) (net, buyInTotal decimal.Decimal, err error) {
	buyIns, err := s.ledger.GetBuyIns(ctx, gameID, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	for _, b := range buyIns {
		if b.Approved {
			buyInTotal = buyInTotal.Add(b.Amount)
		}
	}

	cashOuts, err := s.ledger.GetCashOuts(ctx, gameID, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	cashOut := decimal.Zero
	if len(cashOuts) > 0 {
		cashOut = cashOuts[0].Amount
	}

	return cashOut.Sub(buyInTotal), buyInTotal, nil
}

// Leaderboard returns the top winners and losers by total net across
// completed games. Users without a completed game are left out entirely;
// ties keep user insertion order.
func (s *StatsService) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var entries []LeaderboardEntry
	for _, u := range users {
		games, err := s.games.GetCompletedGamesForUser(ctx, u.UserID)
		if err != nil {
			return nil, err
		}
		if len(games) == 0 {
			continue
		}

		totalNet := decimal.Zero
		for _, g := range games {
			net, _, err := s.gameNet(ctx, g.ID, u.UserID)
			if err != nil {
				return nil, err
			}
			totalNet = totalNet.Add(net)
		}

		entries = append(entries, LeaderboardEntry{
			UserID:      u.UserID,
			DisplayName: u.DisplayName,
			Net:         totalNet.Round(2),
		})
	}

	return &Leaderboard{
		Winners: topEntries(entries, func(a, b LeaderboardEntry) bool { return a.Net.GreaterThan(b.Net) }),
		Losers:  topEntries(entries, func(a, b LeaderboardEntry) bool { return a.Net.LessThan(b.Net) }),
	}, nil
}

func topEntries(entries []LeaderboardEntry, less func(a, b LeaderboardEntry) bool) []LeaderboardEntry {
	sorted := make([]LeaderboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	if len(sorted) > leaderboardSize {
		sorted = sorted[:leaderboardSize]
	}
	return sorted
}

// PlayerStats aggregates one user's completed games. Break-even games count
// toward neither wins nor losses.
func (s *StatsService) PlayerStats(ctx context.Context, userID int64) (*PlayerStats, error) {
	games, err := s.games.GetCompletedGamesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &PlayerStats{
		TotalNet:     decimal.Zero,
		AverageBuyIn: decimal.Zero,
		GamesPlayed:  len(games),
	}

	buyInTotal := decimal.Zero
	for _, g := range games {
		net, gameBuyIns, err := s.gameNet(ctx, g.ID, userID)
		if err != nil {
			return nil, err
		}

		stats.TotalNet = stats.TotalNet.Add(net)
		buyInTotal = buyInTotal.Add(gameBuyIns)

		switch net.Sign() {
		case 1:
			stats.GamesWon++
		case -1:
			stats.GamesLost++
		}
	}

	if len(games) > 0 {
		stats.AverageBuyIn = buyInTotal.Div(decimal.NewFromInt(int64(len(games)))).Round(2)
	}
	stats.TotalNet = stats.TotalNet.Round(2)

	return stats, nil
}
