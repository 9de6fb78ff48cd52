package service

import (
	"context"
	"testing"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture() (*LedgerService, *fakeGameStore, *fakeGamePlayerStore, *fakeLedgerStore) {
	players := &fakeGamePlayerStore{}
	games := &fakeGameStore{players: players}
	ledger := newFakeLedgerStore()

	games.CreateGame(context.Background(), &models.Game{
		HostID: 1,
		Status: models.GameStatusUpcoming,
	})
	players.AddPlayerToGame(context.Background(), 1, 2)

	return NewLedgerService(games, players, ledger), games, players, ledger
}

func TestPlaceBuyIn(t *testing.T) {
	svc, _, _, _ := newLedgerFixture()
	ctx := context.Background()

	b, err := svc.PlaceBuyIn(ctx, 1, 2, decimal.RequireFromString("50"))
	require.NoError(t, err)
	assert.False(t, b.Approved, "new buy-ins start unapproved")

	// the host can buy in without a membership row
	_, err = svc.PlaceBuyIn(ctx, 1, 1, decimal.RequireFromString("50"))
	require.NoError(t, err)

	// outsiders cannot
	_, err = svc.PlaceBuyIn(ctx, 1, 9, decimal.RequireFromString("50"))
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// amount must be positive
	_, err = svc.PlaceBuyIn(ctx, 1, 2, decimal.Zero)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.PlaceBuyIn(ctx, 42, 2, decimal.RequireFromString("50"))
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestApproveBuyIn(t *testing.T) {
	svc, _, _, _ := newLedgerFixture()
	ctx := context.Background()

	b, err := svc.PlaceBuyIn(ctx, 1, 2, decimal.RequireFromString("50"))
	require.NoError(t, err)

	// only the host approves
	_, err = svc.ApproveBuyIn(ctx, 1, b.ID, 2)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	approved, err := svc.ApproveBuyIn(ctx, 1, b.ID, 1)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	// double approval conflicts
	_, err = svc.ApproveBuyIn(ctx, 1, b.ID, 1)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestApproveBuyInWrongGame(t *testing.T) {
	svc, games, _, _ := newLedgerFixture()
	ctx := context.Background()

	games.CreateGame(ctx, &models.Game{HostID: 1, Status: models.GameStatusUpcoming})

	b, err := svc.PlaceBuyIn(ctx, 1, 2, decimal.RequireFromString("50"))
	require.NoError(t, err)

	_, err = svc.ApproveBuyIn(ctx, 2, b.ID, 1)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestRecordCashOutOncePerGame(t *testing.T) {
	svc, _, _, _ := newLedgerFixture()
	ctx := context.Background()

	_, err := svc.RecordCashOut(ctx, 1, 2, decimal.RequireFromString("80"))
	require.NoError(t, err)

	_, err = svc.RecordCashOut(ctx, 1, 2, decimal.RequireFromString("10"))
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	// zero is a valid cash-out (busted)
	_, err = svc.RecordCashOut(ctx, 1, 1, decimal.Zero)
	require.NoError(t, err)

	_, err = svc.RecordCashOut(ctx, 1, 9, decimal.RequireFromString("10"))
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestLedgerRejectsCanceledGame(t *testing.T) {
	svc, games, _, _ := newLedgerFixture()
	ctx := context.Background()

	games.games[0].Status = models.GameStatusCanceled

	_, err := svc.PlaceBuyIn(ctx, 1, 2, decimal.RequireFromString("50"))
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	_, err = svc.RecordCashOut(ctx, 1, 2, decimal.RequireFromString("50"))
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}
