package service

import (
	"context"
	"testing"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGameFixture() (*GameService, *fakeGameStore) {
	players := &fakeGamePlayerStore{}
	games := &fakeGameStore{players: players}
	return NewGameService(games, players), games
}

func TestCreateGame(t *testing.T) {
	svc, _ := newGameFixture()
	ctx := context.Background()

	g, err := svc.CreateGame(ctx, 1, time.Now().Add(48*time.Hour), "Campus Rec Room", decimal.RequireFromString("0.50"))
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusUpcoming, g.Status)
	assert.NotEmpty(t, g.InviteCode)

	_, err = svc.CreateGame(ctx, 1, time.Now(), "Campus Rec Room", decimal.Zero)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, _ := newGameFixture()
	ctx := context.Background()

	g, err := svc.CreateGame(ctx, 1, time.Now().Add(time.Hour), "Dorm 4B", decimal.RequireFromString("1"))
	require.NoError(t, err)

	// only the host can close the game
	_, err = svc.UpdateStatus(ctx, g.ID, 2, models.GameStatusCompleted)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	updated, err := svc.UpdateStatus(ctx, g.ID, 1, models.GameStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusCompleted, updated.Status)

	// completed games stay completed
	_, err = svc.UpdateStatus(ctx, g.ID, 1, models.GameStatusCanceled)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, g.ID, 1, "paused")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, 99, 1, models.GameStatusCompleted)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetUpcomingGamesSortValidation(t *testing.T) {
	svc, _ := newGameFixture()
	ctx := context.Background()

	_, err := svc.GetUpcomingGames(ctx, "", "price")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.GetUpcomingGames(ctx, "", "")
	require.NoError(t, err)
	_, err = svc.GetUpcomingGames(ctx, "hank", "host")
	require.NoError(t, err)
}
