package service

import (
	"context"
	"testing"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(&fakeUserStore{})
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.DisplayName)

	// duplicate display name
	_, err = svc.Register(ctx, "alice", "hunter2hunter2")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	logged, err := svc.Login(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, logged.UserID)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))

	_, err = svc.Login(ctx, "nobody", "hunter2hunter2")
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestUpdatePaymentHandles(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2hunter2")
	require.NoError(t, err)

	handles := []models.PaymentHandle{
		{Type: "venmo", Handle: "@alice"},
		{Type: "zelle", Handle: "alice@uni.edu"},
	}
	require.NoError(t, svc.UpdatePaymentHandles(ctx, u.UserID, handles))

	got, err := svc.GetUser(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, handles, got.PaymentHandles)

	err = svc.UpdatePaymentHandles(ctx, 99, handles)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
