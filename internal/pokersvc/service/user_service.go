package service

import (
	"context"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/auth"
	"github.com/unipoker/poker-services/internal/pokersvc/models"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, displayName, passwordHash string) (*models.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*models.User, error)
	GetByIDSafe(ctx context.Context, id int64) (*models.User, error)
	IsDisplayNameTaken(ctx context.Context, displayName string) (bool, error)
	UpdatePaymentHandles(ctx context.Context, id int64, handles []models.PaymentHandle) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// UserService struct represents the user service layer
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, displayName, password string) (*models.User, error) {
	taken, err := s.users.IsDisplayNameTaken(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflictf("display name %q is already taken", displayName)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return s.users.CreateUser(ctx, displayName, hash)
}

func (s *UserService) Login(ctx context.Context, displayName, password string) (*models.User, error) {
	user, err := s.users.GetByDisplayName(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperr.New(apperr.Auth, "invalid credentials")
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByIDSafe(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFoundf("user not found")
	}
	return user, nil
}

func (s *UserService) UpdatePaymentHandles(ctx context.Context, id int64, handles []models.PaymentHandle) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.UpdatePaymentHandles(ctx, id, handles)
}
