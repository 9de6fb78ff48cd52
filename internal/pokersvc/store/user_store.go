package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) CreateUser(ctx context.Context, displayName, passwordHash string) (*models.User, error) {
	query := `
        INSERT INTO users (display_name, password_hash, payment_handles)
        VALUES ($1, $2, '[]')
        RETURNING user_id, created_at, updated_at;
    `

	u := &models.User{DisplayName: displayName}
	err := r.db.QueryRow(ctx, query, displayName, passwordHash).Scan(
		&u.UserID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return u, nil
}

func (r *UserStore) GetByDisplayName(ctx context.Context, displayName string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT user_id, display_name, password_hash, payment_handles, created_at, updated_at
        FROM users
        WHERE display_name = $1
    `, displayName)

	return scanUser(row, true)
}

// GetByIDSafe returns the user without the password hash.
func (r *UserStore) GetByIDSafe(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT user_id, display_name, payment_handles, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `, id)

	return scanUser(row, false)
}

func (r *UserStore) IsDisplayNameTaken(ctx context.Context, displayName string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE display_name = $1)`, displayName,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check display name: %w", err)
	}
	return taken, nil
}

func (r *UserStore) UpdatePaymentHandles(ctx context.Context, id int64, handles []models.PaymentHandle) error {
	raw, err := json.Marshal(handles)
	if err != nil {
		return fmt.Errorf("failed to marshal payment handles: %w", err)
	}

	_, err = r.db.Exec(ctx, `
        UPDATE users
        SET payment_handles = $1, updated_at = now()
        WHERE user_id = $2
    `, raw, id)
	if err != nil {
		return fmt.Errorf("failed to update payment handles: %w", err)
	}
	return nil
}

// ListUsers returns every user in insertion order, without password hashes.
func (r *UserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
        SELECT user_id, display_name, payment_handles, created_at, updated_at
        FROM users
        ORDER BY user_id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		var raw []byte
		err := rows.Scan(&u.UserID, &u.DisplayName, &raw, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &u.PaymentHandles); err != nil {
			return nil, fmt.Errorf("bad payment_handles for user %d: %w", u.UserID, err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

func scanUser(row pgx.Row, withHash bool) (*models.User, error) {
	u := &models.User{}
	var raw []byte

	var err error
	if withHash {
		err = row.Scan(&u.UserID, &u.DisplayName, &u.PasswordHash, &raw, &u.CreatedAt, &u.UpdatedAt)
	} else {
		err = row.Scan(&u.UserID, &u.DisplayName, &raw, &u.CreatedAt, &u.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // user not found
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal(raw, &u.PaymentHandles); err != nil {
		return nil, fmt.Errorf("bad payment_handles for user %d: %w", u.UserID, err)
	}

	return u, nil
}
