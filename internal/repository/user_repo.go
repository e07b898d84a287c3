package repository

import (
	"context"
	"errors"
	"fmt"

	"portfolio_server/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	Count(ctx context.Context) (int64, error)
	GetDetails(ctx context.Context, userID int) (*model.UserDetails, error)
	UpsertDetails(ctx context.Context, details *model.UserDetails) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, password_hash, is_admin, created_at)
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by username. Not-found is reported as
// (nil, nil); the service layer decides what that means.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password_hash, is_admin, created_at FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password_hash, is_admin, created_at FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// Count returns the total number of registered users
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetDetails retrieves the shipping details for a user, or (nil, nil) if the
// user has never saved any.
func (r *userRepository) GetDetails(ctx context.Context, userID int) (*model.UserDetails, error) {
	details := &model.UserDetails{UserID: userID}
	sql := `SELECT first_name, last_name, address, phone FROM user_details WHERE user_id = $1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(&details.FirstName, &details.LastName, &details.Address, &details.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user details: %w", err)
	}
	return details, nil
}

// UpsertDetails creates or overwrites the shipping details for a user
func (r *userRepository) UpsertDetails(ctx context.Context, d *model.UserDetails) error {
	sql := `INSERT INTO user_details (user_id, first_name, last_name, address, phone)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (user_id) DO UPDATE
            SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
                address = EXCLUDED.address, phone = EXCLUDED.phone`
	_, err := r.db.Exec(ctx, sql, d.UserID, d.FirstName, d.LastName, d.Address, d.Phone)
	if err != nil {
		return fmt.Errorf("failed to upsert user details: %w", err)
	}
	return nil
}
