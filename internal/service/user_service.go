package service

import (
	"context"
	"fmt"

	"portfolio_server/internal/model"
	"portfolio_server/internal/repository"
)

// UserService provides shipping details and admin aggregates
type UserService interface {
	GetDetails(ctx context.Context, userID int) (*model.UserDetails, error)
	SaveDetails(ctx context.Context, details *model.UserDetails) error
	CountUsers(ctx context.Context) (int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetDetails returns the saved shipping details for the user, or blank
// fields if the user has never saved any.
func (s *userService) GetDetails(ctx context.Context, userID int) (*model.UserDetails, error) {
	details, err := s.userRepo.GetDetails(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user details from repo: %w", err)
	}
	if details == nil {
		return &model.UserDetails{UserID: userID}, nil
	}
	return details, nil
}

// SaveDetails creates or overwrites the shipping details for the user
func (s *userService) SaveDetails(ctx context.Context, details *model.UserDetails) error {
	if err := s.userRepo.UpsertDetails(ctx, details); err != nil {
		return fmt.Errorf("failed to save user details in repo: %w", err)
	}
	return nil
}

// CountUsers returns the total number of registered users
func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users in repo: %w", err)
	}
	return count, nil
}
