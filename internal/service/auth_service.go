package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"portfolio_server/internal/model"
	"portfolio_server/internal/repository"
	"portfolio_server/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrUserAlreadyExists = errors.New("user with this username already exists")
	// ErrInvalidCredentials covers both unknown-user and wrong-password so a
	// caller cannot enumerate usernames from the response.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account. No token is issued here; the client
// logs in afterwards.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	existingUser, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	isAdmin := false

	// Check for initial admin setup via environment variable. The flag is
	// fixed at creation; no endpoint changes it afterwards.
	initialAdminUsername := os.Getenv("INITIAL_ADMIN_USERNAME")
	if initialAdminUsername != "" && username == initialAdminUsername {
		isAdmin = true
		log.Printf("INFO: User %s is being registered as ADMIN via INITIAL_ADMIN_USERNAME.", username)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
