package services

import (
	"context"
	"errors"

	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService provides methods for user authentication and JWT operations
type AuthService struct {
	userService *UserService
	jwtSecret   []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(us *UserService, jwtSecret []byte) *AuthService {
	return &AuthService{
		userService: us,
		jwtSecret:   jwtSecret,
	}
}

// RegisterUser handles user registration
func (s *AuthService) RegisterUser(ctx context.Context, req models.UserRegisterRequest) (*models.User, error) {
	existingUser, err := s.userService.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	newUser := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
	}
	return s.userService.CreateUser(ctx, newUser)
}

// LoginUser verifies credentials and issues a bearer token
func (s *AuthService) LoginUser(ctx context.Context, req models.UserLoginRequest) (*models.LoginResponse, error) {
	user, err := s.userService.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.LoginResponse{
		Token:  token,
		UserID: user.ID.Hex(),
		Email:  user.Email,
	}, nil
}
