package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.CheckPassword(input.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.FullName, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &LoginOutput{User: user, AccessToken: token}, nil
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Username string
	FullName string
	Password string
	Role     string
}

// CreateUser registers a new staff account
func (s *AuthService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, apperror.NewBadRequestError("Username and password are required")
	}
	role := enum.Role(input.Role)
	if input.Role == "" {
		role = enum.RoleDataEntry
	}
	if !role.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown role")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	user := &entity.User{
		Username: input.Username,
		FullName: input.FullName,
		Role:     role.String(),
		Active:   true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword updates a user's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if !user.CheckPassword(current) {
		return apperror.ErrInvalidCredentials
	}
	if err := user.SetPassword(next); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// ListUsers retrieves all staff accounts
func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}
