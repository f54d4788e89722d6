package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/restaurant-reservations/apperrors"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService manages staff accounts and issues tokens.
type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(store *repository.Store) *AuthService {
	return &AuthService{users: store.Users}
}

// Register creates a staff account. Admin accounts come from seeding.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.CreateUser(ctx, name, email, password, models.RoleStaff)
}

func (s *AuthService) CreateUser(ctx context.Context, name, email, password, role string) (*models.User, error) {
	email = normalizeEmail(email)
	if len(password) < 8 {
		return nil, apperrors.Invalid("password must be at least 8 characters")
	}
	if role != models.RoleAdmin && role != models.RoleStaff {
		return nil, apperrors.Invalid("unknown role %q", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	utils.InfoLogger.Infof("New user registered: %s (role=%s)", user.Email, user.Role)
	return user, nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, id uint) (*models.User, error) {
	return s.users.Get(ctx, id)
}
