package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// --- Interface ---

// UserService authenticates operator accounts for the admin surface.
type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type userService struct {
	repo   repository.UserRepository
	secret []byte
}

// NewUserService returns a UserService signing tokens with the given secret.
func NewUserService(repo repository.UserRepository, secret []byte) UserService {
	return &userService{repo: repo, secret: secret}
}

// --- Implementation ---

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: tokenString}, nil
}

// EnsureAdmin bootstraps the first operator account when the users table is
// empty, so a fresh deployment has a way into the admin surface.
func (s *userService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	return s.repo.Create(ctx, &model.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	})
}
