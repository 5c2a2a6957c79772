package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	CreateFunc     func(ctx context.Context, user *model.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	return f.CreateFunc(ctx, user)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.GetByEmailFunc(ctx, email)
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return f.CountFunc(ctx)
}

func TestLoginSignsRoleClaim(t *testing.T) {
	secret := []byte("test-secret")
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	s := NewUserService(&fakeUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: userID, Email: email, Password: string(hashed), Role: "admin"}, nil
		},
	}, secret)

	resp, err := s.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "s3cret"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := NewUserService(&fakeUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Password: string(hashed), Role: "admin"}, nil
		},
	}, []byte("test-secret"))

	_, err = s.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Error(t, err)
}

func TestEnsureAdminOnlyOnEmptyTable(t *testing.T) {
	var created *model.User
	s := NewUserService(&fakeUserRepo{
		CountFunc: func(ctx context.Context) (int64, error) { return 0, nil },
		CreateFunc: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}, []byte("test-secret"))

	require.NoError(t, s.EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123"))
	require.NotNil(t, created)
	assert.Equal(t, "admin", created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("admin123")))

	created = nil
	s = NewUserService(&fakeUserRepo{
		CountFunc: func(ctx context.Context) (int64, error) { return 3, nil },
		CreateFunc: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}, []byte("test-secret"))

	require.NoError(t, s.EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123"))
	assert.Nil(t, created)
}
