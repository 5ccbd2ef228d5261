package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
	"github.com/iho/arledger/internal/usecase/mocks"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	u := *user
	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func TestUserUseCase_CreateUser(t *testing.T) {
	repo := newStubUserRepo()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	user, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "clerk@example.com",
		Name:     "A Clerk",
		Password: "sufficiently-long-password",
		Role:     domain.RoleClerk,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.HashedPassword)
	assert.True(t, user.Active)

	stored := repo.byEmail["clerk@example.com"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.HashedPassword)
	assert.NotEqual(t, "sufficiently-long-password", stored.HashedPassword)
}

func TestUserUseCase_CreateUser_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	input := usecase.CreateUserInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
		Role:     domain.RoleClerk,
	}

	_, err := uc.CreateUser(context.Background(), input)
	require.NoError(t, err)

	_, err = uc.CreateUser(context.Background(), input)
	assert.Error(t, err)
}

func TestUserUseCase_CreateUser_InvalidRole(t *testing.T) {
	uc := usecase.NewUserUseCase(newStubUserRepo(), mocks.NewMockIDGenerator())

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestUserUseCase_Authenticate(t *testing.T) {
	repo := newStubUserRepo()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
		Role:     domain.RoleClerk,
	})
	require.NoError(t, err)

	user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClerk, user.Role)
	assert.Empty(t, user.HashedPassword)
}

func TestUserUseCase_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
		Role:     domain.RoleClerk,
	})
	require.NoError(t, err)

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "clerk@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_Authenticate_UnknownEmail(t *testing.T) {
	uc := usecase.NewUserUseCase(newStubUserRepo(), mocks.NewMockIDGenerator())

	_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_Authenticate_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
		Role:     domain.RoleClerk,
	})
	require.NoError(t, err)
	repo.byEmail["clerk@example.com"].Active = false

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "clerk@example.com",
		Password: "sufficiently-long-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
