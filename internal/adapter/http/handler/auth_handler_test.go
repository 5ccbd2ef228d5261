package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/arledger/internal/adapter/http/dto"
	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/infrastructure/auth"
	"github.com/iho/arledger/internal/usecase"
)

type stubUserService struct {
	createFunc func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	authFunc   func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return s.createFunc(ctx, input)
}

func (s *stubUserService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return s.authFunc(ctx, input)
}

func newAuthRouter(users UserService) http.Handler {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	r := chi.NewRouter()
	r.Mount("/auth", NewAuthHandler(users, jwtManager).Routes())
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	users := &stubUserService{
		authFunc: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			require.Equal(t, "clerk@example.com", input.Email)
			return &domain.User{
				ID:     "u-1",
				Email:  input.Email,
				Role:   domain.RoleClerk,
				Active: true,
			}, nil
		},
	}
	router := newAuthRouter(users)

	body, _ := json.Marshal(dto.LoginRequest{Email: "clerk@example.com", Password: "secret-password"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, "clerk", resp.User.Role)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	users := &stubUserService{
		authFunc: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	router := newAuthRouter(users)

	body, _ := json.Marshal(dto.LoginRequest{Email: "clerk@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
