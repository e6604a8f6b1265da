package service

import (
	"testing"

	"campuskart/internal/config"
	"campuskart/internal/dto"
	"campuskart/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.CreateUser(ctxb(), dto.CreateUserRequest{
		Username: "owner", Name: "Store Owner", Password: "correct horse", Role: "admin",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctxb(), dto.LoginRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Role)

	_, err = svc.Login(ctxb(), dto.LoginRequest{Username: "owner", Password: "wrong"})
	assert.Error(t, err)
	_, err = svc.Login(ctxb(), dto.LoginRequest{Username: "ghost", Password: "correct horse"})
	assert.Error(t, err)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.CreateUser(ctxb(), dto.CreateUserRequest{
		Username: "owner", Name: "Store Owner", Password: "correct horse", Role: "admin",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctxb(), dto.LoginRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctxb(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctxb(), "not-a-token")
	assert.Error(t, err)
}

func TestDeactivatedUserCannotLoginOrRefresh(t *testing.T) {
	svc := newAuthService(t)

	created, err := svc.CreateUser(ctxb(), dto.CreateUserRequest{
		Username: "staffer", Name: "Shift Staff", Password: "password123", Role: "staff",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctxb(), dto.LoginRequest{Username: "staffer", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctxb(), uuid.MustParse(created.ID)))

	_, err = svc.Login(ctxb(), dto.LoginRequest{Username: "staffer", Password: "password123"})
	assert.Error(t, err)

	_, err = svc.Refresh(ctxb(), login.RefreshToken)
	assert.Error(t, err)
}
