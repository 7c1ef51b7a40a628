package service

import (
	"context"
	"testing"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCreatesUserAndSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newStore()
	cache := memory.NewSessionCache()
	svc := NewAuthService(&fakeFactory{store: store}, cache)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "customer@example.com",
		Name:  "Customer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.SessionToken)
	assert.NotEmpty(t, res.AccessToken)
	require.Len(t, store.users, 1)
	assert.Equal(t, "customer@example.com", store.users[0].Email)

	cached, ok := cache.Get(res.SessionToken)
	require.True(t, ok)
	assert.Equal(t, res.UserId, cached.UserId)
}

func TestLoginReusesExistingUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	store := newStore()
	cache := memory.NewSessionCache()
	svc := NewAuthService(&fakeFactory{store: store}, cache)

	first, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "repeat@example.com"})
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "repeat@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.UserId, second.UserId)
	assert.NotEqual(t, first.SessionToken, second.SessionToken, "every login mints a fresh session")
	assert.Len(t, store.users, 1)
	assert.Len(t, store.sessions, 2)
}
