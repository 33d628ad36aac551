package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hanekasa/pkg/api"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.register(t, "Alice@Example.com", "Alice")
	assert.Equal(t, "alice@example.com", alice.user.Email)
	assert.NotEmpty(t, alice.token)

	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, alice.user.ID, login.Msg.User.ID)

	me, err := env.auth.GetCurrentUser(ctx, as(session{token: login.Msg.Token}, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Msg.User.DisplayName)
}

func TestAuthService_Errors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	env.register(t, "bob@example.com", "Bob")

	_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "bob@example.com", DisplayName: "Bob", Password: "password123",
	}))
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "carol@example.com", DisplayName: "Carol", Password: "short",
	}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Password: "password123"}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email: "bob@example.com", Password: "wrong-password",
	}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.GetCurrentUser(ctx, as(session{token: "not-a-jwt"}, &api.GetCurrentUserRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)
}
