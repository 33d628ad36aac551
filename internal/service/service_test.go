package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/hanekasa/internal/auth"
	"github.com/mmynk/hanekasa/internal/events"
	"github.com/mmynk/hanekasa/internal/middleware"
	"github.com/mmynk/hanekasa/internal/storage/sqlite"
	"github.com/mmynk/hanekasa/pkg/api"
)

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ExpenseCreated
}

func (p *recordingPublisher) PublishExpenseCreated(_ context.Context, msg events.ExpenseCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.ExpenseCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ExpenseCreated(nil), p.events...)
}

type testEnv struct {
	auth      *api.AuthServiceClient
	groups    *api.GroupServiceClient
	expenses  *api.ExpenseServiceClient
	balances  *api.BalanceServiceClient
	publisher *recordingPublisher
}

// setupTestServer serves all services over httptest against a temp SQLite file.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	publisher := &recordingPublisher{}

	authSvc := NewAuthService(authenticator, jwtManager, store, logger)
	groupSvc := NewGroupService(store, logger)
	expenseSvc := NewExpenseService(store, publisher, logger)
	balanceSvc := NewBalanceService(store, logger)

	optional := connect.WithInterceptors(middleware.OptionalAuth(jwtManager))
	required := connect.WithInterceptors(middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(authSvc, optional))
	mux.Handle(api.NewGroupServiceHandler(groupSvc, required))
	mux.Handle(api.NewExpenseServiceHandler(expenseSvc, required))
	mux.Handle(api.NewBalanceServiceHandler(balanceSvc, required))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		auth:      api.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:    api.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses:  api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		balances:  api.NewBalanceServiceClient(http.DefaultClient, server.URL),
		publisher: publisher,
	}
}

type session struct {
	user  *api.User
	token string
}

func (e *testEnv) register(t *testing.T, email, name string) session {
	t.Helper()

	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: name,
		Password:    "password123",
	}))
	require.NoError(t, err)
	return session{user: resp.Msg.User, token: resp.Msg.Token}
}

// as builds a request carrying the session's bearer token.
func as[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

// household creates a group owned by the first session with the rest added as members.
func (e *testEnv) household(t *testing.T, name string, owner session, others ...session) string {
	t.Helper()
	ctx := context.Background()

	resp, err := e.groups.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: name}))
	require.NoError(t, err)
	groupID := resp.Msg.Group.ID

	for _, o := range others {
		_, err := e.groups.AddMember(ctx, as(owner, &api.AddMemberRequest{GroupID: groupID, Email: o.user.Email}))
		require.NoError(t, err)
	}
	return groupID
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "error: %v", err)
}
