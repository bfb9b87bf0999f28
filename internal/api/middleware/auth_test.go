package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/api/shared"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/mocks"
	"github.com/soloadmin/admin-api/internal/service/auth"
	"github.com/soloadmin/admin-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	admins *mocks.MockAdminStore
	tokens *mocks.MockTokenStore
	issuer *auth.TokenService
	gate   *AdminGate
}

func newGateFixture() *gateFixture {
	admins := mocks.NewMockAdminStore()
	tokens := mocks.NewMockTokenStore()
	issuer := auth.NewTokenService(&mocks.MockJWTService{}, tokens, time.Hour)
	return &gateFixture{
		admins: admins,
		tokens: tokens,
		issuer: issuer,
		gate:   NewAdminGate(issuer, admins),
	}
}

func (f *gateFixture) seed(t *testing.T, role string) (*domain.Administrator, string, uuid.UUID) {
	t.Helper()
	admin, err := domain.NewAdministrator("Diop", "Awa", "awa@x.com", "700000000", domain.SexFeminine, "hash", nil)
	require.NoError(t, err)
	admin.Role = role
	f.admins.Seed(admin)

	token, record, err := f.issuer.Issue(context.Background(), admin.ID)
	require.NoError(t, err)
	return admin, token, record.ID
}

// echoHandler reports the administrator and token ID found in the context.
func echoHandler(t *testing.T, wantAdmin uuid.UUID, wantToken uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := shared.AdminFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantAdmin, admin.ID)

		tokenID, ok := shared.TokenIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantToken, tokenID)

		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	admin, token, tokenID := f.seed(t, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	f.gate.RequireAdmin(echoHandler(t, admin.ID, tokenID)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminAcceptsLowercaseScheme(t *testing.T) {
	t.Parallel()

	f := newGateFixture()
	admin, token, tokenID := f.seed(t, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()

	f.gate.RequireAdmin(echoHandler(t, admin.ID, tokenID)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header func(t *testing.T, f *gateFixture) string
	}{
		{
			name:   "missing header",
			header: func(t *testing.T, f *gateFixture) string { return "" },
		},
		{
			name:   "wrong scheme",
			header: func(t *testing.T, f *gateFixture) string { return "Basic dXNlcjpwYXNz" },
		},
		{
			name:   "empty token",
			header: func(t *testing.T, f *gateFixture) string { return "Bearer " },
		},
		{
			name:   "garbage token",
			header: func(t *testing.T, f *gateFixture) string { return "Bearer not-a-token" },
		},
		{
			name: "revoked token",
			header: func(t *testing.T, f *gateFixture) string {
				_, token, tokenID := f.seed(t, domain.RoleAdmin)
				require.NoError(t, f.issuer.Revoke(context.Background(), tokenID))
				return "Bearer " + token
			},
		},
		{
			name: "non admin role",
			header: func(t *testing.T, f *gateFixture) string {
				_, token, _ := f.seed(t, "editor")
				return "Bearer " + token
			},
		},
		{
			name: "administrator deleted",
			header: func(t *testing.T, f *gateFixture) string {
				_, token, _ := f.seed(t, domain.RoleAdmin)
				f.admins.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Administrator, error) {
					return nil, store.ErrAdminNotFound
				}
				return "Bearer " + token
			},
		},
		{
			name: "store failure",
			header: func(t *testing.T, f *gateFixture) string {
				_, token, _ := f.seed(t, domain.RoleAdmin)
				f.admins.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Administrator, error) {
					return nil, errors.New("connection refused")
				}
				return "Bearer " + token
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newGateFixture()
			header := tc.header(t, f)

			req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
			f.gate.RequireAdmin(next).ServeHTTP(w, req)

			assert.False(t, called, "handler must not run")
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.JSONEq(t, `{"message":"`+GateMessage+`"}`, w.Body.String())
		})
	}
}

func TestTraceAndRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	h := Trace(base)(RequestLogger(base)(inner))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	require.Len(t, traceID, shared.TraceIDLength*2)

	logged := buf.String()
	assert.Contains(t, logged, `"msg":"request started"`)
	assert.Contains(t, logged, `"msg":"request"`)
	assert.Contains(t, logged, `"status":418`)
	assert.Contains(t, logged, `"level":"WARN"`)
	assert.Contains(t, logged, `"trace_id":"`+traceID+`"`)
}
