package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/api/shared"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/platform/logger"
	"github.com/soloadmin/admin-api/internal/redact"
	"github.com/soloadmin/admin-api/internal/service/auth"
	"github.com/soloadmin/admin-api/internal/store"
)

// GateMessage is the body message of every request rejected by the admin gate.
const GateMessage = "Access denied, administrator required"

// TokenResolver verifies a bearer token and returns its claims.
// *auth.TokenService implements it.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Claims, error)
}

// AdminLoader loads the administrator a token was issued for.
type AdminLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Administrator, error)
}

// AdminGate rejects every request that does not carry a live token of an
// account holding the admin role.
type AdminGate struct {
	tokens TokenResolver
	admins AdminLoader
}

// NewAdminGate creates a gate backed by the given token resolver and administrator lookup.
func NewAdminGate(tokens TokenResolver, admins AdminLoader) *AdminGate {
	return &AdminGate{
		tokens: tokens,
		admins: admins,
	}
}

// RequireAdmin resolves the bearer token, loads its administrator and checks the role.
// Every failure ends in 403 with GateMessage. On success the administrator and
// the token ID are attached to the request context.
func (g *AdminGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusForbidden, GateMessage)
			return
		}

		claims, err := g.tokens.Resolve(ctx, token)
		if err != nil {
			if !isAuthError(err) {
				log.Error("failed to resolve token", "error", redact.Error(err))
			}
			shared.RespondWithError(w, r, http.StatusForbidden, GateMessage)
			return
		}

		admin, err := g.admins.GetByID(ctx, claims.UserID)
		if err != nil {
			if !store.IsNotFoundError(err) {
				log.Error("failed to load administrator", "error", redact.Error(err))
			}
			shared.RespondWithError(w, r, http.StatusForbidden, GateMessage)
			return
		}

		if !admin.IsAdmin() {
			log.Warn("token holder lacks admin role", "admin_id", admin.ID)
			shared.RespondWithError(w, r, http.StatusForbidden, GateMessage)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithAdmin(ctx, admin, claims.TokenID)))
	})
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isAuthError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrRevokedToken)
}
