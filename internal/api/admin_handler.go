package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/api/middleware"
	"github.com/soloadmin/admin-api/internal/api/shared"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/platform/logger"
	"github.com/soloadmin/admin-api/internal/service/account"
)

// AccountService is the set of account operations served over HTTP.
// *account.Service implements it.
type AccountService interface {
	Register(ctx context.Context, in account.RegisterInput, photo *domain.Upload) (*domain.Administrator, string, error)
	Login(ctx context.Context, in account.LoginInput) (*domain.Administrator, string, error)
	FetchSelf(ctx context.Context, id uuid.UUID) (*domain.Administrator, error)
	UpdateSelf(ctx context.Context, id uuid.UUID, in account.UpdateInput, photo *domain.Upload) (*domain.Administrator, error)
	Logout(ctx context.Context, tokenID uuid.UUID) error
	DeleteSelf(ctx context.Context, id uuid.UUID) error
}

// AdminHandler handles the /admin endpoints.
type AdminHandler struct {
	accounts     AccountService
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewAdminHandler creates a handler. maxBodyBytes caps every request body; zero disables the cap.
func NewAdminHandler(accounts AccountService, maxBodyBytes int64, log *slog.Logger) *AdminHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AdminHandler{
		accounts:     accounts,
		maxBodyBytes: maxBodyBytes,
		logger:       log.With("component", "admin_handler"),
	}
}

// Register handles POST /admin/register.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.maxBodyBytes)

	in, photo, err := decodeRegister(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	admin, token, err := h.accounts.Register(r.Context(), in, photo)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Message: MsgRegistered,
		User:    admin,
		Token:   token,
	})
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, h.maxBodyBytes)

	in, err := decodeLogin(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	admin, token, err := h.accounts.Login(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Message: MsgLoggedIn,
		User:    admin,
		Token:   token,
	})
}

// Me handles GET /admin/me and returns the authenticated administrator.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentAdmin(w, r)
	if !ok {
		return
	}

	admin, err := h.accounts.FetchSelf(r.Context(), current.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, admin)
}

// Update handles PUT /admin/update. Only submitted fields change.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentAdmin(w, r)
	if !ok {
		return
	}
	limitBody(w, r, h.maxBodyBytes)

	in, photo, err := decodeUpdate(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	admin, err := h.accounts.UpdateSelf(r.Context(), current.ID, in, photo)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		Message: MsgUpdated,
		User:    admin,
	})
}

// Logout handles POST /admin/logout and revokes only the token of the request.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := shared.TokenIDFromContext(r.Context())
	if !ok {
		h.log(r).Error("token ID missing from authenticated request")
		shared.RespondWithError(w, r, http.StatusForbidden, middleware.GateMessage)
		return
	}

	if err := h.accounts.Logout(r.Context(), tokenID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgLoggedOut})
}

// Delete handles DELETE /admin/delete.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentAdmin(w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteSelf(r.Context(), current.ID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgDeleted})
}

// currentAdmin returns the administrator attached by the gate, writing a 403 when absent.
func (h *AdminHandler) currentAdmin(w http.ResponseWriter, r *http.Request) (*domain.Administrator, bool) {
	admin, ok := shared.AdminFromContext(r.Context())
	if !ok {
		h.log(r).Error("administrator missing from authenticated request")
		shared.RespondWithError(w, r, http.StatusForbidden, middleware.GateMessage)
		return nil, false
	}
	return admin, true
}

func (h *AdminHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}
