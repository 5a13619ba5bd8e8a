package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/httpx"
	"github.com/bizmodel-ai/backend/internal/models"
)

// Accounts is the user persistence the handler needs.
type Accounts interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, string, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type Handler struct {
	accounts Accounts
	tokens   *Tokens
	log      *zap.Logger
}

func NewHandler(accounts Accounts, tokens *Tokens, log *zap.Logger) *Handler {
	return &Handler{accounts: accounts, tokens: tokens, log: log}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.WriteError(w, h.log, apperr.Internal("Failed to create account", err))
		return
	}

	user, err := h.accounts.CreateUser(r.Context(), req.Username, req.Email, string(hashedPassword))
	switch {
	case errors.Is(err, ErrEmailTaken):
		httpx.WriteError(w, h.log, apperr.Conflict("An account with this email already exists"))
		return
	case errors.Is(err, ErrUsernameTaken):
		httpx.WriteError(w, h.log, apperr.Conflict("This username is already taken"))
		return
	case err != nil:
		httpx.WriteError(w, h.log, apperr.Internal("Failed to create account", err))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		httpx.WriteError(w, h.log, apperr.Internal("Failed to generate token", err))
		return
	}

	h.log.Info("account registered", zap.Int64("user_id", user.ID))
	httpx.WriteJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, hashedPassword, err := h.accounts.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, h.log, apperr.Unauthorized("Invalid email or password"))
		return
	}
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	// Auto-provisioned guests have no password and cannot log in.
	if hashedPassword == "" || bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)) != nil {
		httpx.WriteError(w, h.log, apperr.Unauthorized("Invalid email or password"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		httpx.WriteError(w, h.log, apperr.Internal("Failed to generate token", err))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		httpx.WriteError(w, h.log, apperr.Unauthorized("Authorization header required"))
		return
	}

	user, err := h.accounts.FindByID(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, h.log, apperr.NotFound("User not found"))
		return
	}
	if err != nil {
		httpx.WriteError(w, h.log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
