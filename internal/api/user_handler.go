package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/question-api/internal/api/shared"
	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/service/auth"
	"github.com/phrazzld/question-api/internal/store"
)

// User response messages.
const (
	MsgUserRegistered = "User registered successfully"
	MsgLoginSuccess   = "Login successful"
	MsgUsersFetched   = "Users fetched successfully"
	MsgUserFetched    = "User fetched successfully"
	MsgUserUpdated    = "User updated successfully"
	MsgUserDeleted    = "User deleted successfully!"
	MsgUserNotFound   = "User not found"
)

// PasswordService hashes new passwords and verifies login attempts.
type PasswordService interface {
	auth.PasswordHasher
	auth.PasswordVerifier
}

// UserHandler handles user registration, login and user management requests.
type UserHandler struct {
	users      store.UserStore
	jwtService auth.JWTService
	passwords  PasswordService
	policy     StatusPolicy
	logger     *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	users store.UserStore,
	jwtService auth.JWTService,
	passwords PasswordService,
	policy StatusPolicy,
	logger *slog.Logger,
) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users store cannot be nil for UserHandler")
	}
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil for UserHandler")
	}
	if passwords == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("password service cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:      users,
		jwtService: jwtService,
		passwords:  passwords,
		policy:     policy,
		logger:     logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /api/users/register requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	hash, err := h.passwords.Hash(user.Password)
	if err != nil {
		h.fail(w, r, fmt.Errorf("failed to hash password: %w", err))
		return
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := h.users.Create(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	shared.RespondSuccess(w, r, http.StatusCreated, MsgUserRegistered, user)
}

// Login handles POST /api/users/login requests. Unknown emails and wrong
// passwords produce the same failure.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.fail(w, r, errInvalidCredentials(err))
			return
		}
		h.fail(w, r, err)
		return
	}

	if err := h.passwords.Compare(user.HashedPassword, req.Password); err != nil {
		log.Debug("password mismatch", slog.String("user_id", user.ID))
		h.fail(w, r, errInvalidCredentials(err))
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, fmt.Errorf("failed to generate token: %w", err))
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, MsgLoginSuccess, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// ListUsers handles GET /api/users requests.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	shared.RespondSuccess(w, r, h.policy.Collection(), MsgUsersFetched, users)
}

// GetUser handles GET /api/users/{id} requests.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "User")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	outcome := Classify(h.users.GetByID(r.Context(), id))
	respondOutcome(w, r, h.policy, outcome, http.StatusOK, MsgUserFetched, MsgUserNotFound, asBody[*domain.User])
}

// UpdateUser handles PUT /api/users/{id} requests. A new password is hashed
// before it reaches the store.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "User")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !h.requireOwner(w, r, id) {
		return
	}

	var patch domain.UserPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := patch.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	if patch.Password != nil {
		hash, err := h.passwords.Hash(*patch.Password)
		if err != nil {
			h.fail(w, r, fmt.Errorf("failed to hash password: %w", err))
			return
		}
		patch.HashedPassword = &hash
		patch.Password = nil
	}
	if patch.IsEmpty() {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("user update carries no field changes", slog.String("user_id", id))
	}

	outcome := Classify(h.users.Update(r.Context(), id, patch))
	respondOutcome(w, r, h.policy, outcome, h.policy.Collection(), MsgUserUpdated, MsgUserNotFound, asBody[*domain.User])
}

// DeleteUser handles DELETE /api/users/{id} requests. The user's papers are
// left in place.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "User")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	outcome := Classify(h.users.Delete(r.Context(), id))
	respondOutcome(w, r, h.policy, outcome, h.policy.Collection(), MsgUserDeleted, MsgUserNotFound, nil)
}

// requireOwner allows the request only when the caller is the user at id.
func (h *UserHandler) requireOwner(w http.ResponseWriter, r *http.Request, id string) bool {
	userID, ok := requireIdentity(w, r, h.policy, h.logger)
	if !ok {
		return false
	}
	if userID != id {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("user mutation rejected for non-owner",
			slog.String("user_id", userID),
			slog.String("target_id", id))
		h.fail(w, r, errNotAccountOwner)
		return false
	}
	return true
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondFailure(w, r, h.policy.Failure(err), err)
}
