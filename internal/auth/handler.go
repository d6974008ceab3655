package auth

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	userservice "gigbook/internal/users/service"
	apperrors "gigbook/pkg/errors"
	httputil "gigbook/pkg/http"
	"gigbook/pkg/logger"
	"gigbook/pkg/model"
)

// AuthHandler serves signup, login, logout and the session probe. Signup and
// login are workflow routes: success is a 303 to the page the browser should
// land on, errors stay on the submitting page with an explicit status.
type AuthHandler struct {
	users    userservice.UserService
	sessions *Sessions
	guard    *Guard
	log      *logger.Logger
}

func NewAuthHandler(users userservice.UserService, sessions *Sessions, guard *Guard, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		guard:    guard,
		log:      log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Signup", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.sessions.Start(r.Context(), w, user); err != nil {
		h.log.Error("Failed to start session after signup", "username", user.Username, "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to establish session", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.Redirect(w, r, model.ProfileSetupPath(user.Usertype))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.sessions.Start(r.Context(), w, user); err != nil {
		h.log.Error("Failed to start session after login", "username", user.Username, "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to establish session", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.Redirect(w, r, model.DashboardPath(user.Usertype))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.sessions.Clear(r.Context(), w, r); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to end session", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Logout", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.Redirect(w, r, "/index.html")
}

// CheckSession is the probe the front end polls to decide which nav to
// render. It answers with the session's username or a 401.
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
			Error: "No active session",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckSession", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]string{"currentUser": sess.Username}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "CheckSession", "operation", "WriteJSON", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users/signup", h.guard.RedirectIfAuthenticated(h.Signup))
	router.POST("/users/login", h.guard.RedirectIfAuthenticated(h.Login))
	router.GET("/users/logout", h.Logout)
	router.GET("/users/check-session", h.CheckSession)
}
