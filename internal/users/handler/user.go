package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"gigbook/internal/auth"
	"gigbook/internal/users/service"
	apperrors "gigbook/pkg/errors"
	httputil "gigbook/pkg/http"
	"gigbook/pkg/logger"
	"gigbook/pkg/model"
	"gigbook/pkg/sanitizer"
)

type UserHandler struct {
	service service.UserService
	guard   *auth.Guard
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, guard *auth.Guard, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	username := ps.ByName("username")

	user, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByUsername", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByUsername", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username := r.URL.Query().Get("username")
	if username == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("The 'username' query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.DeleteByUsername(r.Context(), username)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

// UpdatePerformerProfile rewrites the profile of the session's own user.
// The target comes from the session, never from the payload, so one user
// cannot edit another's profile.
func (h *UserHandler) UpdatePerformerProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Not logged in")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdatePerformerProfile", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdatePerformerProfile", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.service.UpdatePerformerProfile(r.Context(), sess.UserID, &update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdatePerformerProfile", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdatePerformerProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) UpdateVenueProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	username := ps.ByName("username")

	// Only the named user or an admin may rewrite a venue profile.
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("No active session")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateVenueProfile", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if sess.Usertype != model.UserTypeAdmin && sanitizer.NormalizeUsername(username) != sess.Username {
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("You may only update your own profile")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateVenueProfile", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var update model.VenueProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateVenueProfile", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.service.UpdateVenueProfile(r.Context(), username, &update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateVenueProfile", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateVenueProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.sessionUser(w, r, "Profile")
}

// SelectedFor returns the session user's document, whose selected_for array
// lists the bookings they've been chosen for.
func (h *UserHandler) SelectedFor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.sessionUser(w, r, "SelectedFor")
}

func (h *UserHandler) sessionUser(w http.ResponseWriter, r *http.Request, handlerName string) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Not logged in")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.GetByUsername(r.Context(), sess.Username)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", handlerName, "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) ChoosePerformer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	performerName := ps.ByName("performername")

	var selection model.Selection
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ChoosePerformer", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	user, err := h.service.ChoosePerformer(r.Context(), performerName, selection)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ChoosePerformer", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "ChoosePerformer", "operation", "WriteSuccess", "error", err)
	}
}

// RegisterRoutes wires the user surface. The username lookup lives under
// /users/name/ because the router cannot share /users/:username with the
// static /users/logout and /users/check-session siblings.
func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/users", h.GetAll)
	router.GET("/users/name/:username", h.GetByUsername)
	router.DELETE("/users", h.guard.RequireRole(model.UserTypeAdmin)(h.Delete))
	router.PATCH("/makeprofileperformer", h.guard.RequireVerifiedSession(h.UpdatePerformerProfile))
	router.POST("/makeprofilevenue/:username", h.guard.RequireSession(h.UpdateVenueProfile))
	router.GET("/profile", h.guard.RequireSession(h.Profile))
	router.GET("/selectedFor", h.guard.RequireSession(h.SelectedFor))
	router.POST("/users/choosePerformer/:performername", h.guard.RequireRole(model.UserTypeVenue, model.UserTypeAdmin)(h.ChoosePerformer))
}
