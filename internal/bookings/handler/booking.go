package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"gigbook/internal/auth"
	"gigbook/internal/bookings/service"
	apperrors "gigbook/pkg/errors"
	httputil "gigbook/pkg/http"
	"gigbook/pkg/logger"
	"gigbook/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	guard   *auth.Guard
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, guard *auth.Guard, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

// Create posts a new booking and sends the browser back to the poster's
// dashboard. Only venues and admins reach this handler.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.redirectToDashboard(w, r)
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	venueName := r.URL.Query().Get("venuename")
	if venueName == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("The 'venuename' query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var update model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Update(r.Context(), venueName, &update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	venueName := r.URL.Query().Get("venuename")
	if venueName == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("The 'venuename' query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.DeleteByVenue(r.Context(), venueName)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

// Apply records the session user as an applicant on the booking, then sends
// the browser back to their dashboard.
func (h *BookingHandler) Apply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.rejectAnonymous(w, "Apply")
		return
	}

	if _, err := h.service.Apply(r.Context(), ps.ByName("id"), sess.Username); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Apply", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.redirectToDashboard(w, r)
}

func (h *BookingHandler) ApplyByVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.rejectAnonymous(w, "ApplyByVenue")
		return
	}

	if _, err := h.service.ApplyByVenue(r.Context(), ps.ByName("venuename"), sess.Username); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ApplyByVenue", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.redirectToDashboard(w, r)
}

func (h *BookingHandler) redirectToDashboard(w http.ResponseWriter, r *http.Request) {
	usertype := ""
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		usertype = sess.Usertype
	}
	httputil.Redirect(w, r, model.DashboardPath(usertype))
}

func (h *BookingHandler) rejectAnonymous(w http.ResponseWriter, handlerName string) {
	if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Not logged in")); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.guard.RequireRole(model.UserTypeVenue, model.UserTypeAdmin)(h.Create))
	router.GET("/bookings", h.GetAll)
	router.PATCH("/bookings", h.guard.RequireRole(model.UserTypeVenue, model.UserTypeAdmin)(h.Update))
	router.DELETE("/bookings", h.guard.RequireRole(model.UserTypeAdmin)(h.Delete))
	router.POST("/bookings/apply/:id", h.guard.RequireSession(h.Apply))
	router.POST("/bookings/applyByVenue/:venuename", h.guard.RequireSession(h.ApplyByVenue))
}
