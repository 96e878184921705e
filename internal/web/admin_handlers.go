package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats := h.bookings.DashboardStats(r.Context())
	h.render(w, r, http.StatusOK, "admin/dashboard", "Admin Dashboard", map[string]any{
		"Stats": stats,
	})
}

func (h *Handlers) AdminTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.tours.ListAll(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load tours", "error", err)
		h.redirectWithFlash(w, r, "/admin/dashboard", "error", "Could not load tours.")
		return
	}
	h.render(w, r, http.StatusOK, "admin/tours", "Manage Tours", map[string]any{
		"Tours": tours,
	})
}

func (h *Handlers) AdminNewTour(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin/tour-form", "Add Tour", map[string]any{
		"Action": "/admin/tours",
	})
}

func (h *Handlers) AdminCreateTour(w http.ResponseWriter, r *http.Request) {
	in, err := parseTourForm(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.tours.Create(r.Context(), in); err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, "admin/tour-form", "Add Tour", map[string]any{
			"Action": "/admin/tours",
			"Error":  tourErrorMessage(r, err),
		})
		return
	}

	h.redirectWithFlash(w, r, "/admin/tours", "success", "Tour created successfully.")
}

func (h *Handlers) AdminEditTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/tours", "error", "Tour not found.")
		return
	}

	tour, err := h.tours.Get(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load tour", "error", err, "tour_id", id)
	}
	if tour == nil {
		h.redirectWithFlash(w, r, "/admin/tours", "error", "Tour not found.")
		return
	}

	h.render(w, r, http.StatusOK, "admin/tour-form", "Edit Tour", map[string]any{
		"Action": fmt.Sprintf("/admin/tours/%d", tour.ID),
		"Tour":   tour,
	})
}

func (h *Handlers) AdminUpdateTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/tours", "error", "Tour not found.")
		return
	}

	in, err := parseTourForm(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.tours.Update(r.Context(), id, in); err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, "admin/tour-form", "Edit Tour", map[string]any{
			"Action": fmt.Sprintf("/admin/tours/%d", id),
			"Error":  tourErrorMessage(r, err),
		})
		return
	}

	h.redirectWithFlash(w, r, "/admin/tours", "success", "Tour updated successfully.")
}

func (h *Handlers) AdminDeleteTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/tours", "error", "Tour not found.")
		return
	}

	if err := h.tours.Delete(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete tour", "error", err, "tour_id", id)
		h.redirectWithFlash(w, r, "/admin/tours", "error", "Could not delete the tour.")
		return
	}

	h.redirectWithFlash(w, r, "/admin/tours", "success", "Tour deleted.")
}

func parseTourForm(r *http.Request) (*domain.TourInput, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("price")))
	if err != nil {
		price = decimal.Zero
	}

	return &domain.TourInput{
		Title:               r.PostFormValue("title"),
		Description:         r.PostFormValue("description"),
		DetailedDescription: r.PostFormValue("detailed_description"),
		Price:               price,
		Duration:            r.PostFormValue("duration"),
		Category:            r.PostFormValue("category"),
		ImageURL:            r.PostFormValue("image_url"),
		Address:             r.PostFormValue("address"),
		Available:           r.PostFormValue("available") == "on",
	}, nil
}

func tourErrorMessage(r *http.Request, err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "Title is required."
	case errors.Is(err, domain.ErrNegativePrice):
		return "Price cannot be negative."
	default:
		logger.ErrorContext(r.Context(), "Failed to save tour", "error", err)
		return "Could not save the tour. Please try again."
	}
}

func (h *Handlers) AdminBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.bookings.ListAll(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load bookings", "error", err)
		h.redirectWithFlash(w, r, "/admin/dashboard", "error", "Could not load bookings.")
		return
	}
	h.render(w, r, http.StatusOK, "admin/bookings", "Manage Bookings", map[string]any{
		"Bookings": list,
	})
}

func (h *Handlers) AdminUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/bookings", "error", "Booking not found.")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := strings.TrimSpace(r.PostFormValue("status"))
	if status == "" {
		h.redirectWithFlash(w, r, "/admin/bookings", "error", "Status cannot be empty.")
		return
	}

	if err := h.bookings.UpdateStatus(r.Context(), id, status); err != nil {
		logger.ErrorContext(r.Context(), "Failed to update booking status", "error", err, "booking_id", id)
		h.redirectWithFlash(w, r, "/admin/bookings", "error", "Could not update the booking.")
		return
	}

	h.redirectWithFlash(w, r, "/admin/bookings", "success", "Booking status updated.")
}

func (h *Handlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load users", "error", err)
		h.redirectWithFlash(w, r, "/admin/dashboard", "error", "Could not load users.")
		return
	}
	h.render(w, r, http.StatusOK, "admin/users", "Manage Users", map[string]any{
		"Users": users,
	})
}

func (h *Handlers) AdminUserDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/users", "error", "User not found.")
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load user", "error", err, "user_id", id)
	}
	if user == nil {
		h.redirectWithFlash(w, r, "/admin/users", "error", "User not found.")
		return
	}

	h.render(w, r, http.StatusOK, "admin/user-detail", user.Name, map[string]any{
		"Account": user,
	})
}

func (h *Handlers) AdminMakeAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/users", "error", "User not found.")
		return
	}

	if err := h.users.MakeAdmin(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.redirectWithFlash(w, r, "/admin/users", "error", "User not found.")
			return
		}
		logger.ErrorContext(r.Context(), "Failed to promote user", "error", err, "user_id", id)
		h.redirectWithFlash(w, r, "/admin/users", "error", "Could not update the user.")
		return
	}

	h.redirectWithFlash(w, r, fmt.Sprintf("/admin/users/%d", id), "success", "User is now an administrator.")
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/admin/users", "error", "User not found.")
		return
	}

	sess := session.FromRequest(r)
	if err := h.users.Delete(r.Context(), id, sess.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDelete):
			h.redirectWithFlash(w, r, fmt.Sprintf("/admin/users/%d", id), "error",
				"You cannot delete your own account.")
		case errors.Is(err, domain.ErrNotFound):
			h.redirectWithFlash(w, r, "/admin/users", "error", "User not found.")
		default:
			logger.ErrorContext(r.Context(), "Failed to delete user", "error", err, "user_id", id)
			h.redirectWithFlash(w, r, "/admin/users", "error", "Could not delete the user.")
		}
		return
	}

	h.redirectWithFlash(w, r, "/admin/users", "success", "User deleted.")
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "pages/404", "Page Not Found", nil)
}
