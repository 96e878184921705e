package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

func (h *Handlers) NewBooking(w http.ResponseWriter, r *http.Request) {
	tourID, err := strconv.ParseInt(r.URL.Query().Get("tour_id"), 10, 64)
	if err != nil {
		h.redirectWithFlash(w, r, "/tours", "error", "Tour not found.")
		return
	}

	tour, err := h.tours.GetAvailable(r.Context(), tourID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load tour for booking", "error", err, "tour_id", tourID)
	}
	if tour == nil {
		h.redirectWithFlash(w, r, "/tours", "error", "This tour is not available for booking.")
		return
	}

	h.render(w, r, http.StatusOK, "pages/booking-form", "Book "+tour.Title, map[string]any{
		"Tour": tour,
	})
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	rawTourID := r.PostFormValue("tour_id")
	tourID, _ := strconv.ParseInt(rawTourID, 10, 64)
	participants, _ := strconv.Atoi(r.PostFormValue("participants"))

	req := &domain.BookingRequest{
		TourID:          tourID,
		BookingDate:     strings.TrimSpace(r.PostFormValue("booking_date")),
		Participants:    participants,
		SpecialRequests: strings.TrimSpace(r.PostFormValue("special_requests")),
	}

	sess := session.FromRequest(r)
	_, err := h.bookings.Create(r.Context(), sess.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			// Send the user back to the form for the same tour.
			target := fmt.Sprintf("/bookings/new?tour_id=%s", rawTourID)
			h.redirectWithFlash(w, r, target, "error", "Please fill in all required fields.")
		case errors.Is(err, domain.ErrTourUnavailable):
			h.redirectWithFlash(w, r, "/tours", "error", "This tour is not available for booking.")
		default:
			logger.ErrorContext(r.Context(), "Failed to create booking", "error", err)
			h.redirectWithFlash(w, r, "/tours", "error", "Could not create your booking. Please try again.")
		}
		return
	}

	h.redirectWithFlash(w, r, "/user/dashboard", "success",
		"Booking request submitted! We will confirm availability soon.")
}

func (h *Handlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	sess := session.FromRequest(r)

	list, err := h.bookings.ListForUser(r.Context(), sess.UserID, 0)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load bookings", "error", err)
		h.redirectWithFlash(w, r, "/user/dashboard", "error", "Could not load your bookings.")
		return
	}

	h.render(w, r, http.StatusOK, "pages/my-bookings", "My Bookings", map[string]any{
		"Bookings": list,
	})
}
