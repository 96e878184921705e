package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

const (
	homeTourLimit      = 6
	dashboardTourLimit = 5
)

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	tours, err := h.tours.ListAvailable(r.Context(), homeTourLimit)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load featured tours", "error", err)
	}
	h.render(w, r, http.StatusOK, "pages/home", "Casalinga Tours", map[string]any{
		"Tours": tours,
	})
}

func (h *Handlers) Tours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.tours.ListAvailable(r.Context(), 0)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load tours", "error", err)
		h.redirectWithFlash(w, r, "/", "error", "Could not load tours. Please try again.")
		return
	}
	h.render(w, r, http.StatusOK, "pages/tours", "Our Tours", map[string]any{
		"Tours": tours,
	})
}

func (h *Handlers) TourDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.redirectWithFlash(w, r, "/tours", "error", "Tour not found.")
		return
	}

	tour, err := h.tours.GetAvailable(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load tour", "error", err, "tour_id", id)
	}
	if tour == nil {
		h.redirectWithFlash(w, r, "/tours", "error", "Tour not found.")
		return
	}

	h.render(w, r, http.StatusOK, "pages/tour-detail", tour.Title, map[string]any{
		"Tour": tour,
	})
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/about", "About Us", nil)
}

func (h *Handlers) Blog(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/blog", "Blog", nil)
}

func (h *Handlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/contact", "Contact Us", nil)
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if !h.limiter.Allow(r.Context(), "contact:"+clientIP(r)) {
		h.redirectWithFlash(w, r, "/contact", "error", "Too many messages. Please try again later.")
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	message := strings.TrimSpace(r.PostFormValue("message"))
	if name == "" || email == "" || message == "" {
		h.redirectWithFlash(w, r, "/contact", "error", "Please fill in all fields.")
		return
	}

	if err := h.mail.SendContactMessage(name, email, message); err != nil {
		logger.ErrorContext(r.Context(), "Failed to send contact message", "error", err)
		h.redirectWithFlash(w, r, "/contact", "error", "Could not send your message. Please try again.")
		return
	}

	event := events.ContactReceivedEvent{Name: name, Email: email, ReceivedAt: time.Now()}
	if err := h.eventBus.Publish(r.Context(), events.ContactReceived, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish contact event", "error", err)
	}

	h.redirectWithFlash(w, r, "/contact", "success", "Thank you for your message! We will get back to you soon.")
}

func (h *Handlers) UserDashboard(w http.ResponseWriter, r *http.Request) {
	sess := session.FromRequest(r)

	recent, err := h.bookings.ListForUser(r.Context(), sess.UserID, dashboardTourLimit)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load recent bookings", "error", err)
	}

	h.render(w, r, http.StatusOK, "pages/user-dashboard", "My Dashboard", map[string]any{
		"RecentBookings": recent,
	})
}
