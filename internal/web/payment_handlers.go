package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

func (h *Handlers) NewPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(r.URL.Query().Get("booking_id"), 10, 64)
	if err != nil {
		h.redirectWithFlash(w, r, "/user/dashboard", "error", "Booking not found.")
		return
	}

	sess := session.FromRequest(r)
	detail, amount, err := h.payments.Details(r.Context(), bookingID, sess.UserID)
	if err != nil {
		h.paymentError(w, r, err, bookingID)
		return
	}

	h.render(w, r, http.StatusOK, "pages/payment", "Payment", map[string]any{
		"Booking":     detail,
		"TotalAmount": amount,
	})
}

func (h *Handlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	bookingID, err := strconv.ParseInt(r.PostFormValue("booking_id"), 10, 64)
	if err != nil {
		h.redirectWithFlash(w, r, "/user/dashboard", "error", "Booking not found.")
		return
	}

	sess := session.FromRequest(r)
	if _, err := h.payments.Process(r.Context(), bookingID, sess.UserID); err != nil {
		h.paymentError(w, r, err, bookingID)
		return
	}

	h.redirectWithFlash(w, r, "/user/dashboard", "success",
		"Payment successful! Your booking is now confirmed.")
}

func (h *Handlers) paymentError(w http.ResponseWriter, r *http.Request, err error, bookingID int64) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotOwner):
		h.redirectWithFlash(w, r, "/user/dashboard", "error", "Booking not found.")
	default:
		logger.ErrorContext(r.Context(), "Payment failed", "error", err, "booking_id", bookingID)
		h.redirectWithFlash(w, r, "/user/dashboard", "error", "Payment failed. Please try again.")
	}
}
