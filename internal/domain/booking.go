package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking status values set by the application. Admin status updates are a
// free-text pass-through, so stored values are not limited to these.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	TourID          int64     `json:"tour_id"`
	BookingDate     string    `json:"booking_date"`
	Participants    int       `json:"participants"`
	SpecialRequests string    `json:"special_requests"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingDetail is a booking joined with tour and user columns for listings
// and the payment page.
type BookingDetail struct {
	Booking
	TourTitle string          `json:"tour_title"`
	TourPrice decimal.Decimal `json:"tour_price"`
	UserName  string          `json:"user_name,omitempty"`
	UserEmail string          `json:"user_email,omitempty"`
}

// Amount is the payable total: tour price times participants. Value receiver
// so templates can call it on list elements.
func (b BookingDetail) Amount() decimal.Decimal {
	return b.TourPrice.Mul(decimal.NewFromInt(int64(b.Participants)))
}

type BookingRequest struct {
	TourID          int64
	BookingDate     string
	Participants    int
	SpecialRequests string
}

func (r *BookingRequest) Validate() error {
	if r.TourID == 0 || r.BookingDate == "" || r.Participants == 0 {
		return ErrMissingFields
	}
	return nil
}
