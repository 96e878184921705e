package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodPayfast   = "payfast"
	PaymentStatusCompleted = "completed"
)

type Payment struct {
	ID            int64           `json:"id"`
	BookingID     int64           `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}
