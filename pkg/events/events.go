package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// LogEventBus writes events to the structured log. Used when no NATS URL is
// configured so event publishing never blocks request handling.
type LogEventBus struct{}

func NewLogEventBus() *LogEventBus {
	return &LogEventBus{}
}

func (l *LogEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	logger.InfoContext(ctx, "Event published", "subject", subject, "data", string(payload))
	return nil
}

func (l *LogEventBus) Close() error { return nil }

// Event subjects
const (
	UserRegistered       = "user.registered"
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	PaymentCompleted     = "payment.completed"
	ContactReceived      = "contact.received"
)

// Event payloads
type UserRegisteredEvent struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingCreatedEvent struct {
	BookingID    int64     `json:"booking_id"`
	UserID       int64     `json:"user_id"`
	TourID       int64     `json:"tour_id"`
	BookingDate  string    `json:"booking_date"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

type BookingStatusChangedEvent struct {
	BookingID int64     `json:"booking_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

type PaymentCompletedEvent struct {
	PaymentID     int64           `json:"payment_id"`
	BookingID     int64           `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transaction_id"`
	CompletedAt   time.Time       `json:"completed_at"`
}

type ContactReceivedEvent struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ReceivedAt time.Time `json:"received_at"`
}
