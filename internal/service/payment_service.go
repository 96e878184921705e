package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/repo/postgres"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type PaymentService interface {
	Details(ctx context.Context, bookingID, userID int64) (*domain.BookingDetail, decimal.Decimal, error)
	Process(ctx context.Context, bookingID, userID int64) (*domain.Payment, error)
}

type paymentService struct {
	bookingRepo postgres.BookingRepository
	paymentRepo postgres.PaymentRepository
	eventBus    events.Publisher
}

func NewPaymentService(
	bookingRepo postgres.BookingRepository,
	paymentRepo postgres.PaymentRepository,
	eventBus events.Publisher,
) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		eventBus:    eventBus,
	}
}

// Details loads the booking with its tour for the payment page. The amount is
// always computed server-side from the tour price and participant count.
func (s *paymentService) Details(ctx context.Context, bookingID, userID int64) (*domain.BookingDetail, decimal.Decimal, error) {
	detail, err := s.bookingRepo.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load booking: %w", err)
	}
	if detail == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	if detail.UserID != userID {
		return nil, decimal.Zero, domain.ErrNotOwner
	}

	return detail, detail.Amount(), nil
}

// Process simulates a successful payment: the booking is marked confirmed
// regardless of its prior status, then exactly one payment row is recorded
// with the fixed provider tag. Ownership is verified and the amount is
// recomputed here rather than trusted from the client.
func (s *paymentService) Process(ctx context.Context, bookingID, userID int64) (*domain.Payment, error) {
	detail, amount, err := s.Details(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, detail.ID, domain.BookingConfirmed); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	transactionID := "SIM-" + uuid.NewString()
	payment, err := s.paymentRepo.Create(ctx, detail.ID, amount,
		domain.PaymentMethodPayfast, domain.PaymentStatusCompleted, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	event := events.PaymentCompletedEvent{
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		Amount:        payment.Amount,
		Method:        payment.PaymentMethod,
		TransactionID: payment.TransactionID,
		CompletedAt:   time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.PaymentCompleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish payment completed event", "error", err, "payment_id", payment.ID)
	}

	return payment, nil
}
