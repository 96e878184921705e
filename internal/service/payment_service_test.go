package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/service"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
)

func ownedBooking() *domain.BookingDetail {
	return &domain.BookingDetail{
		Booking: domain.Booking{
			ID: 21, UserID: 9, TourID: 3,
			BookingDate: "2026-09-12", Participants: 2,
			Status: domain.BookingPending,
		},
		TourTitle: "Wellness Retreat",
		TourPrice: decimal.RequireFromString("299.99"),
	}
}

func TestProcessConfirmsBookingAndRecordsPayment(t *testing.T) {
	var statusUpdates []string
	bookings := &bookingRepoStub{
		getDetailFn: func(context.Context, int64) (*domain.BookingDetail, error) {
			return ownedBooking(), nil
		},
		updateStatusFn: func(_ context.Context, _ int64, status string) error {
			statusUpdates = append(statusUpdates, status)
			return nil
		},
	}

	var createdCount int
	var gotAmount decimal.Decimal
	var gotMethod, gotStatus, gotTxn string
	payments := &paymentRepoStub{
		createFn: func(_ context.Context, bookingID int64, amount decimal.Decimal, method, status, transactionID string) (*domain.Payment, error) {
			createdCount++
			gotAmount, gotMethod, gotStatus, gotTxn = amount, method, status, transactionID
			return &domain.Payment{
				ID: 1, BookingID: bookingID, Amount: amount,
				PaymentMethod: method, Status: status, TransactionID: transactionID,
			}, nil
		},
	}
	bus := &publisherStub{}
	svc := service.NewPaymentService(bookings, payments, bus)

	payment, err := svc.Process(context.Background(), 21, 9)
	if err != nil {
		t.Fatal(err)
	}

	if len(statusUpdates) != 1 || statusUpdates[0] != domain.BookingConfirmed {
		t.Errorf("status updates = %v, want single confirmed", statusUpdates)
	}
	if createdCount != 1 {
		t.Fatalf("payment rows created = %d, want exactly 1", createdCount)
	}
	if !gotAmount.Equal(decimal.RequireFromString("599.98")) {
		t.Errorf("amount = %s, want 599.98", gotAmount)
	}
	if gotMethod != domain.PaymentMethodPayfast || gotStatus != domain.PaymentStatusCompleted {
		t.Errorf("method/status = %q/%q", gotMethod, gotStatus)
	}
	if !strings.HasPrefix(gotTxn, "SIM-") {
		t.Errorf("transaction id = %q, want SIM- prefix", gotTxn)
	}
	if payment.BookingID != 21 {
		t.Errorf("payment booking id = %d", payment.BookingID)
	}
	if subjects := bus.subjects(); len(subjects) != 1 || subjects[0] != events.PaymentCompleted {
		t.Errorf("published = %v", subjects)
	}
}

func TestProcessRejectsForeignBooking(t *testing.T) {
	confirmed := false
	bookings := &bookingRepoStub{
		getDetailFn: func(context.Context, int64) (*domain.BookingDetail, error) {
			return ownedBooking(), nil
		},
		updateStatusFn: func(context.Context, int64, string) error {
			confirmed = true
			return nil
		},
	}
	paid := false
	payments := &paymentRepoStub{
		createFn: func(context.Context, int64, decimal.Decimal, string, string, string) (*domain.Payment, error) {
			paid = true
			return nil, nil
		},
	}
	svc := service.NewPaymentService(bookings, payments, &publisherStub{})

	_, err := svc.Process(context.Background(), 21, 1234)
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if confirmed || paid {
		t.Error("foreign booking must not be confirmed or charged")
	}
}

func TestDetailsUnknownBooking(t *testing.T) {
	svc := service.NewPaymentService(&bookingRepoStub{}, &paymentRepoStub{}, &publisherStub{})

	_, _, err := svc.Details(context.Background(), 404, 9)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDetailsComputesAmountServerSide(t *testing.T) {
	bookings := &bookingRepoStub{
		getDetailFn: func(context.Context, int64) (*domain.BookingDetail, error) {
			return ownedBooking(), nil
		},
	}
	svc := service.NewPaymentService(bookings, &paymentRepoStub{}, &publisherStub{})

	detail, amount, err := svc.Details(context.Background(), 21, 9)
	if err != nil {
		t.Fatal(err)
	}
	if detail.ID != 21 {
		t.Errorf("detail id = %d", detail.ID)
	}
	if !amount.Equal(decimal.RequireFromString("599.98")) {
		t.Errorf("amount = %s, want 599.98", amount)
	}
}
