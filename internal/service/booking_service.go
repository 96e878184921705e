package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/repo/postgres"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error)
	ListAll(ctx context.Context) ([]domain.BookingDetail, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	DashboardStats(ctx context.Context) DashboardStats
}

// DashboardStats is the admin dashboard summary. A failed count query
// degrades that figure to zero instead of failing the page.
type DashboardStats struct {
	TotalBookings   int64
	PendingBookings int64
	TotalTours      int64
	TotalUsers      int64
}

type bookingService struct {
	bookingRepo postgres.BookingRepository
	tourRepo    postgres.TourRepository
	userRepo    postgres.UserRepository
	eventBus    events.Publisher
}

func NewBookingService(
	bookingRepo postgres.BookingRepository,
	tourRepo postgres.TourRepository,
	userRepo postgres.UserRepository,
	eventBus events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		userRepo:    userRepo,
		eventBus:    eventBus,
	}
}

func (s *bookingService) Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tour, err := s.tourRepo.GetAvailableByID(ctx, req.TourID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tour: %w", err)
	}
	if tour == nil {
		return nil, domain.ErrTourUnavailable
	}

	booking, err := s.bookingRepo.Create(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		TourID:       booking.TourID,
		BookingDate:  booking.BookingDate,
		Participants: booking.Participants,
		CreatedAt:    booking.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error) {
	return s.bookingRepo.ListByUser(ctx, userID, limit)
}

func (s *bookingService) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	return s.bookingRepo.ListAll(ctx)
}

// UpdateStatus sets a booking's status to the given string as-is. Admin
// status values are a free-text pass-through.
func (s *bookingService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	event := events.BookingStatusChangedEvent{
		BookingID: id,
		Status:    status,
		ChangedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.BookingStatusChanged, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking status event", "error", err, "booking_id", id)
	}
	return nil
}

func (s *bookingService) DashboardStats(ctx context.Context) DashboardStats {
	var stats DashboardStats
	var wg sync.WaitGroup

	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		defer wg.Done()
		n, err := fn(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Dashboard stat query failed", "error", err)
			return
		}
		*dst = n
	}

	wg.Add(4)
	go count(&stats.TotalBookings, s.bookingRepo.Count)
	go count(&stats.PendingBookings, func(ctx context.Context) (int64, error) {
		return s.bookingRepo.CountByStatus(ctx, domain.BookingPending)
	})
	go count(&stats.TotalTours, s.tourRepo.Count)
	go count(&stats.TotalUsers, s.userRepo.Count)
	wg.Wait()

	return stats
}
