package service_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
)

// Hand-written stubs for the repository and event bus interfaces. Each method
// delegates to a function field; unset methods return zero values.

type userRepoStub struct {
	createFn      func(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error)
	findByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	findByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	listFn        func(ctx context.Context) ([]domain.User, error)
	updateRoleFn  func(ctx context.Context, id int64, role string) error
	deleteFn      func(ctx context.Context, id int64) error
	countFn       func(ctx context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, name, email, passwordHash, role)
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.findByEmailFn == nil {
		return nil, nil
	}
	return s.findByEmailFn(ctx, email)
}

func (s *userRepoStub) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if s.findByIDFn == nil {
		return nil, nil
	}
	return s.findByIDFn(ctx, id)
}

func (s *userRepoStub) List(ctx context.Context) ([]domain.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *userRepoStub) UpdateRole(ctx context.Context, id int64, role string) error {
	if s.updateRoleFn == nil {
		return nil
	}
	return s.updateRoleFn(ctx, id, role)
}

func (s *userRepoStub) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type tourRepoStub struct {
	createFn           func(ctx context.Context, in *domain.TourInput) (*domain.Tour, error)
	updateFn           func(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error)
	deleteFn           func(ctx context.Context, id int64) error
	getByIDFn          func(ctx context.Context, id int64) (*domain.Tour, error)
	getAvailableByIDFn func(ctx context.Context, id int64) (*domain.Tour, error)
	listAllFn          func(ctx context.Context) ([]domain.Tour, error)
	listAvailableFn    func(ctx context.Context, limit int) ([]domain.Tour, error)
	countFn            func(ctx context.Context) (int64, error)
}

func (s *tourRepoStub) Create(ctx context.Context, in *domain.TourInput) (*domain.Tour, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, in)
}

func (s *tourRepoStub) Update(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error) {
	if s.updateFn == nil {
		return nil, nil
	}
	return s.updateFn(ctx, id, in)
}

func (s *tourRepoStub) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *tourRepoStub) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s *tourRepoStub) GetAvailableByID(ctx context.Context, id int64) (*domain.Tour, error) {
	if s.getAvailableByIDFn == nil {
		return nil, nil
	}
	return s.getAvailableByIDFn(ctx, id)
}

func (s *tourRepoStub) ListAll(ctx context.Context) ([]domain.Tour, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *tourRepoStub) ListAvailable(ctx context.Context, limit int) ([]domain.Tour, error) {
	if s.listAvailableFn == nil {
		return nil, nil
	}
	return s.listAvailableFn(ctx, limit)
}

func (s *tourRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type bookingRepoStub struct {
	createFn        func(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.Booking, error)
	getDetailFn     func(ctx context.Context, id int64) (*domain.BookingDetail, error)
	listByUserFn    func(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error)
	listAllFn       func(ctx context.Context) ([]domain.BookingDetail, error)
	updateStatusFn  func(ctx context.Context, id int64, status string) error
	countFn         func(ctx context.Context) (int64, error)
	countByStatusFn func(ctx context.Context, status string) (int64, error)
}

func (s *bookingRepoStub) Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, userID, req)
}

func (s *bookingRepoStub) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s *bookingRepoStub) GetDetail(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	if s.getDetailFn == nil {
		return nil, nil
	}
	return s.getDetailFn(ctx, id)
}

func (s *bookingRepoStub) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit)
}

func (s *bookingRepoStub) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *bookingRepoStub) UpdateStatus(ctx context.Context, id int64, status string) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, id, status)
}

func (s *bookingRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

func (s *bookingRepoStub) CountByStatus(ctx context.Context, status string) (int64, error) {
	if s.countByStatusFn == nil {
		return 0, nil
	}
	return s.countByStatusFn(ctx, status)
}

type paymentRepoStub struct {
	createFn        func(ctx context.Context, bookingID int64, amount decimal.Decimal, method, status, transactionID string) (*domain.Payment, error)
	listByBookingFn func(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

func (s *paymentRepoStub) Create(ctx context.Context, bookingID int64, amount decimal.Decimal, method, status, transactionID string) (*domain.Payment, error) {
	if s.createFn == nil {
		return nil, nil
	}
	return s.createFn(ctx, bookingID, amount, method, status, transactionID)
}

func (s *paymentRepoStub) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if s.listByBookingFn == nil {
		return nil, nil
	}
	return s.listByBookingFn(ctx, bookingID)
}

// publisherStub records published subjects and payloads.
type publisherStub struct {
	mu        sync.Mutex
	published []publishedEvent
}

type publishedEvent struct {
	subject string
	payload any
}

func (s *publisherStub) Publish(_ context.Context, subject string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, publishedEvent{subject: subject, payload: payload})
	return nil
}

func (s *publisherStub) Close() error { return nil }

func (s *publisherStub) subjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.published))
	for i, e := range s.published {
		out[i] = e.subject
	}
	return out
}
